package bookingservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент для работы с BookingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента BookingService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateBooking создает бронирование в BookingService.
// Повторные вызовы для той же пары паттерн+дата передают одинаковый
// Idempotency-Key, поэтому BookingService не создаст дубликат
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	url := fmt.Sprintf("%s/internal/bookings", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", idempotencyKey(req))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("BookingService request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrBookingRejected, string(respBody))
	case http.StatusConflict:
		return nil, ErrSlotTaken
	default:
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status code %d", ErrServiceUnavailable, resp.StatusCode)
		}
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	// Парсим ответ
	var booking Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Created booking id=%d for staff_id=%d on %s %s", booking.ID, req.StaffID, req.Date, req.StartTime)

	return &booking, nil
}

// idempotencyKey детерминированно выводит ключ из паттерна и даты занятия,
// чтобы повтор после сбоя не породил второе бронирование
func idempotencyKey(req CreateBookingRequest) string {
	var patternID int64
	if req.PatternID != nil {
		patternID = *req.PatternID
	}
	seed := fmt.Sprintf("pattern:%d:%d:%s:%s", patternID, req.StaffID, req.Date, req.StartTime)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}
