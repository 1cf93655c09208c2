package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	// ErrInvalidFrequency возвращается при неизвестной частоте повторения
	ErrInvalidFrequency = errors.New("invalid frequency")
	// ErrInvalidDuration возвращается при длительности вне допустимого диапазона
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidDay возвращается при дне недели или месяца вне диапазона
	ErrInvalidDay = errors.New("invalid day")
	// ErrInvalidTime возвращается при некорректном времени начала
	ErrInvalidTime = errors.New("invalid start time")
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidLimit возвращается при неположительном лимите занятий
	ErrInvalidLimit = errors.New("invalid occurrence limit")
	// ErrInvalidPaymentPlan возвращается при неизвестном плане оплаты
	ErrInvalidPaymentPlan = errors.New("invalid payment plan")
)

// Request модели

// CreatePatternRequest запрос на создание паттерна повторения
type CreatePatternRequest struct {
	ClientID        int64   `json:"clientId"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	Frequency       string  `json:"frequency"` // weekly | biweekly | monthly
	Interval        int     `json:"interval,omitempty"`
	DayOfWeek       *int    `json:"dayOfWeek,omitempty"`  // 0 = воскресенье ... 6 = суббота
	DayOfMonth      *int    `json:"dayOfMonth,omitempty"` // 1..31
	StartTime       string  `json:"startTime"`            // HH:MM
	DurationMinutes int     `json:"durationMinutes"`
	TimeZone        string  `json:"timeZone,omitempty"`
	StartDate       string  `json:"startDate"`         // YYYY-MM-DD
	EndDate         *string `json:"endDate,omitempty"` // YYYY-MM-DD
	OccurrenceLimit *int    `json:"occurrenceLimit,omitempty"`
	PaymentPlan     string  `json:"paymentPlan,omitempty"`
}

// CreatePatternFromRuleRequest запрос на создание паттерна из строки RRULE
type CreatePatternFromRuleRequest struct {
	ClientID        int64  `json:"clientId"`
	StaffID         int64  `json:"staffId"`
	ServiceID       int64  `json:"serviceId"`
	Rule            string `json:"rule"`      // например FREQ=WEEKLY;BYDAY=MO
	StartTime       string `json:"startTime"` // HH:MM
	DurationMinutes int    `json:"durationMinutes"`
	TimeZone        string `json:"timeZone,omitempty"`
	StartDate       string `json:"startDate"` // YYYY-MM-DD
	PaymentPlan     string `json:"paymentPlan,omitempty"`
}

// ToDomainPattern валидирует запрос и собирает domain модель
func (r *CreatePatternRequest) ToDomainPattern() (*domain.RecurrencePattern, error) {
	frequency := domain.Frequency(r.Frequency)
	if !frequency.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFrequency, r.Frequency)
	}

	pattern := &domain.RecurrencePattern{
		ClientID:            r.ClientID,
		StaffID:             r.StaffID,
		ServiceID:           r.ServiceID,
		Frequency:           frequency,
		Interval:            r.Interval,
		DurationMinutes:     r.DurationMinutes,
		TimeZone:            r.TimeZone,
		GeneratedBookingIDs: []int64{},
		Status:              domain.PatternStatusActive,
	}

	if pattern.Interval < 1 {
		pattern.Interval = 1
	}

	if r.DayOfWeek != nil {
		if *r.DayOfWeek < 0 || *r.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: day of week %d", ErrInvalidDay, *r.DayOfWeek)
		}
		pattern.DayOfWeek = r.DayOfWeek
	}
	if r.DayOfMonth != nil {
		if *r.DayOfMonth < domain.MinDayOfMonth || *r.DayOfMonth > domain.MaxDayOfMonth {
			return nil, fmt.Errorf("%w: day of month %d", ErrInvalidDay, *r.DayOfMonth)
		}
		pattern.DayOfMonth = r.DayOfMonth
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, r.StartTime)
	}
	pattern.StartTime = startTime

	if r.DurationMinutes < domain.MinDurationMinutes || r.DurationMinutes > domain.MaxDurationMinutes {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, r.DurationMinutes)
	}

	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	pattern.StartDate = startDate

	if r.EndDate != nil {
		endDate, err := parseDate(*r.EndDate)
		if err != nil {
			return nil, err
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("%w: endDate before startDate", ErrInvalidDate)
		}
		pattern.EndDate = &endDate
	}

	if r.OccurrenceLimit != nil {
		if *r.OccurrenceLimit < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, *r.OccurrenceLimit)
		}
		pattern.OccurrenceLimit = r.OccurrenceLimit
	}

	plan, err := toDomainPaymentPlan(r.PaymentPlan)
	if err != nil {
		return nil, err
	}
	pattern.PaymentPlan = plan

	return pattern, nil
}

func toDomainPaymentPlan(value string) (domain.PaymentPlan, error) {
	switch domain.PaymentPlan(value) {
	case domain.PaymentPerSession, domain.PaymentMonthlySubscription:
		return domain.PaymentPlan(value), nil
	case "":
		return domain.PaymentPerSession, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentPlan, value)
	}
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return domain.DateOnly(date), nil
}

// Response модели

// PatternResponse ответ с данными паттерна
type PatternResponse struct {
	ID                  int64   `json:"id"`
	ClientID            int64   `json:"clientId"`
	StaffID             int64   `json:"staffId"`
	ServiceID           int64   `json:"serviceId"`
	Frequency           string  `json:"frequency"`
	Interval            int     `json:"interval"`
	DayOfWeek           *int    `json:"dayOfWeek,omitempty"`
	DayOfMonth          *int    `json:"dayOfMonth,omitempty"`
	StartTime           string  `json:"startTime"`
	DurationMinutes     int     `json:"durationMinutes"`
	TimeZone            string  `json:"timeZone,omitempty"`
	StartDate           string  `json:"startDate"`
	EndDate             *string `json:"endDate,omitempty"`
	OccurrenceLimit     *int    `json:"occurrenceLimit,omitempty"`
	GeneratedBookingIDs []int64 `json:"generatedBookingIds"`
	Status              string  `json:"status"`
	PaymentPlan         string  `json:"paymentPlan"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// PatternListResponse список паттернов
type PatternListResponse struct {
	Patterns []PatternResponse `json:"patterns"`
}

// FromDomainPattern конвертирует domain модель в ответ
func FromDomainPattern(p *domain.RecurrencePattern) *PatternResponse {
	resp := &PatternResponse{
		ID:                  p.ID,
		ClientID:            p.ClientID,
		StaffID:             p.StaffID,
		ServiceID:           p.ServiceID,
		Frequency:           string(p.Frequency),
		Interval:            p.EffectiveInterval(),
		DayOfWeek:           p.DayOfWeek,
		DayOfMonth:          p.DayOfMonth,
		StartTime:           p.StartTime.String(),
		DurationMinutes:     p.DurationMinutes,
		TimeZone:            p.TimeZone,
		StartDate:           p.StartDate.Format(domain.DateFormat),
		OccurrenceLimit:     p.OccurrenceLimit,
		GeneratedBookingIDs: p.GeneratedBookingIDs,
		Status:              string(p.Status),
		PaymentPlan:         string(p.PaymentPlan),
		CreatedAt:           p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           p.UpdatedAt.Format(time.RFC3339),
	}

	if p.EndDate != nil {
		endDate := p.EndDate.Format(domain.DateFormat)
		resp.EndDate = &endDate
	}
	if resp.GeneratedBookingIDs == nil {
		resp.GeneratedBookingIDs = []int64{}
	}

	return resp
}

// FromDomainPatternList конвертирует список паттернов в ответ
func FromDomainPatternList(patterns []*domain.RecurrencePattern) *PatternListResponse {
	resp := &PatternListResponse{
		Patterns: make([]PatternResponse, 0, len(patterns)),
	}
	for _, p := range patterns {
		resp.Patterns = append(resp.Patterns, *FromDomainPattern(p))
	}
	return resp
}

// ToDomainPatternStatus валидирует строковый статус
func ToDomainPatternStatus(value string) (domain.PatternStatus, error) {
	switch domain.PatternStatus(value) {
	case domain.PatternStatusActive, domain.PatternStatusPaused,
		domain.PatternStatusCancelled, domain.PatternStatusCompleted:
		return domain.PatternStatus(value), nil
	default:
		return "", fmt.Errorf("unknown pattern status %q", value)
	}
}
