package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/slots"
)

const (
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration    = "параметр durationMinutes обязателен"
	msgInvalidDuration    = "некорректная длительность сеанса"
	msgInvalidBuffer      = "некорректная длительность паузы"
	msgInvalidGranularity = "некорректный шаг сетки слотов"
)

type Handler struct {
	generator SlotGenerator
	logger    Logger
}

func NewHandler(generator SlotGenerator, logger Logger) *Handler {
	return &Handler{
		generator: generator,
		logger:    logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/slots
// Query params: date (required, YYYY-MM-DD), durationMinutes (required),
// bufferMinutes, granularityMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{id}/slots - Missing date: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	durationStr := query.Get("durationMinutes")
	if durationStr == "" {
		h.logger.Warn("GET /staff/{id}/slots - Missing duration: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration <= 0 {
		h.logger.Warn("GET /staff/{id}/slots - Invalid duration %q", durationStr)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	params := slots.GenerateParams{DurationMinutes: duration}

	if bufferStr := query.Get("bufferMinutes"); bufferStr != "" {
		buffer, err := strconv.Atoi(bufferStr)
		if err != nil || buffer < 0 {
			h.logger.Warn("GET /staff/{id}/slots - Invalid buffer %q", bufferStr)
			handlers.RespondBadRequest(w, msgInvalidBuffer)
			return
		}
		params.BufferMinutes = buffer
	}

	if granularityStr := query.Get("granularityMinutes"); granularityStr != "" {
		granularity, err := strconv.Atoi(granularityStr)
		if err != nil || granularity <= 0 {
			h.logger.Warn("GET /staff/{id}/slots - Invalid granularity %q", granularityStr)
			handlers.RespondBadRequest(w, msgInvalidGranularity)
			return
		}
		params.GranularityMinutes = granularity
	}

	timeSlots, err := h.generator.Generate(r.Context(), staffID, date, params)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidDuration):
			h.logger.Warn("GET /staff/{id}/slots - Invalid duration: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /staff/{id}/slots - Failed to generate slots: staff_id=%d, date=%s, error=%v",
				staffID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/slots - Slots generated: staff_id=%d, date=%s, slots_count=%d",
		staffID, dateStr, len(timeSlots))
	handlers.RespondJSON(w, http.StatusOK, FromTimeSlots(staffID, date, timeSlots))
}
