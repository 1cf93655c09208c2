package check_staff_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

const (
	msgInvalidStaffID   = "некорректный ID сотрудника"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTimeRange = "параметры startTime и endTime обязательны"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidTimeRange = "время начала должно быть раньше времени окончания"
)

// CheckResponse результат проверки доступности
type CheckResponse struct {
	StaffID   int64  `json:"staffId"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	Available bool   `json:"available"`
}

type Handler struct {
	resolver AvailabilityResolver
	logger   Logger
}

func NewHandler(resolver AvailabilityResolver, logger Logger) *Handler {
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/availability/check
// Query params: date (YYYY-MM-DD), startTime (HH:MM), endTime (HH:MM) - все обязательны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability/check - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{id}/availability/check - Missing date: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability/check - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startStr := query.Get("startTime")
	endStr := query.Get("endTime")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /staff/{id}/availability/check - Missing time range: staff_id=%d", staffID)
		handlers.RespondBadRequest(w, msgMissingTimeRange)
		return
	}

	start, err := atTime(date, startStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability/check - Invalid start time %q: %v", startStr, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	end, err := atTime(date, endStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability/check - Invalid end time %q: %v", endStr, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	if !start.Before(end) {
		h.logger.Warn("GET /staff/{id}/availability/check - Invalid time range: start=%s, end=%s", startStr, endStr)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
		return
	}

	available, err := h.resolver.IsAvailableAt(r.Context(), staffID, start, end)
	if err != nil {
		h.logger.Error("GET /staff/{id}/availability/check - Failed to check availability: staff_id=%d, error=%v",
			staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /staff/{id}/availability/check - Checked: staff_id=%d, date=%s, %s-%s, available=%v",
		staffID, dateStr, startStr, endStr, available)
	handlers.RespondJSON(w, http.StatusOK, CheckResponse{
		StaffID:   staffID,
		Date:      dateStr,
		StartTime: startStr,
		EndTime:   endStr,
		Available: available,
	})
}

// atTime собирает момент времени из даты и строки HH:MM
func atTime(date time.Time, timeStr string) (time.Time, error) {
	ts, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ts.MinutesOfDay()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(minutes) * time.Minute), nil
}
