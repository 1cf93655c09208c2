package generate_next_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	generateNextBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_next_booking"
)

const (
	msgInvalidPatternID     = "некорректный ID паттерна"
	msgNotFound             = "паттерн не найден"
	msgNotActive            = "паттерн не активен"
	msgSeriesExhausted      = "серия занятий завершена"
	msgNoBookableOccurrence = "нет доступного занятия в пределах окна поиска"
	msgOccurrenceTaken      = "слот занятия уже занят"
	msgBookingRejected      = "сервис бронирований отклонил данные занятия"
	msgConcurrentUpdate     = "паттерн обновляется параллельно, повторите запрос"
	msgBookingUnavailable   = "сервис бронирований недоступен"
)

type Handler struct {
	useCase GenerateNextBookingUseCase
	logger  Logger
}

func NewHandler(useCase GenerateNextBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/patterns/{patternId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patternID, err := strconv.ParseInt(vars["patternId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /patterns/{id}/bookings - Invalid pattern ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateNextBooking.Request{PatternID: patternID})
	if err != nil {
		switch {
		case errors.Is(err, generateNextBooking.ErrPatternNotFound):
			h.logger.Warn("POST /patterns/{id}/bookings - Pattern not found: pattern_id=%d", patternID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, generateNextBooking.ErrPatternNotActive):
			h.logger.Warn("POST /patterns/{id}/bookings - Pattern not active: pattern_id=%d", patternID)
			handlers.RespondConflict(w, msgNotActive)

		case errors.Is(err, generateNextBooking.ErrSeriesExhausted):
			h.logger.Info("POST /patterns/{id}/bookings - Series exhausted: pattern_id=%d", patternID)
			handlers.RespondConflict(w, msgSeriesExhausted)

		case errors.Is(err, generateNextBooking.ErrNoBookableOccurrence):
			h.logger.Warn("POST /patterns/{id}/bookings - No bookable occurrence: pattern_id=%d", patternID)
			handlers.RespondConflict(w, msgNoBookableOccurrence)

		case errors.Is(err, generateNextBooking.ErrOccurrenceTaken):
			h.logger.Warn("POST /patterns/{id}/bookings - Occurrence slot taken: pattern_id=%d", patternID)
			handlers.RespondConflict(w, msgOccurrenceTaken)

		case errors.Is(err, generateNextBooking.ErrBookingRejected):
			h.logger.Warn("POST /patterns/{id}/bookings - Booking rejected: pattern_id=%d, error=%v", patternID, err)
			handlers.RespondBadRequest(w, msgBookingRejected)

		case errors.Is(err, generateNextBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /patterns/{id}/bookings - Concurrent update: pattern_id=%d", patternID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, generateNextBooking.ErrBookingServiceUnavailable):
			h.logger.Error("POST /patterns/{id}/bookings - Booking service unavailable: pattern_id=%d, error=%v",
				patternID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgBookingUnavailable)

		default:
			h.logger.Error("POST /patterns/{id}/bookings - Failed to generate booking: pattern_id=%d, error=%v",
				patternID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /patterns/{id}/bookings - Booking generated successfully: pattern_id=%d, booking_id=%d, date=%s",
		patternID, result.BookingID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
