package get_upcoming_occurrences

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getUpcomingOccurrences "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_upcoming_occurrences"
)

const (
	msgInvalidPatternID = "некорректный ID паттерна"
	msgInvalidCount     = "некорректное количество занятий"
	msgInvalidFrom      = "некорректный формат параметра from, ожидается YYYY-MM-DD"
	msgNotFound         = "паттерн не найден"
	msgInvalidData      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetUpcomingOccurrencesUseCase
	logger  Logger
}

func NewHandler(useCase GetUpcomingOccurrencesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/patterns/{patternId}/occurrences
// Query params: count (по умолчанию 5, максимум 50), from (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patternID, err := strconv.ParseInt(vars["patternId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /patterns/{id}/occurrences - Invalid pattern ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	req := &getUpcomingOccurrences.Request{PatternID: patternID}

	query := r.URL.Query()
	if countStr := query.Get("count"); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			h.logger.Warn("GET /patterns/{id}/occurrences - Invalid count %q: pattern_id=%d", countStr, patternID)
			handlers.RespondBadRequest(w, msgInvalidCount)
			return
		}
		req.Count = &count
	}

	if fromStr := query.Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /patterns/{id}/occurrences - Invalid from %q: pattern_id=%d", fromStr, patternID)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = &from
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getUpcomingOccurrences.ErrPatternNotFound):
			h.logger.Warn("GET /patterns/{id}/occurrences - Pattern not found: pattern_id=%d", patternID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getUpcomingOccurrences.ErrInvalidInput):
			h.logger.Warn("GET /patterns/{id}/occurrences - Invalid input: pattern_id=%d, error=%v", patternID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("GET /patterns/{id}/occurrences - Failed to get occurrences: pattern_id=%d, error=%v",
				patternID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patterns/{id}/occurrences - Occurrences retrieved successfully: pattern_id=%d, count=%d",
		patternID, len(result.Occurrences))
	handlers.RespondJSON(w, http.StatusOK, result)
}
