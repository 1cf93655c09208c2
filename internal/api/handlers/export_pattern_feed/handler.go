package export_pattern_feed

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	exportPatternFeed "github.com/m04kA/SMC-ScheduleService/internal/usecase/export_pattern_feed"
)

const (
	msgInvalidPatternID = "некорректный ID паттерна"
	msgNotFound         = "паттерн не найден"
	msgFeedUnavailable  = "календарная лента недоступна для этого паттерна"
)

type Handler struct {
	useCase ExportPatternFeedUseCase
	logger  Logger
}

func NewHandler(useCase ExportPatternFeedUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/patterns/{patternId}/feed.ics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patternID, err := strconv.ParseInt(vars["patternId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /patterns/{id}/feed.ics - Invalid pattern ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &exportPatternFeed.Request{PatternID: patternID})
	if err != nil {
		switch {
		case errors.Is(err, exportPatternFeed.ErrPatternNotFound):
			h.logger.Warn("GET /patterns/{id}/feed.ics - Pattern not found: pattern_id=%d", patternID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, exportPatternFeed.ErrFeedUnavailable):
			h.logger.Warn("GET /patterns/{id}/feed.ics - Feed unavailable: pattern_id=%d, error=%v", patternID, err)
			handlers.RespondConflict(w, msgFeedUnavailable)

		case errors.Is(err, exportPatternFeed.ErrInvalidInput):
			h.logger.Warn("GET /patterns/{id}/feed.ics - Invalid input: pattern_id=%d", patternID)
			handlers.RespondBadRequest(w, msgInvalidPatternID)

		default:
			h.logger.Error("GET /patterns/{id}/feed.ics - Failed to build feed: pattern_id=%d, error=%v", patternID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte(result.Body)); err != nil {
		h.logger.Error("GET /patterns/{id}/feed.ics - Failed to write response: pattern_id=%d, error=%v", patternID, err)
		return
	}

	h.logger.Info("GET /patterns/{id}/feed.ics - Feed exported successfully: pattern_id=%d, filename=%s",
		patternID, result.Filename)
}
