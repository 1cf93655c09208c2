package get_pattern

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns"
)

const (
	msgInvalidPatternID = "некорректный ID паттерна"
	msgNotFound         = "паттерн не найден"
)

type Handler struct {
	service PatternService
	logger  Logger
}

func NewHandler(service PatternService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patterns/{patternId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patternID, err := strconv.ParseInt(vars["patternId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /patterns/{id} - Invalid pattern ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	result, err := h.service.GetByID(r.Context(), patternID)
	if err != nil {
		switch {
		case errors.Is(err, patterns.ErrPatternNotFound):
			h.logger.Warn("GET /patterns/{id} - Pattern not found: pattern_id=%d", patternID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /patterns/{id} - Failed to get pattern: pattern_id=%d, error=%v", patternID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patterns/{id} - Pattern retrieved successfully: pattern_id=%d", patternID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
