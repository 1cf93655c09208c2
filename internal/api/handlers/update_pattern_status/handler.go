package update_pattern_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns"
	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns/models"
)

const (
	msgInvalidPatternID   = "некорректный ID паттерна"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAction      = "некорректное действие, ожидается pause, resume, cancel или complete"
	msgNotFound           = "паттерн не найден"
	msgInvalidTransition  = "смена статуса недопустима для текущего состояния паттерна"
)

const (
	actionPause    = "pause"
	actionResume   = "resume"
	actionCancel   = "cancel"
	actionComplete = "complete"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Action string `json:"action"` // pause | resume | cancel | complete
}

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

// Handle PATCH /api/v1/patterns/{patternId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	patternID, err := strconv.ParseInt(vars["patternId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /patterns/{id}/status - Invalid pattern ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /patterns/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *models.PatternResponse
	switch req.Action {
	case actionPause:
		result, err = h.service.Pause(r.Context(), patternID)
	case actionResume:
		result, err = h.service.Resume(r.Context(), patternID)
	case actionCancel:
		result, err = h.service.Cancel(r.Context(), patternID)
	case actionComplete:
		result, err = h.service.Complete(r.Context(), patternID)
	default:
		h.logger.Warn("PATCH /patterns/{id}/status - Invalid action %q: pattern_id=%d", req.Action, patternID)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, patterns.ErrPatternNotFound):
			h.logger.Warn("PATCH /patterns/{id}/status - Pattern not found: pattern_id=%d", patternID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, patterns.ErrInvalidTransition):
			h.logger.Warn("PATCH /patterns/{id}/status - Invalid transition: pattern_id=%d, action=%s, error=%v",
				patternID, req.Action, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /patterns/{id}/status - Failed to update status: pattern_id=%d, action=%s, error=%v",
				patternID, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /patterns/{id}/status - Status updated successfully: pattern_id=%d, action=%s, status=%s",
		patternID, req.Action, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
