package create_pattern

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns"
	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные паттерна"
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

// Handle POST /api/v1/patterns
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /patterns - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var (
		result *models.PatternResponse
		err    error
	)
	if req.HasRule() {
		result, err = h.service.CreateFromRule(r.Context(), req.ToRuleRequest())
	} else {
		result, err = h.service.Create(r.Context(), req.ToServiceRequest())
	}

	if err != nil {
		switch {
		case errors.Is(err, patterns.ErrInvalidInput):
			h.logger.Warn("POST /patterns - Invalid data: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /patterns - Failed to create pattern: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /patterns - Pattern created successfully: pattern_id=%d, client_id=%d",
		result.ID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
