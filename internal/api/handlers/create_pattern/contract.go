package create_pattern

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns/models"
)

type PatternService interface {
	Create(ctx context.Context, req *models.CreatePatternRequest) (*models.PatternResponse, error)
	CreateFromRule(ctx context.Context, req *models.CreatePatternFromRuleRequest) (*models.PatternResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
