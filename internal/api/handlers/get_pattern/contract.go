package get_pattern

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns/models"
)

type PatternService interface {
	GetByID(ctx context.Context, id int64) (*models.PatternResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
