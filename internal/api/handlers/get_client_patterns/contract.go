package get_client_patterns

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns/models"
)

type PatternService interface {
	GetByClient(ctx context.Context, clientID int64, status *string) (*models.PatternListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
