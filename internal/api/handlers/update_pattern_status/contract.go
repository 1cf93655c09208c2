package update_pattern_status

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns/models"
)

type PatternService interface {
	Pause(ctx context.Context, id int64) (*models.PatternResponse, error)
	Resume(ctx context.Context, id int64) (*models.PatternResponse, error)
	Cancel(ctx context.Context, id int64) (*models.PatternResponse, error)
	Complete(ctx context.Context, id int64) (*models.PatternResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
