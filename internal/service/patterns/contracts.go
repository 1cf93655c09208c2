package patterns

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// PatternRepository интерфейс репозитория паттернов повторения
type PatternRepository interface {
	Create(ctx context.Context, pattern *domain.RecurrencePattern) (*domain.RecurrencePattern, error)
	GetByID(ctx context.Context, id int64) (*domain.RecurrencePattern, error)
	GetByClient(ctx context.Context, clientID int64, status *domain.PatternStatus) ([]*domain.RecurrencePattern, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PatternStatus) error
	CancelWithEndDate(ctx context.Context, id int64, endDate time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
