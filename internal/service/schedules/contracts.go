package schedules

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.AvailabilitySchedule) (*domain.AvailabilitySchedule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilitySchedule, error)
	GetByStaff(ctx context.Context, staffID int64) ([]*domain.AvailabilitySchedule, error)
	ReplaceWeeklySchedule(ctx context.Context, id int64, weekly []domain.DayScheduleEntry) error
	ReplaceExceptions(ctx context.Context, id int64, exceptions []domain.ScheduleException) error
	ReplaceOverrides(ctx context.Context, id int64, overrides []domain.ScheduleOverride) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
