package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// DayAvailabilityResolver источник рабочих окон дня
type DayAvailabilityResolver interface {
	GetDailyAvailability(ctx context.Context, staffID int64, date time.Time) (*domain.DayAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
