package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ScheduleRepository интерфейс источника расписаний
type ScheduleRepository interface {
	// GetActiveForDate возвращает все расписания сотрудника, активные на дату
	GetActiveForDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.AvailabilitySchedule, error)
}

// SchedulePicker выбирает одно расписание, когда на дату активно несколько
type SchedulePicker interface {
	Pick(schedules []*domain.AvailabilitySchedule) *domain.AvailabilitySchedule
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
