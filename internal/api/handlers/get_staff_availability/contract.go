package get_staff_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// AvailabilityResolver определяет рабочие окна сотрудника на дату
type AvailabilityResolver interface {
	GetDailyAvailability(ctx context.Context, staffID int64, date time.Time) (*domain.DayAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
