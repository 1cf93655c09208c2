package check_staff_availability

import (
	"context"
	"time"
)

// AvailabilityResolver проверяет доступность сотрудника в интервале времени
type AvailabilityResolver interface {
	IsAvailableAt(ctx context.Context, staffID int64, start, end time.Time) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
