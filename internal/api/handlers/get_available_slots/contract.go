package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/slots"
)

// SlotGenerator нарезает рабочие окна сотрудника на бронируемые слоты
type SlotGenerator interface {
	Generate(ctx context.Context, staffID int64, date time.Time, params slots.GenerateParams) ([]domain.TimeSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
