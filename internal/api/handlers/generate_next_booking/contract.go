package generate_next_booking

import (
	"context"

	generateNextBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_next_booking"
)

type GenerateNextBookingUseCase interface {
	Execute(ctx context.Context, req *generateNextBooking.Request) (*generateNextBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
