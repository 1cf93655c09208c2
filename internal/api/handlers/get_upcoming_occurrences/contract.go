package get_upcoming_occurrences

import (
	"context"

	getUpcomingOccurrences "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_upcoming_occurrences"
)

type GetUpcomingOccurrencesUseCase interface {
	Execute(ctx context.Context, req *getUpcomingOccurrences.Request) (*getUpcomingOccurrences.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
