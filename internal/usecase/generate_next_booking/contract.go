package generate_next_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/bookingservice"
)

// PatternRepository интерфейс репозитория паттернов
type PatternRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RecurrencePattern, error)
	AppendGeneratedBooking(ctx context.Context, id int64, bookingID int64, expectedCount int) error
	UpdateStatus(ctx context.Context, id int64, status domain.PatternStatus) error
}

// RecurrenceEngine интерфейс движка повторений
type RecurrenceEngine interface {
	OccurrenceDates(p *domain.RecurrencePattern, maxCount int) []time.Time
}

// AvailabilityResolver интерфейс проверки доступности сотрудника
type AvailabilityResolver interface {
	IsAvailableAt(ctx context.Context, staffID int64, start, end time.Time) (bool, error)
}

// BookingServiceClient интерфейс клиента BookingService
type BookingServiceClient interface {
	CreateBooking(ctx context.Context, req bookingservice.CreateBookingRequest) (*bookingservice.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
