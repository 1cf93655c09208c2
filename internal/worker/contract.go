package worker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_next_booking"
)

// PatternRepository интерфейс репозитория паттернов
type PatternRepository interface {
	ListActive(ctx context.Context) ([]*domain.RecurrencePattern, error)
}

// BookingGenerator материализует следующее занятие серии
type BookingGenerator interface {
	Execute(ctx context.Context, req *generate_next_booking.Request) (*generate_next_booking.Response, error)
}

// RecurrenceEngine интерфейс движка повторений
type RecurrenceEngine interface {
	OccurrenceDates(p *domain.RecurrencePattern, maxCount int) []time.Time
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
