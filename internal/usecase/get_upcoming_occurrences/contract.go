package get_upcoming_occurrences

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/recurrence"
)

// PatternRepository интерфейс репозитория паттернов
type PatternRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RecurrencePattern, error)
}

// RecurrenceEngine интерфейс движка повторений
type RecurrenceEngine interface {
	UpcomingOccurrences(p *domain.RecurrencePattern, opts recurrence.UpcomingOptions) []time.Time
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
