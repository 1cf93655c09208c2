package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// GenerateParams задаёт параметры нарезки слотов
type GenerateParams struct {
	// DurationMinutes - длительность сеанса, обязательна
	DurationMinutes int
	// BufferMinutes - пауза после сеанса; учитывается при проверке, что сеанс
	// помещается в окно, но не входит в границы слота
	BufferMinutes int
	// GranularityMinutes - шаг сетки; по умолчанию DefaultGranularityMinutes
	GranularityMinutes int
}

// Generator нарезает рабочие окна дня на бронируемые слоты
type Generator struct {
	resolver DayAvailabilityResolver
	logger   Logger
}

// NewGenerator создает генератор слотов поверх резолвера доступности
func NewGenerator(resolver DayAvailabilityResolver, logger Logger) *Generator {
	return &Generator{
		resolver: resolver,
		logger:   logger,
	}
}

// Generate возвращает слоты дня, в которые помещается сеанс заданной
// длительности вместе с паузой после него. Порядок слотов повторяет порядок
// рабочих окон дня; окна не сортируются и не склеиваются.
func (g *Generator) Generate(ctx context.Context, staffID int64, date time.Time, params GenerateParams) ([]domain.TimeSlot, error) {
	if params.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if params.GranularityMinutes <= 0 {
		params.GranularityMinutes = domain.DefaultGranularityMinutes
	}
	if params.BufferMinutes < 0 {
		params.BufferMinutes = domain.DefaultBufferMinutes
	}

	g.logger.Info("Generate: staff=%d date=%s duration=%d buffer=%d granularity=%d",
		staffID, date.Format(domain.DateFormat), params.DurationMinutes, params.BufferMinutes, params.GranularityMinutes)

	day, err := g.resolver.GetDailyAvailability(ctx, staffID, date)
	if err != nil {
		g.logger.Error("Generate: resolve availability for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: Generate - resolve availability: %v", ErrInternal, err)
	}
	if day == nil || !day.Available {
		return []domain.TimeSlot{}, nil
	}

	out := make([]domain.TimeSlot, 0)
	for _, window := range day.TimeSlots {
		carved, err := carveWindow(window, params)
		if err != nil {
			return nil, err
		}
		out = append(out, carved...)
	}

	g.logger.Info("Generate: staff=%d date=%s produced %d slots", staffID, date.Format(domain.DateFormat), len(out))
	return out, nil
}

// carveWindow шагает по окну с шагом сетки, пока сеанс вместе с паузой
// помещается до конца окна. Конец слота - начало плюс длительность, пауза в
// границы слота не входит.
func carveWindow(window domain.TimeSlot, params GenerateParams) ([]domain.TimeSlot, error) {
	windowStart, err := window.Start.MinutesOfDay()
	if err != nil {
		return nil, fmt.Errorf("%w: carveWindow - window start: %v", ErrInternal, err)
	}
	windowEnd, err := window.End.MinutesOfDay()
	if err != nil {
		return nil, fmt.Errorf("%w: carveWindow - window end: %v", ErrInternal, err)
	}

	carved := make([]domain.TimeSlot, 0)
	occupied := params.DurationMinutes + params.BufferMinutes
	for cursor := windowStart; cursor+occupied <= windowEnd; cursor += params.GranularityMinutes {
		carved = append(carved, domain.TimeSlot{
			Start: types.FromMinutesOfDay(cursor),
			End:   types.FromMinutesOfDay(cursor + params.DurationMinutes),
		})
	}
	return carved, nil
}
