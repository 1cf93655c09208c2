// Package worker содержит фоновый материализатор: по расписанию проходит по
// активным паттернам и создаёт бронирования для занятий, попавших в горизонт
// планирования.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_next_booking"
)

// SweepStats итоги одного прохода материализатора.
type SweepStats struct {
	Total     int // активных паттернов просмотрено
	Generated int // создано бронирований
	Completed int // серий завершено
	Skipped   int // вне горизонта либо без доступного занятия
	Failed    int // ошибок, требующих внимания
}

// Materializer периодически материализует занятия активных паттернов.
type Materializer struct {
	patterns     PatternRepository
	generator    BookingGenerator
	engine       RecurrenceEngine
	timeProvider TimeProvider
	logger       Logger

	cron        *cron.Cron
	cronSpec    string
	horizonDays int
}

// NewMaterializer создает новый материализатор.
// cronSpec - стандартное 5-польное cron-выражение, horizonDays - на сколько
// дней вперёд создаются бронирования.
func NewMaterializer(
	patterns PatternRepository,
	generator BookingGenerator,
	engine RecurrenceEngine,
	logger Logger,
	cronSpec string,
	horizonDays int,
) *Materializer {
	return &Materializer{
		patterns:     patterns,
		generator:    generator,
		engine:       engine,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cron:         cron.New(),
		cronSpec:     cronSpec,
		horizonDays:  horizonDays,
	}
}

// Start регистрирует задачу и запускает планировщик.
func (m *Materializer) Start() error {
	_, err := m.cron.AddFunc(m.cronSpec, func() {
		stats := m.RunSweep(context.Background())
		m.logger.Info("Materializer: sweep done - total=%d generated=%d completed=%d skipped=%d failed=%d",
			stats.Total, stats.Generated, stats.Completed, stats.Skipped, stats.Failed)
	})
	if err != nil {
		return fmt.Errorf("materializer: invalid cron spec %q: %w", m.cronSpec, err)
	}

	m.cron.Start()
	m.logger.Info("Materializer: started with spec %q, horizon %d days", m.cronSpec, m.horizonDays)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прохода.
func (m *Materializer) Stop() {
	<-m.cron.Stop().Done()
	m.logger.Info("Materializer: stopped")
}

// RunSweep выполняет один проход по всем активным паттернам. Ошибка одного
// паттерна не прерывает проход: она логируется, и обработка продолжается.
func (m *Materializer) RunSweep(ctx context.Context) SweepStats {
	var stats SweepStats

	patterns, err := m.patterns.ListActive(ctx)
	if err != nil {
		m.logger.Error("Materializer: failed to list active patterns: %v", err)
		return stats
	}
	stats.Total = len(patterns)

	horizon := domain.DateOnly(m.timeProvider.Now()).AddDate(0, 0, m.horizonDays)

	for _, pattern := range patterns {
		if !m.due(pattern, horizon) {
			stats.Skipped++
			continue
		}
		m.materialize(ctx, pattern, &stats)
	}

	return stats
}

// due сообщает, пора ли материализовать следующее занятие паттерна.
// Исчерпанные серии считаются due: генератор переведёт их в completed.
func (m *Materializer) due(pattern *domain.RecurrencePattern, horizon time.Time) bool {
	materialized := len(pattern.GeneratedBookingIDs)
	dates := m.engine.OccurrenceDates(pattern, materialized+1)
	if len(dates) <= materialized {
		return true
	}
	return !dates[materialized].After(horizon)
}

func (m *Materializer) materialize(ctx context.Context, pattern *domain.RecurrencePattern, stats *SweepStats) {
	resp, err := m.generator.Execute(ctx, &generate_next_booking.Request{PatternID: pattern.ID})

	switch {
	case err == nil:
		stats.Generated++
		if resp.Completed {
			stats.Completed++
		}
		m.logger.Info("Materializer: pattern id=%d booked id=%d on %s %s", pattern.ID, resp.BookingID, resp.Date, resp.StartTime)

	case errors.Is(err, generate_next_booking.ErrSeriesExhausted):
		stats.Completed++
		m.logger.Info("Materializer: pattern id=%d series exhausted, completed", pattern.ID)

	case errors.Is(err, generate_next_booking.ErrPatternNotActive),
		errors.Is(err, generate_next_booking.ErrPatternNotFound):
		stats.Skipped++
		m.logger.Info("Materializer: pattern id=%d no longer eligible: %v", pattern.ID, err)

	case errors.Is(err, generate_next_booking.ErrNoBookableOccurrence):
		stats.Skipped++
		m.logger.Warn("Materializer: pattern id=%d has no bookable occurrence: %v", pattern.ID, err)

	default:
		stats.Failed++
		m.logger.Error("Materializer: pattern id=%d failed: %v", pattern.ID, err)
	}
}
