package export_pattern_feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/ical"
	patternRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/pattern"
)

// UseCase use case экспорта паттерна календарной лентой iCalendar
type UseCase struct {
	patternRepo  PatternRepository
	engine       RecurrenceEngine
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	patternRepo PatternRepository,
	engine RecurrenceEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		patternRepo:  patternRepo,
		engine:       engine,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case экспорта календарной ленты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExportPatternFeed: pattern=%d", req.PatternID)

	// 1. Валидация входных данных
	if req.PatternID <= 0 {
		uc.logger.Warn("ExportPatternFeed: invalid pattern id=%d", req.PatternID)
		return nil, fmt.Errorf("%w: pattern id must be positive", ErrInvalidInput)
	}

	// 2. Получаем паттерн
	pattern, err := uc.patternRepo.GetByID(ctx, req.PatternID)
	if err != nil {
		if errors.Is(err, patternRepo.ErrPatternNotFound) {
			uc.logger.Warn("ExportPatternFeed: pattern id=%d not found", req.PatternID)
			return nil, ErrPatternNotFound
		}
		uc.logger.Error("ExportPatternFeed: failed to get pattern id=%d: %v", req.PatternID, err)
		return nil, fmt.Errorf("%w: failed to get pattern: %v", ErrInternal, err)
	}

	// 3. Вычисляем все занятия серии и собираем календарь
	occurrences := uc.engine.OccurrenceDates(pattern, 0)

	feed, err := ical.BuildFeed(pattern, occurrences, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("ExportPatternFeed: failed to build feed for pattern id=%d: %v", pattern.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	uc.logger.Info("ExportPatternFeed: built feed with %d events for pattern id=%d", len(occurrences), pattern.ID)

	return &Response{
		Filename: fmt.Sprintf("pattern-%d.ics", pattern.ID),
		Body:     feed,
	}, nil
}
