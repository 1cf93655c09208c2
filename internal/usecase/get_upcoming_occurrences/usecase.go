package get_upcoming_occurrences

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	patternRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/pattern"
	"github.com/m04kA/SMC-ScheduleService/internal/recurrence"
)

// UseCase use case для получения ближайших занятий паттерна
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

// Execute выполняет use case получения ближайших занятий
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetUpcomingOccurrences: pattern=%d", req.PatternID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetUpcomingOccurrences: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем паттерн
	pattern, err := uc.patternRepo.GetByID(ctx, req.PatternID)
	if err != nil {
		if errors.Is(err, patternRepo.ErrPatternNotFound) {
			uc.logger.Warn("GetUpcomingOccurrences: pattern id=%d not found", req.PatternID)
			return nil, ErrPatternNotFound
		}
		uc.logger.Error("GetUpcomingOccurrences: failed to get pattern id=%d: %v", req.PatternID, err)
		return nil, fmt.Errorf("%w: failed to get pattern: %v", ErrInternal, err)
	}

	// 3. Собираем параметры выборки
	opts := recurrence.UpcomingOptions{From: uc.timeProvider.Now()}
	if req.Count != nil {
		opts.Count = *req.Count
	}
	if req.From != nil {
		opts.From = *req.From
	}

	// 4. Вычисляем занятия
	occurrences := uc.engine.UpcomingOccurrences(pattern, opts)

	// 5. Собираем ответ с временем начала и конца занятия
	endTime, err := pattern.StartTime.AddMinutes(pattern.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetUpcomingOccurrences: bad start time %q in pattern id=%d: %v", pattern.StartTime, pattern.ID, err)
		return nil, fmt.Errorf("%w: bad pattern start time: %v", ErrInternal, err)
	}

	resp := &Response{
		PatternID:   pattern.ID,
		Status:      string(pattern.Status),
		Occurrences: make([]Occurrence, 0, len(occurrences)),
	}
	for _, occ := range occurrences {
		resp.Occurrences = append(resp.Occurrences, Occurrence{
			Date:      occ.Format(domain.DateFormat),
			StartTime: pattern.StartTime.String(),
			EndTime:   endTime.String(),
		})
	}

	uc.logger.Info("GetUpcomingOccurrences: computed %d occurrences for pattern id=%d", len(resp.Occurrences), pattern.ID)
	return resp, nil
}
