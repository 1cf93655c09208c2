package generate_next_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	bookingClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/bookingservice"
	patternRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/pattern"
)

const (
	// occurrenceProbeWindow - сколько дат серии вперёд проверяется,
	// когда сотрудник недоступен в ближайшую дату
	occurrenceProbeWindow = 8

	// maxAppendRetries - число повторов CAS-записи списка занятий
	maxAppendRetries = 3
)

// UseCase use case материализации следующего занятия паттерна:
// вычисляет дату, проверяет доступность сотрудника, создает бронирование
// в BookingService и атомарно дописывает его ID в паттерн
type UseCase struct {
	patternRepo   PatternRepository
	engine        RecurrenceEngine
	resolver      AvailabilityResolver
	bookingClient BookingServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	patternRepo PatternRepository,
	engine RecurrenceEngine,
	resolver AvailabilityResolver,
	bookingClient BookingServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		patternRepo:   patternRepo,
		engine:        engine,
		resolver:      resolver,
		bookingClient: bookingClient,
		logger:        logger,
	}
}

// Execute выполняет use case материализации следующего занятия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateNextBooking: pattern=%d", req.PatternID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateNextBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем паттерн, материализуются только активные
	pattern, err := uc.patternRepo.GetByID(ctx, req.PatternID)
	if err != nil {
		if errors.Is(err, patternRepo.ErrPatternNotFound) {
			uc.logger.Warn("GenerateNextBooking: pattern id=%d not found", req.PatternID)
			return nil, ErrPatternNotFound
		}
		uc.logger.Error("GenerateNextBooking: failed to get pattern id=%d: %v", req.PatternID, err)
		return nil, fmt.Errorf("%w: failed to get pattern: %v", ErrInternal, err)
	}
	if !pattern.IsActive() {
		uc.logger.Warn("GenerateNextBooking: pattern id=%d is not active, status=%s", pattern.ID, pattern.Status)
		return nil, ErrPatternNotActive
	}

	// 3. Вычисляем кандидатов: следующее занятие серии плюс окно поиска
	// на случай недоступности сотрудника
	materialized := len(pattern.GeneratedBookingIDs)
	dates := uc.engine.OccurrenceDates(pattern, materialized+occurrenceProbeWindow)
	if len(dates) <= materialized {
		uc.logger.Info("GenerateNextBooking: series exhausted for pattern id=%d after %d bookings", pattern.ID, materialized)
		uc.completePattern(ctx, pattern)
		return nil, ErrSeriesExhausted
	}
	candidates := dates[materialized:]

	// 4. Ищем первую дату, на которую сотрудник доступен
	var (
		occurrence time.Time
		skipped    []string
		found      bool
	)
	for _, date := range candidates {
		start, end, err := uc.occurrenceBounds(pattern, date)
		if err != nil {
			return nil, err
		}

		available, err := uc.resolver.IsAvailableAt(ctx, pattern.StaffID, start, end)
		if err != nil {
			uc.logger.Error("GenerateNextBooking: availability check failed for pattern id=%d on %s: %v",
				pattern.ID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if available {
			occurrence = date
			found = true
			break
		}

		uc.logger.Info("GenerateNextBooking: staff=%d unavailable on %s, skipping", pattern.StaffID, date.Format(domain.DateFormat))
		skipped = append(skipped, date.Format(domain.DateFormat))
	}
	if !found {
		uc.logger.Warn("GenerateNextBooking: no bookable occurrence for pattern id=%d within %d dates", pattern.ID, len(candidates))
		return nil, ErrNoBookableOccurrence
	}

	// 5. Создаем бронирование в BookingService
	booking, err := uc.bookingClient.CreateBooking(ctx, bookingClient.CreateBookingRequest{
		ClientID:        pattern.ClientID,
		StaffID:         pattern.StaffID,
		ServiceID:       pattern.ServiceID,
		Date:            occurrence.Format(domain.DateFormat),
		StartTime:       pattern.StartTime.String(),
		DurationMinutes: pattern.DurationMinutes,
		PatternID:       &pattern.ID,
		PaymentPlan:     string(pattern.PaymentPlan),
	})
	if err != nil {
		return nil, uc.mapBookingError(pattern.ID, occurrence, err)
	}

	// 6. Атомарно дописываем ID бронирования в паттерн.
	// При конкурентном изменении перечитываем паттерн и повторяем
	recordedCount, err := uc.appendBookingID(ctx, pattern.ID, booking.ID, materialized)
	if err != nil {
		return nil, err
	}

	// 7. Если лимит занятий исчерпан, серия завершается
	completed := false
	if pattern.OccurrenceLimit != nil && recordedCount >= *pattern.OccurrenceLimit {
		uc.completePattern(ctx, pattern)
		completed = true
	}

	endTime, err := pattern.StartTime.AddMinutes(pattern.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: bad pattern start time: %v", ErrInternal, err)
	}

	uc.logger.Info("GenerateNextBooking: created booking id=%d for pattern id=%d on %s",
		booking.ID, pattern.ID, occurrence.Format(domain.DateFormat))

	return &Response{
		PatternID:    pattern.ID,
		BookingID:    booking.ID,
		Date:         occurrence.Format(domain.DateFormat),
		StartTime:    pattern.StartTime.String(),
		EndTime:      endTime.String(),
		SkippedDates: skipped,
		Completed:    completed,
	}, nil
}

// occurrenceBounds вычисляет интервал занятия на дате
func (uc *UseCase) occurrenceBounds(pattern *domain.RecurrencePattern, date time.Time) (time.Time, time.Time, error) {
	startMinutes, err := pattern.StartTime.MinutesOfDay()
	if err != nil {
		uc.logger.Error("GenerateNextBooking: bad start time %q in pattern id=%d: %v", pattern.StartTime, pattern.ID, err)
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad pattern start time: %v", ErrInternal, err)
	}

	start := date.Add(time.Duration(startMinutes) * time.Minute)
	end := start.Add(time.Duration(pattern.DurationMinutes) * time.Minute)
	return start, end, nil
}

// appendBookingID дописывает ID бронирования через CAS с повторами.
// Возвращает итоговую длину списка занятий
func (uc *UseCase) appendBookingID(ctx context.Context, patternID, bookingID int64, expectedCount int) (int, error) {
	expected := expectedCount

	for attempt := 0; attempt <= maxAppendRetries; attempt++ {
		err := uc.patternRepo.AppendGeneratedBooking(ctx, patternID, bookingID, expected)
		if err == nil {
			return expected + 1, nil
		}

		if errors.Is(err, patternRepo.ErrConcurrentAppend) {
			fresh, ferr := uc.patternRepo.GetByID(ctx, patternID)
			if ferr != nil {
				uc.logger.Error("GenerateNextBooking: failed to refetch pattern id=%d: %v", patternID, ferr)
				return 0, fmt.Errorf("%w: failed to refetch pattern: %v", ErrInternal, ferr)
			}

			// Идемпотентный повтор: другой процесс уже записал это же бронирование
			if containsBookingID(fresh.GeneratedBookingIDs, bookingID) {
				uc.logger.Info("GenerateNextBooking: booking id=%d already recorded in pattern id=%d", bookingID, patternID)
				return len(fresh.GeneratedBookingIDs), nil
			}

			uc.logger.Warn("GenerateNextBooking: concurrent append on pattern id=%d, retrying with count=%d",
				patternID, len(fresh.GeneratedBookingIDs))
			expected = len(fresh.GeneratedBookingIDs)
			continue
		}

		if errors.Is(err, patternRepo.ErrPatternNotFound) {
			return 0, ErrPatternNotFound
		}

		uc.logger.Error("GenerateNextBooking: failed to append booking id=%d to pattern id=%d: %v", bookingID, patternID, err)
		return 0, fmt.Errorf("%w: failed to append booking: %v", ErrInternal, err)
	}

	uc.logger.Error("GenerateNextBooking: concurrent append retries exhausted for pattern id=%d", patternID)
	return 0, ErrConcurrentUpdate
}

// completePattern помечает серию завершенной. Ошибка не прерывает основной
// сценарий: бронирование уже создано и записано
func (uc *UseCase) completePattern(ctx context.Context, pattern *domain.RecurrencePattern) {
	if !pattern.CanComplete() {
		return
	}
	if err := uc.patternRepo.UpdateStatus(ctx, pattern.ID, domain.PatternStatusCompleted); err != nil {
		uc.logger.Warn("GenerateNextBooking: failed to complete pattern id=%d: %v", pattern.ID, err)
		return
	}
	uc.logger.Info("GenerateNextBooking: pattern id=%d completed", pattern.ID)
}

// mapBookingError переводит ошибки клиента BookingService в ошибки usecase
func (uc *UseCase) mapBookingError(patternID int64, occurrence time.Time, err error) error {
	date := occurrence.Format(domain.DateFormat)

	switch {
	case errors.Is(err, bookingClient.ErrSlotTaken):
		uc.logger.Warn("GenerateNextBooking: slot on %s already taken for pattern id=%d", date, patternID)
		return ErrOccurrenceTaken
	case errors.Is(err, bookingClient.ErrBookingRejected):
		uc.logger.Warn("GenerateNextBooking: booking on %s rejected for pattern id=%d: %v", date, patternID, err)
		return ErrBookingRejected
	case errors.Is(err, bookingClient.ErrServiceUnavailable):
		uc.logger.Error("GenerateNextBooking: booking service unavailable for pattern id=%d: %v", patternID, err)
		return fmt.Errorf("%w: %v", ErrBookingServiceUnavailable, err)
	default:
		uc.logger.Error("GenerateNextBooking: booking creation failed for pattern id=%d: %v", patternID, err)
		return fmt.Errorf("%w: booking creation failed: %v", ErrInternal, err)
	}
}

func containsBookingID(ids []int64, id int64) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
