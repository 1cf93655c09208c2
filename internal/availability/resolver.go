package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Resolver определяет фактическую доступность сотрудника на конкретную дату,
// применяя приоритет: исключение → переопределение → недельный шаблон.
type Resolver struct {
	scheduleRepo ScheduleRepository
	picker       SchedulePicker
	logger       Logger
}

// NewResolver создает резолвер с политикой выбора расписания по умолчанию
func NewResolver(scheduleRepo ScheduleRepository, logger Logger) *Resolver {
	return NewResolverWithPicker(scheduleRepo, MostRecentlyCreated{}, logger)
}

// NewResolverWithPicker создает резолвер с явной политикой выбора расписания
func NewResolverWithPicker(scheduleRepo ScheduleRepository, picker SchedulePicker, logger Logger) *Resolver {
	return &Resolver{
		scheduleRepo: scheduleRepo,
		picker:       picker,
		logger:       logger,
	}
}

// GetDailyAvailability возвращает рабочие окна сотрудника на дату.
// Возвращает (nil, nil), когда активного расписания на дату нет.
func (r *Resolver) GetDailyAvailability(ctx context.Context, staffID int64, date time.Time) (*domain.DayAvailability, error) {
	r.logger.Info("GetDailyAvailability: resolving staff=%d date=%s", staffID, date.Format(domain.DateFormat))

	schedules, err := r.scheduleRepo.GetActiveForDate(ctx, staffID, date)
	if err != nil {
		r.logger.Error("GetDailyAvailability: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetDailyAvailability - repository error: %v", ErrInternal, err)
	}
	if len(schedules) == 0 {
		r.logger.Info("GetDailyAvailability: no active schedule for staff=%d date=%s", staffID, date.Format(domain.DateFormat))
		return nil, nil
	}

	schedule := r.picker.Pick(schedules)
	if schedule == nil {
		return nil, nil
	}

	return resolveDay(schedule, date), nil
}

// IsAvailableAt проверяет, что интервал [start, end) целиком помещается в одно
// рабочее окно сотрудника. Интервал, накрывающий границу двух соседних окон,
// доступным не считается.
func (r *Resolver) IsAvailableAt(ctx context.Context, staffID int64, start, end time.Time) (bool, error) {
	day, err := r.GetDailyAvailability(ctx, staffID, start)
	if err != nil {
		return false, err
	}
	if day == nil || !day.Available {
		return false, nil
	}

	startTime := types.NewTimeString(start)
	endTime := types.NewTimeString(end)
	for _, slot := range day.TimeSlots {
		if slot.Contains(startTime, endTime) {
			return true, nil
		}
	}
	return false, nil
}

func resolveDay(schedule *domain.AvailabilitySchedule, date time.Time) *domain.DayAvailability {
	if ex := schedule.ExceptionOn(date); ex != nil {
		if ex.IsUnavailable() {
			reason := ""
			if ex.Reason != nil {
				reason = *ex.Reason
			}
			return &domain.DayAvailability{Available: false, Reason: reason, TimeSlots: []domain.TimeSlot{}}
		}
		return &domain.DayAvailability{Available: true, TimeSlots: ex.TimeSlots}
	}

	if ov := schedule.OverrideOn(date); ov != nil {
		return &domain.DayAvailability{Available: true, TimeSlots: ov.TimeSlots}
	}

	entry := schedule.WeekdayEntry(date.Weekday())
	if entry == nil || len(entry.TimeSlots) == 0 {
		return &domain.DayAvailability{Available: false, Reason: domain.ReasonNotScheduled, TimeSlots: []domain.TimeSlot{}}
	}
	return &domain.DayAvailability{Available: true, TimeSlots: entry.TimeSlots}
}
