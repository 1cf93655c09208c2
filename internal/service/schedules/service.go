package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedules/models"
)

// Service сервис для управления расписаниями доступности
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает расписание сотрудника
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: creating schedule for staff=%d", req.StaffID)

	schedule, err := req.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("Create: invalid schedule for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		s.logger.Error("Create: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created schedule id=%d for staff=%d", created.ID, created.StaffID)
	return models.FromDomainSchedule(created), nil
}

// GetByStaff получает все расписания сотрудника
func (s *Service) GetByStaff(ctx context.Context, staffID int64) (*models.ScheduleListResponse, error) {
	s.logger.Info("GetByStaff: fetching schedules for staff=%d", staffID)

	schedules, err := s.scheduleRepo.GetByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("GetByStaff: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetByStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByStaff: successfully fetched %d schedules for staff=%d", len(schedules), staffID)
	return models.FromDomainScheduleList(schedules), nil
}

// ReplaceWeeklySchedule полностью заменяет недельный шаблон расписания
func (s *Service) ReplaceWeeklySchedule(ctx context.Context, scheduleID int64, req *models.ReplaceWeeklyScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceWeeklySchedule: updating schedule id=%d", scheduleID)

	weekly, err := models.ToDomainWeekly(req.WeeklySchedule)
	if err != nil {
		s.logger.Warn("ReplaceWeeklySchedule: invalid weekly schedule for id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.AvailabilitySchedule

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
		if err != nil {
			return err
		}

		if err := s.scheduleRepo.ReplaceWeeklySchedule(ctx, schedule.ID, weekly); err != nil {
			return err
		}

		schedule.WeeklySchedule = weekly
		updated = schedule
		return nil
	})
	if err != nil {
		return nil, s.mapRepoError("ReplaceWeeklySchedule", scheduleID, err)
	}

	s.logger.Info("ReplaceWeeklySchedule: successfully updated schedule id=%d", scheduleID)
	return models.FromDomainSchedule(updated), nil
}

// AddException добавляет исключение на дату.
// Существующее исключение на ту же дату заменяется новым
func (s *Service) AddException(ctx context.Context, scheduleID int64, req *models.AddExceptionRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("AddException: adding exception on %s to schedule id=%d", req.Date, scheduleID)

	exception, err := req.ToDomainException()
	if err != nil {
		s.logger.Warn("AddException: invalid exception for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.AvailabilitySchedule

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
		if err != nil {
			return err
		}

		exceptions := removeExceptionOn(schedule.Exceptions, exception.Date)
		exceptions = append(exceptions, *exception)

		if err := s.scheduleRepo.ReplaceExceptions(ctx, schedule.ID, exceptions); err != nil {
			return err
		}

		schedule.Exceptions = exceptions
		updated = schedule
		return nil
	})
	if err != nil {
		return nil, s.mapRepoError("AddException", scheduleID, err)
	}

	s.logger.Info("AddException: successfully added exception on %s to schedule id=%d", req.Date, scheduleID)
	return models.FromDomainSchedule(updated), nil
}

// RemoveException удаляет исключение на дату
func (s *Service) RemoveException(ctx context.Context, scheduleID int64, date time.Time) (*models.ScheduleResponse, error) {
	s.logger.Info("RemoveException: removing exception on %s from schedule id=%d", date.Format(domain.DateFormat), scheduleID)

	var updated *domain.AvailabilitySchedule

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
		if err != nil {
			return err
		}

		exceptions := removeExceptionOn(schedule.Exceptions, date)
		if len(exceptions) == len(schedule.Exceptions) {
			return ErrExceptionNotFound
		}

		if err := s.scheduleRepo.ReplaceExceptions(ctx, schedule.ID, exceptions); err != nil {
			return err
		}

		schedule.Exceptions = exceptions
		updated = schedule
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrExceptionNotFound) {
			s.logger.Warn("RemoveException: no exception on %s in schedule id=%d", date.Format(domain.DateFormat), scheduleID)
			return nil, ErrExceptionNotFound
		}
		return nil, s.mapRepoError("RemoveException", scheduleID, err)
	}

	s.logger.Info("RemoveException: successfully removed exception from schedule id=%d", scheduleID)
	return models.FromDomainSchedule(updated), nil
}

// AddOverride добавляет переопределение часов на дату.
// Существующее переопределение на ту же дату заменяется новым
func (s *Service) AddOverride(ctx context.Context, scheduleID int64, req *models.AddOverrideRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("AddOverride: adding override on %s to schedule id=%d", req.Date, scheduleID)

	override, err := req.ToDomainOverride()
	if err != nil {
		s.logger.Warn("AddOverride: invalid override for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var updated *domain.AvailabilitySchedule

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
		if err != nil {
			return err
		}

		overrides := removeOverrideOn(schedule.Overrides, override.Date)
		overrides = append(overrides, *override)

		if err := s.scheduleRepo.ReplaceOverrides(ctx, schedule.ID, overrides); err != nil {
			return err
		}

		schedule.Overrides = overrides
		updated = schedule
		return nil
	})
	if err != nil {
		return nil, s.mapRepoError("AddOverride", scheduleID, err)
	}

	s.logger.Info("AddOverride: successfully added override on %s to schedule id=%d", req.Date, scheduleID)
	return models.FromDomainSchedule(updated), nil
}

// RemoveOverride удаляет переопределение часов на дату
func (s *Service) RemoveOverride(ctx context.Context, scheduleID int64, date time.Time) (*models.ScheduleResponse, error) {
	s.logger.Info("RemoveOverride: removing override on %s from schedule id=%d", date.Format(domain.DateFormat), scheduleID)

	var updated *domain.AvailabilitySchedule

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
		if err != nil {
			return err
		}

		overrides := removeOverrideOn(schedule.Overrides, date)
		if len(overrides) == len(schedule.Overrides) {
			return ErrOverrideNotFound
		}

		if err := s.scheduleRepo.ReplaceOverrides(ctx, schedule.ID, overrides); err != nil {
			return err
		}

		schedule.Overrides = overrides
		updated = schedule
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOverrideNotFound) {
			s.logger.Warn("RemoveOverride: no override on %s in schedule id=%d", date.Format(domain.DateFormat), scheduleID)
			return nil, ErrOverrideNotFound
		}
		return nil, s.mapRepoError("RemoveOverride", scheduleID, err)
	}

	s.logger.Info("RemoveOverride: successfully removed override from schedule id=%d", scheduleID)
	return models.FromDomainSchedule(updated), nil
}

// Delete удаляет расписание
func (s *Service) Delete(ctx context.Context, scheduleID int64) error {
	s.logger.Info("Delete: deleting schedule id=%d", scheduleID)

	if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		return s.mapRepoError("Delete", scheduleID, err)
	}

	s.logger.Info("Delete: successfully deleted schedule id=%d", scheduleID)
	return nil
}

// mapRepoError переводит ошибки репозитория в сервисные
func (s *Service) mapRepoError(method string, scheduleID int64, err error) error {
	if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Warn("%s: schedule id=%d not found", method, scheduleID)
		return ErrScheduleNotFound
	}
	s.logger.Error("%s: repository error for schedule id=%d: %v", method, scheduleID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func removeExceptionOn(exceptions []domain.ScheduleException, date time.Time) []domain.ScheduleException {
	out := make([]domain.ScheduleException, 0, len(exceptions))
	for _, e := range exceptions {
		if !domain.SameDate(e.Date, date) {
			out = append(out, e)
		}
	}
	return out
}

func removeOverrideOn(overrides []domain.ScheduleOverride, date time.Time) []domain.ScheduleOverride {
	out := make([]domain.ScheduleOverride, 0, len(overrides))
	for _, o := range overrides {
		if !domain.SameDate(o.Date, date) {
			out = append(out, o)
		}
	}
	return out
}
