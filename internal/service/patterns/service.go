package patterns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/ical"
	patternRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/pattern"
	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns/models"
)

// Service сервис для управления паттернами повторяющихся занятий
type Service struct {
	patternRepo PatternRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса паттернов
func NewService(patternRepo PatternRepository, logger Logger) *Service {
	return &Service{
		patternRepo: patternRepo,
		logger:      logger,
	}
}

// Create создает паттерн повторения
func (s *Service) Create(ctx context.Context, req *models.CreatePatternRequest) (*models.PatternResponse, error) {
	s.logger.Info("Create: creating %s pattern for client=%d staff=%d", req.Frequency, req.ClientID, req.StaffID)

	pattern, err := req.ToDomainPattern()
	if err != nil {
		s.logger.Warn("Create: invalid pattern for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.patternRepo.Create(ctx, pattern)
	if err != nil {
		s.logger.Error("Create: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created pattern id=%d for client=%d", created.ID, created.ClientID)
	return models.FromDomainPattern(created), nil
}

// CreateFromRule создает паттерн из строки iCalendar RRULE
func (s *Service) CreateFromRule(ctx context.Context, req *models.CreatePatternFromRuleRequest) (*models.PatternResponse, error) {
	s.logger.Info("CreateFromRule: creating pattern from rule %q for client=%d", req.Rule, req.ClientID)

	rule, err := ical.PatternFromRule(req.Rule)
	if err != nil {
		s.logger.Warn("CreateFromRule: unsupported rule %q for client=%d: %v", req.Rule, req.ClientID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	createReq := &models.CreatePatternRequest{
		ClientID:        req.ClientID,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		Frequency:       string(rule.Frequency),
		Interval:        rule.Interval,
		DayOfWeek:       rule.DayOfWeek,
		DayOfMonth:      rule.DayOfMonth,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		TimeZone:        req.TimeZone,
		StartDate:       req.StartDate,
		OccurrenceLimit: rule.OccurrenceLimit,
		PaymentPlan:     req.PaymentPlan,
	}
	if rule.EndDate != nil {
		endDate := rule.EndDate.Format(domain.DateFormat)
		createReq.EndDate = &endDate
	}

	return s.Create(ctx, createReq)
}

// GetByID получает паттерн по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PatternResponse, error) {
	s.logger.Info("GetByID: fetching pattern id=%d", id)

	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainPattern(pattern), nil
}

// GetByClient получает паттерны клиента, опционально фильтруя по статусу
func (s *Service) GetByClient(ctx context.Context, clientID int64, status *string) (*models.PatternListResponse, error) {
	s.logger.Info("GetByClient: fetching patterns for client=%d", clientID)

	var domainStatus *domain.PatternStatus
	if status != nil {
		converted, err := models.ToDomainPatternStatus(*status)
		if err != nil {
			s.logger.Warn("GetByClient: invalid status=%s for client=%d", *status, clientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &converted
	}

	patterns, err := s.patternRepo.GetByClient(ctx, clientID, domainStatus)
	if err != nil {
		s.logger.Error("GetByClient: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByClient: successfully fetched %d patterns for client=%d", len(patterns), clientID)
	return models.FromDomainPatternList(patterns), nil
}

// Pause приостанавливает активный паттерн
func (s *Service) Pause(ctx context.Context, id int64) (*models.PatternResponse, error) {
	return s.transition(ctx, id, "Pause", domain.PatternStatusPaused, func(p *domain.RecurrencePattern) bool {
		return p.CanPause()
	})
}

// Resume возобновляет приостановленный паттерн
func (s *Service) Resume(ctx context.Context, id int64) (*models.PatternResponse, error) {
	return s.transition(ctx, id, "Resume", domain.PatternStatusActive, func(p *domain.RecurrencePattern) bool {
		return p.CanResume()
	})
}

// Complete помечает паттерн исчерпанным
func (s *Service) Complete(ctx context.Context, id int64) (*models.PatternResponse, error) {
	return s.transition(ctx, id, "Complete", domain.PatternStatusCompleted, func(p *domain.RecurrencePattern) bool {
		return p.CanComplete()
	})
}

// Cancel отменяет паттерн и закрывает серию сегодняшней датой
func (s *Service) Cancel(ctx context.Context, id int64) (*models.PatternResponse, error) {
	s.logger.Info("Cancel: cancelling pattern id=%d", id)

	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Cancel", id, err)
	}

	if !pattern.CanCancel() {
		s.logger.Warn("Cancel: pattern id=%d cannot be cancelled, status=%s", id, pattern.Status)
		return nil, ErrInvalidTransition
	}

	endDate := domain.DateOnly(time.Now())
	if err := s.patternRepo.CancelWithEndDate(ctx, id, endDate); err != nil {
		return nil, s.mapRepoError("Cancel", id, err)
	}

	pattern.Status = domain.PatternStatusCancelled
	pattern.EndDate = &endDate

	s.logger.Info("Cancel: successfully cancelled pattern id=%d, series ends %s", id, endDate.Format(domain.DateFormat))
	return models.FromDomainPattern(pattern), nil
}

// transition выполняет смену статуса с проверкой допустимости перехода
func (s *Service) transition(ctx context.Context, id int64, method string, target domain.PatternStatus, allowed func(*domain.RecurrencePattern) bool) (*models.PatternResponse, error) {
	s.logger.Info("%s: updating pattern id=%d to status=%s", method, id, target)

	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(method, id, err)
	}

	if !allowed(pattern) {
		s.logger.Warn("%s: transition not allowed for pattern id=%d, status=%s", method, id, pattern.Status)
		return nil, ErrInvalidTransition
	}

	if err := s.patternRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, s.mapRepoError(method, id, err)
	}

	pattern.Status = target

	s.logger.Info("%s: successfully updated pattern id=%d to status=%s", method, id, target)
	return models.FromDomainPattern(pattern), nil
}

// mapRepoError переводит ошибки репозитория в сервисные
func (s *Service) mapRepoError(method string, patternID int64, err error) error {
	if errors.Is(err, patternRepo.ErrPatternNotFound) {
		s.logger.Warn("%s: pattern id=%d not found", method, patternID)
		return ErrPatternNotFound
	}
	s.logger.Error("%s: repository error for pattern id=%d: %v", method, patternID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}
