package patterns

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	patternRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/pattern"
	"github.com/m04kA/SMC-ScheduleService/internal/service/patterns/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakePatternRepo struct {
	patterns map[int64]*domain.RecurrencePattern
	nextID   int64

	createErr error
}

func newFakePatternRepo() *fakePatternRepo {
	return &fakePatternRepo{patterns: make(map[int64]*domain.RecurrencePattern), nextID: 1}
}

func (r *fakePatternRepo) Create(ctx context.Context, p *domain.RecurrencePattern) (*domain.RecurrencePattern, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	stored := *p
	r.patterns[p.ID] = &stored
	return p, nil
}

func (r *fakePatternRepo) GetByID(ctx context.Context, id int64) (*domain.RecurrencePattern, error) {
	p, ok := r.patterns[id]
	if !ok {
		return nil, patternRepo.ErrPatternNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePatternRepo) GetByClient(ctx context.Context, clientID int64, status *domain.PatternStatus) ([]*domain.RecurrencePattern, error) {
	out := make([]*domain.RecurrencePattern, 0)
	for _, p := range r.patterns {
		if p.ClientID != clientID {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakePatternRepo) UpdateStatus(ctx context.Context, id int64, status domain.PatternStatus) error {
	p, ok := r.patterns[id]
	if !ok {
		return patternRepo.ErrPatternNotFound
	}
	p.Status = status
	return nil
}

func (r *fakePatternRepo) CancelWithEndDate(ctx context.Context, id int64, endDate time.Time) error {
	p, ok := r.patterns[id]
	if !ok {
		return patternRepo.ErrPatternNotFound
	}
	p.Status = domain.PatternStatusCancelled
	p.EndDate = &endDate
	return nil
}

func storedPattern(repo *fakePatternRepo, status domain.PatternStatus) *domain.RecurrencePattern {
	p := &domain.RecurrencePattern{
		ClientID:        10,
		StaffID:         20,
		ServiceID:       30,
		Frequency:       domain.FrequencyWeekly,
		Interval:        1,
		DayOfWeek:       ptr.Ptr(1),
		StartTime:       "10:00",
		DurationMinutes: 60,
		StartDate:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Status:          status,
		PaymentPlan:     domain.PaymentPerSession,
	}
	created, _ := repo.Create(context.Background(), p)
	return created
}

func TestService_Create(t *testing.T) {
	repo := newFakePatternRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreatePatternRequest{
		ClientID:        10,
		StaffID:         20,
		ServiceID:       30,
		Frequency:       "weekly",
		DayOfWeek:       ptr.Ptr(1),
		StartTime:       "10:00",
		DurationMinutes: 60,
		StartDate:       "2025-06-02",
	})
	require.NoError(t, err)

	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, 1, resp.Interval)
	assert.Equal(t, "per_session", resp.PaymentPlan)
	assert.Empty(t, resp.GeneratedBookingIDs)
}

func TestService_Create_Invalid(t *testing.T) {
	repo := newFakePatternRepo()
	svc := NewService(repo, nopLogger{})

	tests := []struct {
		name string
		req  models.CreatePatternRequest
	}{
		{
			name: "unknown frequency",
			req:  models.CreatePatternRequest{Frequency: "daily", StartTime: "10:00", DurationMinutes: 60, StartDate: "2025-06-02"},
		},
		{
			name: "bad start time",
			req:  models.CreatePatternRequest{Frequency: "weekly", StartTime: "25:00", DurationMinutes: 60, StartDate: "2025-06-02"},
		},
		{
			name: "duration out of range",
			req:  models.CreatePatternRequest{Frequency: "weekly", StartTime: "10:00", DurationMinutes: 2, StartDate: "2025-06-02"},
		},
		{
			name: "end before start",
			req: models.CreatePatternRequest{
				Frequency: "weekly", StartTime: "10:00", DurationMinutes: 60,
				StartDate: "2025-06-02", EndDate: ptr.Ptr("2025-05-01"),
			},
		},
		{
			name: "day of week out of range",
			req: models.CreatePatternRequest{
				Frequency: "weekly", DayOfWeek: ptr.Ptr(7),
				StartTime: "10:00", DurationMinutes: 60, StartDate: "2025-06-02",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_CreateFromRule(t *testing.T) {
	repo := newFakePatternRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.CreateFromRule(context.Background(), &models.CreatePatternFromRuleRequest{
		ClientID:        10,
		StaffID:         20,
		ServiceID:       30,
		Rule:            "FREQ=WEEKLY;INTERVAL=2;BYDAY=FR;COUNT=12",
		StartTime:       "14:00",
		DurationMinutes: 45,
		StartDate:       "2025-06-06",
	})
	require.NoError(t, err)

	assert.Equal(t, "biweekly", resp.Frequency)
	assert.Equal(t, 1, resp.Interval)
	require.NotNil(t, resp.DayOfWeek)
	assert.Equal(t, 5, *resp.DayOfWeek)
	require.NotNil(t, resp.OccurrenceLimit)
	assert.Equal(t, 12, *resp.OccurrenceLimit)
}

func TestService_CreateFromRule_Unsupported(t *testing.T) {
	repo := newFakePatternRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.CreateFromRule(context.Background(), &models.CreatePatternFromRuleRequest{
		Rule:            "FREQ=DAILY",
		StartTime:       "10:00",
		DurationMinutes: 60,
		StartDate:       "2025-06-02",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		from       domain.PatternStatus
		run        func(svc *Service, id int64) (*models.PatternResponse, error)
		wantStatus string
		wantErr    error
	}{
		{
			name:       "pause active",
			from:       domain.PatternStatusActive,
			run:        func(svc *Service, id int64) (*models.PatternResponse, error) { return svc.Pause(context.Background(), id) },
			wantStatus: "paused",
		},
		{
			name:    "pause paused",
			from:    domain.PatternStatusPaused,
			run:     func(svc *Service, id int64) (*models.PatternResponse, error) { return svc.Pause(context.Background(), id) },
			wantErr: ErrInvalidTransition,
		},
		{
			name:       "resume paused",
			from:       domain.PatternStatusPaused,
			run:        func(svc *Service, id int64) (*models.PatternResponse, error) { return svc.Resume(context.Background(), id) },
			wantStatus: "active",
		},
		{
			name:    "resume active",
			from:    domain.PatternStatusActive,
			run:     func(svc *Service, id int64) (*models.PatternResponse, error) { return svc.Resume(context.Background(), id) },
			wantErr: ErrInvalidTransition,
		},
		{
			name:       "complete active",
			from:       domain.PatternStatusActive,
			run:        func(svc *Service, id int64) (*models.PatternResponse, error) { return svc.Complete(context.Background(), id) },
			wantStatus: "completed",
		},
		{
			name:    "complete cancelled",
			from:    domain.PatternStatusCancelled,
			run:     func(svc *Service, id int64) (*models.PatternResponse, error) { return svc.Complete(context.Background(), id) },
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "cancel completed",
			from:    domain.PatternStatusCompleted,
			run:     func(svc *Service, id int64) (*models.PatternResponse, error) { return svc.Cancel(context.Background(), id) },
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePatternRepo()
			svc := NewService(repo, nopLogger{})
			created := storedPattern(repo, tt.from)

			resp, err := tt.run(svc, created.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Status)
		})
	}
}

func TestService_Cancel_SetsEndDate(t *testing.T) {
	repo := newFakePatternRepo()
	svc := NewService(repo, nopLogger{})
	created := storedPattern(repo, domain.PatternStatusActive)

	resp, err := svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.EndDate)
	assert.Equal(t, domain.DateOnly(time.Now()).Format(domain.DateFormat), *resp.EndDate)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PatternStatusCancelled, stored.Status)
	require.NotNil(t, stored.EndDate)
}

func TestService_NotFound(t *testing.T) {
	repo := newFakePatternRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPatternNotFound)

	_, err = svc.Pause(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPatternNotFound)
}

func TestService_GetByClient(t *testing.T) {
	repo := newFakePatternRepo()
	svc := NewService(repo, nopLogger{})
	storedPattern(repo, domain.PatternStatusActive)
	storedPattern(repo, domain.PatternStatusPaused)

	all, err := svc.GetByClient(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.Len(t, all.Patterns, 2)

	active, err := svc.GetByClient(context.Background(), 10, ptr.Ptr("active"))
	require.NoError(t, err)
	assert.Len(t, active.Patterns, 1)

	_, err = svc.GetByClient(context.Background(), 10, ptr.Ptr("bogus"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_RepositoryError(t *testing.T) {
	repo := newFakePatternRepo()
	repo.createErr = errors.New("connection refused")
	svc := NewService(repo, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreatePatternRequest{
		Frequency:       "weekly",
		StartTime:       "10:00",
		DurationMinutes: 60,
		StartDate:       "2025-06-02",
	})
	assert.ErrorIs(t, err, ErrInternal)
}
