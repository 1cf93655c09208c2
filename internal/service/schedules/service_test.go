package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedules/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// noopTxManager прогоняет колбэк без настоящей транзакции
type noopTxManager struct{}

func (noopTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (noopTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (noopTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeScheduleRepo struct {
	schedules map[int64]*domain.AvailabilitySchedule
	nextID    int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[int64]*domain.AvailabilitySchedule), nextID: 1}
}

func (r *fakeScheduleRepo) Create(ctx context.Context, s *domain.AvailabilitySchedule) (*domain.AvailabilitySchedule, error) {
	s.ID = r.nextID
	r.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	stored := *s
	r.schedules[s.ID] = &stored
	return s, nil
}

func (r *fakeScheduleRepo) GetByID(ctx context.Context, id int64) (*domain.AvailabilitySchedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeScheduleRepo) GetByStaff(ctx context.Context, staffID int64) ([]*domain.AvailabilitySchedule, error) {
	out := make([]*domain.AvailabilitySchedule, 0)
	for _, s := range r.schedules {
		if s.StaffID == staffID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) ReplaceWeeklySchedule(ctx context.Context, id int64, weekly []domain.DayScheduleEntry) error {
	s, ok := r.schedules[id]
	if !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	s.WeeklySchedule = weekly
	return nil
}

func (r *fakeScheduleRepo) ReplaceExceptions(ctx context.Context, id int64, exceptions []domain.ScheduleException) error {
	s, ok := r.schedules[id]
	if !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	s.Exceptions = exceptions
	return nil
}

func (r *fakeScheduleRepo) ReplaceOverrides(ctx context.Context, id int64, overrides []domain.ScheduleOverride) error {
	s, ok := r.schedules[id]
	if !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	s.Overrides = overrides
	return nil
}

func (r *fakeScheduleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.schedules[id]; !ok {
		return scheduleRepo.ErrScheduleNotFound
	}
	delete(r.schedules, id)
	return nil
}

func newService(repo *fakeScheduleRepo) *Service {
	return NewService(repo, noopTxManager{}, nopLogger{})
}

func createSchedule(t *testing.T, svc *Service) *models.ScheduleResponse {
	t.Helper()

	resp, err := svc.Create(context.Background(), &models.CreateScheduleRequest{
		StaffID: 7,
		WeeklySchedule: []models.DaySchedulePayload{
			{DayOfWeek: 1, TimeSlots: []models.TimeSlotPayload{{Start: "09:00", End: "17:00"}}},
			{DayOfWeek: 3, TimeSlots: []models.TimeSlotPayload{{Start: "10:00", End: "14:00"}}},
		},
		EffectiveFrom: "2025-01-01",
	})
	require.NoError(t, err)
	return resp
}

func TestService_Create(t *testing.T) {
	svc := newService(newFakeScheduleRepo())

	resp := createSchedule(t, svc)

	assert.Equal(t, int64(7), resp.StaffID)
	assert.Len(t, resp.WeeklySchedule, 2)
	assert.Equal(t, "2025-01-01", resp.EffectiveFrom)
	assert.Nil(t, resp.EffectiveTo)
}

func TestService_Create_Invalid(t *testing.T) {
	svc := newService(newFakeScheduleRepo())

	tests := []struct {
		name string
		req  models.CreateScheduleRequest
	}{
		{
			name: "day of week out of range",
			req: models.CreateScheduleRequest{
				StaffID:        7,
				WeeklySchedule: []models.DaySchedulePayload{{DayOfWeek: 9}},
				EffectiveFrom:  "2025-01-01",
			},
		},
		{
			name: "duplicate day",
			req: models.CreateScheduleRequest{
				StaffID: 7,
				WeeklySchedule: []models.DaySchedulePayload{
					{DayOfWeek: 1, TimeSlots: []models.TimeSlotPayload{{Start: "09:00", End: "12:00"}}},
					{DayOfWeek: 1, TimeSlots: []models.TimeSlotPayload{{Start: "13:00", End: "17:00"}}},
				},
				EffectiveFrom: "2025-01-01",
			},
		},
		{
			name: "inverted slot",
			req: models.CreateScheduleRequest{
				StaffID: 7,
				WeeklySchedule: []models.DaySchedulePayload{
					{DayOfWeek: 1, TimeSlots: []models.TimeSlotPayload{{Start: "17:00", End: "09:00"}}},
				},
				EffectiveFrom: "2025-01-01",
			},
		},
		{
			name: "bad effective date",
			req: models.CreateScheduleRequest{
				StaffID:       7,
				EffectiveFrom: "January 1st",
			},
		},
		{
			name: "effectiveTo before effectiveFrom",
			req: models.CreateScheduleRequest{
				StaffID:       7,
				EffectiveFrom: "2025-06-01",
				EffectiveTo:   ptr.Ptr("2025-01-01"),
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

func TestService_ReplaceWeeklySchedule(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo)
	created := createSchedule(t, svc)

	resp, err := svc.ReplaceWeeklySchedule(context.Background(), created.ID, &models.ReplaceWeeklyScheduleRequest{
		WeeklySchedule: []models.DaySchedulePayload{
			{DayOfWeek: 5, TimeSlots: []models.TimeSlotPayload{{Start: "08:00", End: "16:00"}}},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.WeeklySchedule, 1)
	assert.Equal(t, 5, resp.WeeklySchedule[0].DayOfWeek)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, stored.WeeklySchedule, 1)
}

func TestService_AddException_ReplacesSameDate(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo)
	created := createSchedule(t, svc)

	_, err := svc.AddException(context.Background(), created.ID, &models.AddExceptionRequest{
		Date:   "2025-06-02",
		Kind:   "unavailable",
		Reason: ptr.Ptr("Holiday"),
	})
	require.NoError(t, err)

	resp, err := svc.AddException(context.Background(), created.ID, &models.AddExceptionRequest{
		Date:      "2025-06-02",
		Kind:      "custom_hours",
		TimeSlots: []models.TimeSlotPayload{{Start: "12:00", End: "15:00"}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Exceptions, 1)
	assert.Equal(t, "custom_hours", resp.Exceptions[0].Kind)
}

func TestService_AddException_Invalid(t *testing.T) {
	svc := newService(newFakeScheduleRepo())
	created := createSchedule(t, svc)

	tests := []struct {
		name string
		req  models.AddExceptionRequest
	}{
		{
			name: "unknown kind",
			req:  models.AddExceptionRequest{Date: "2025-06-02", Kind: "vacation"},
		},
		{
			name: "custom hours without slots",
			req:  models.AddExceptionRequest{Date: "2025-06-02", Kind: "custom_hours"},
		},
		{
			name: "bad date",
			req:  models.AddExceptionRequest{Date: "02.06.2025", Kind: "unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddException(context.Background(), created.ID, &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_RemoveException(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo)
	created := createSchedule(t, svc)

	_, err := svc.AddException(context.Background(), created.ID, &models.AddExceptionRequest{
		Date: "2025-06-02",
		Kind: "unavailable",
	})
	require.NoError(t, err)

	resp, err := svc.RemoveException(context.Background(), created.ID, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, resp.Exceptions)

	_, err = svc.RemoveException(context.Background(), created.ID, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrExceptionNotFound)
}

func TestService_AddRemoveOverride(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo)
	created := createSchedule(t, svc)

	resp, err := svc.AddOverride(context.Background(), created.ID, &models.AddOverrideRequest{
		Date:      "2025-06-04",
		TimeSlots: []models.TimeSlotPayload{{Start: "13:00", End: "18:00"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Overrides, 1)

	resp, err = svc.RemoveOverride(context.Background(), created.ID, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, resp.Overrides)

	_, err = svc.RemoveOverride(context.Background(), created.ID, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrOverrideNotFound)
}

func TestService_NotFound(t *testing.T) {
	svc := newService(newFakeScheduleRepo())

	_, err := svc.ReplaceWeeklySchedule(context.Background(), 404, &models.ReplaceWeeklyScheduleRequest{})
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	_, err = svc.AddException(context.Background(), 404, &models.AddExceptionRequest{Date: "2025-06-02", Kind: "unavailable"})
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	err = svc.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo)
	created := createSchedule(t, svc)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err := repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, scheduleRepo.ErrScheduleNotFound)
}
