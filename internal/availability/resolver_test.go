package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeScheduleRepo struct {
	schedules []*domain.AvailabilitySchedule
	err       error
}

func (f *fakeScheduleRepo) GetActiveForDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.AvailabilitySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedules, nil
}

func slot(start, end string) domain.TimeSlot {
	return domain.TimeSlot{Start: types.TimeString(start), End: types.TimeString(end)}
}

// 2025-10-15 is a Wednesday.
var wednesday = time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)

func baseSchedule() *domain.AvailabilitySchedule {
	return &domain.AvailabilitySchedule{
		ID:      1,
		StaffID: 7,
		WeeklySchedule: []domain.DayScheduleEntry{
			{DayOfWeek: 3, TimeSlots: []domain.TimeSlot{slot("09:00", "12:00"), slot("13:00", "17:00")}},
		},
		EffectiveFrom: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestResolver_GetDailyAvailability(t *testing.T) {
	tests := []struct {
		name     string
		schedule func() *domain.AvailabilitySchedule
		date     time.Time
		want     *domain.DayAvailability
	}{
		{
			name:     "weekly template applies",
			schedule: baseSchedule,
			date:     wednesday,
			want: &domain.DayAvailability{
				Available: true,
				TimeSlots: []domain.TimeSlot{slot("09:00", "12:00"), slot("13:00", "17:00")},
			},
		},
		{
			name: "unavailable exception wins over override and template",
			schedule: func() *domain.AvailabilitySchedule {
				s := baseSchedule()
				s.Exceptions = append(s.Exceptions, domain.ScheduleException{
					Date:   wednesday,
					Kind:   domain.ExceptionUnavailable,
					Reason: ptr.Ptr("Holiday"),
				})
				s.Overrides = append(s.Overrides, domain.ScheduleOverride{
					Date:      wednesday,
					TimeSlots: []domain.TimeSlot{slot("08:00", "20:00")},
				})
				return s
			},
			date: wednesday,
			want: &domain.DayAvailability{Available: false, Reason: "Holiday", TimeSlots: []domain.TimeSlot{}},
		},
		{
			name: "custom hours exception replaces the day",
			schedule: func() *domain.AvailabilitySchedule {
				s := baseSchedule()
				s.Exceptions = append(s.Exceptions, domain.ScheduleException{
					Date:      wednesday,
					Kind:      domain.ExceptionCustomHours,
					TimeSlots: []domain.TimeSlot{slot("10:00", "14:00")},
				})
				return s
			},
			date: wednesday,
			want: &domain.DayAvailability{
				Available: true,
				TimeSlots: []domain.TimeSlot{slot("10:00", "14:00")},
			},
		},
		{
			name: "override beats the weekly template",
			schedule: func() *domain.AvailabilitySchedule {
				s := baseSchedule()
				s.Overrides = append(s.Overrides, domain.ScheduleOverride{
					Date:      wednesday,
					TimeSlots: []domain.TimeSlot{slot("08:00", "11:00")},
				})
				return s
			},
			date: wednesday,
			want: &domain.DayAvailability{
				Available: true,
				TimeSlots: []domain.TimeSlot{slot("08:00", "11:00")},
			},
		},
		{
			name:     "weekday without entry reports not scheduled",
			schedule: baseSchedule,
			date:     time.Date(2025, time.October, 18, 0, 0, 0, 0, time.UTC), // Saturday
			want: &domain.DayAvailability{
				Available: false,
				Reason:    domain.ReasonNotScheduled,
				TimeSlots: []domain.TimeSlot{},
			},
		},
		{
			name: "entry with no windows reports not scheduled",
			schedule: func() *domain.AvailabilitySchedule {
				s := baseSchedule()
				s.WeeklySchedule = []domain.DayScheduleEntry{{DayOfWeek: 3, TimeSlots: nil}}
				return s
			},
			date: wednesday,
			want: &domain.DayAvailability{
				Available: false,
				Reason:    domain.ReasonNotScheduled,
				TimeSlots: []domain.TimeSlot{},
			},
		},
		{
			name: "unavailable exception without reason keeps it empty",
			schedule: func() *domain.AvailabilitySchedule {
				s := baseSchedule()
				s.Exceptions = append(s.Exceptions, domain.ScheduleException{
					Date: wednesday,
					Kind: domain.ExceptionUnavailable,
				})
				return s
			},
			date: wednesday,
			want: &domain.DayAvailability{Available: false, Reason: "", TimeSlots: []domain.TimeSlot{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeScheduleRepo{schedules: []*domain.AvailabilitySchedule{tt.schedule()}}
			resolver := NewResolver(repo, nopLogger{})

			got, err := resolver.GetDailyAvailability(context.Background(), 7, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_GetDailyAvailability_NoSchedule(t *testing.T) {
	resolver := NewResolver(&fakeScheduleRepo{}, nopLogger{})

	got, err := resolver.GetDailyAvailability(context.Background(), 7, wednesday)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolver_GetDailyAvailability_RepositoryError(t *testing.T) {
	repo := &fakeScheduleRepo{err: errors.New("connection refused")}
	resolver := NewResolver(repo, nopLogger{})

	_, err := resolver.GetDailyAvailability(context.Background(), 7, wednesday)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestResolver_PicksMostRecentlyCreatedSchedule(t *testing.T) {
	older := baseSchedule()
	newer := baseSchedule()
	newer.ID = 2
	newer.CreatedAt = older.CreatedAt.Add(48 * time.Hour)
	newer.WeeklySchedule = []domain.DayScheduleEntry{
		{DayOfWeek: 3, TimeSlots: []domain.TimeSlot{slot("10:00", "18:00")}},
	}

	repo := &fakeScheduleRepo{schedules: []*domain.AvailabilitySchedule{older, newer}}
	resolver := NewResolver(repo, nopLogger{})

	got, err := resolver.GetDailyAvailability(context.Background(), 7, wednesday)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []domain.TimeSlot{slot("10:00", "18:00")}, got.TimeSlots)
}

func TestResolver_IsAvailableAt(t *testing.T) {
	schedule := baseSchedule()
	// Two back-to-back windows with a shared boundary at 12:00.
	schedule.WeeklySchedule = []domain.DayScheduleEntry{
		{DayOfWeek: 3, TimeSlots: []domain.TimeSlot{slot("09:00", "12:00"), slot("12:00", "15:00")}},
	}
	repo := &fakeScheduleRepo{schedules: []*domain.AvailabilitySchedule{schedule}}
	resolver := NewResolver(repo, nopLogger{})

	at := func(hour, minute int) time.Time {
		return time.Date(2025, time.October, 15, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "inside first window", start: at(10, 0), end: at(11, 0), want: true},
		{name: "fills a window exactly", start: at(9, 0), end: at(12, 0), want: true},
		{name: "spans two adjacent windows", start: at(11, 30), end: at(12, 30), want: false},
		{name: "inside second window from the boundary", start: at(12, 0), end: at(13, 0), want: true},
		{name: "starts before opening", start: at(8, 0), end: at(9, 30), want: false},
		{name: "ends after closing", start: at(14, 30), end: at(15, 30), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.IsAvailableAt(context.Background(), 7, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_IsAvailableAt_ClosedDay(t *testing.T) {
	schedule := baseSchedule()
	schedule.Exceptions = append(schedule.Exceptions, domain.ScheduleException{
		Date: wednesday,
		Kind: domain.ExceptionUnavailable,
	})
	repo := &fakeScheduleRepo{schedules: []*domain.AvailabilitySchedule{schedule}}
	resolver := NewResolver(repo, nopLogger{})

	got, err := resolver.IsAvailableAt(context.Background(), 7,
		time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2025, time.October, 15, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, got)

	// No schedule at all behaves the same.
	resolver = NewResolver(&fakeScheduleRepo{}, nopLogger{})
	got, err = resolver.IsAvailableAt(context.Background(), 7,
		time.Date(2025, time.October, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2025, time.October, 15, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, got)
}
