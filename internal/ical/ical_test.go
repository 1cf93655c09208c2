package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func TestPatternFromRule(t *testing.T) {
	tests := []struct {
		name string
		rule string
		want RulePattern
	}{
		{
			name: "weekly on monday",
			rule: "FREQ=WEEKLY;BYDAY=MO",
			want: RulePattern{
				Frequency: domain.FrequencyWeekly,
				Interval:  1,
				DayOfWeek: ptr.Ptr(1),
			},
		},
		{
			name: "weekly interval 2 becomes biweekly",
			rule: "FREQ=WEEKLY;INTERVAL=2;BYDAY=FR",
			want: RulePattern{
				Frequency: domain.FrequencyBiweekly,
				Interval:  1,
				DayOfWeek: ptr.Ptr(5),
			},
		},
		{
			name: "weekly interval 3 stays weekly",
			rule: "FREQ=WEEKLY;INTERVAL=3;BYDAY=SU",
			want: RulePattern{
				Frequency: domain.FrequencyWeekly,
				Interval:  3,
				DayOfWeek: ptr.Ptr(0),
			},
		},
		{
			name: "monthly by month day",
			rule: "FREQ=MONTHLY;BYMONTHDAY=15",
			want: RulePattern{
				Frequency:  domain.FrequencyMonthly,
				Interval:   1,
				DayOfMonth: ptr.Ptr(15),
			},
		},
		{
			name: "count carried as occurrence limit",
			rule: "FREQ=WEEKLY;BYDAY=WE;COUNT=10",
			want: RulePattern{
				Frequency:       domain.FrequencyWeekly,
				Interval:        1,
				DayOfWeek:       ptr.Ptr(3),
				OccurrenceLimit: ptr.Ptr(10),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PatternFromRule(tt.rule)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Frequency, got.Frequency)
			assert.Equal(t, tt.want.Interval, got.Interval)
			assert.Equal(t, tt.want.DayOfWeek, got.DayOfWeek)
			assert.Equal(t, tt.want.DayOfMonth, got.DayOfMonth)
			assert.Equal(t, tt.want.OccurrenceLimit, got.OccurrenceLimit)
		})
	}
}

func TestPatternFromRule_Until(t *testing.T) {
	got, err := PatternFromRule("FREQ=MONTHLY;BYMONTHDAY=1;UNTIL=20251231T000000Z")
	require.NoError(t, err)

	require.NotNil(t, got.EndDate)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *got.EndDate)
}

func TestPatternFromRule_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		rule string
	}{
		{name: "daily frequency", rule: "FREQ=DAILY"},
		{name: "multiple weekdays", rule: "FREQ=WEEKLY;BYDAY=MO,WE"},
		{name: "garbage", rule: "not-a-rule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PatternFromRule(tt.rule)
			assert.Error(t, err)
		})
	}
}

func TestRuleForPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern domain.RecurrencePattern
		want    []string
	}{
		{
			name: "weekly",
			pattern: domain.RecurrencePattern{
				Frequency: domain.FrequencyWeekly,
				Interval:  1,
				DayOfWeek: ptr.Ptr(1),
			},
			want: []string{"FREQ=WEEKLY", "BYDAY=MO"},
		},
		{
			name: "biweekly doubles the interval",
			pattern: domain.RecurrencePattern{
				Frequency: domain.FrequencyBiweekly,
				Interval:  1,
				DayOfWeek: ptr.Ptr(5),
			},
			want: []string{"FREQ=WEEKLY", "INTERVAL=2", "BYDAY=FR"},
		},
		{
			name: "monthly",
			pattern: domain.RecurrencePattern{
				Frequency:  domain.FrequencyMonthly,
				Interval:   1,
				DayOfMonth: ptr.Ptr(31),
			},
			want: []string{"FREQ=MONTHLY", "BYMONTHDAY=31"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RuleForPattern(&tt.pattern)
			require.NoError(t, err)
			for _, part := range tt.want {
				assert.Contains(t, got, part)
			}
		})
	}
}

func TestRuleForPattern_UnknownFrequency(t *testing.T) {
	_, err := RuleForPattern(&domain.RecurrencePattern{Frequency: "daily"})
	assert.ErrorIs(t, err, ErrUnsupportedRule)
}

func TestBuildFeed(t *testing.T) {
	pattern := &domain.RecurrencePattern{
		ID:              42,
		StaffID:         7,
		ServiceID:       3,
		Frequency:       domain.FrequencyWeekly,
		Interval:        1,
		DayOfWeek:       ptr.Ptr(1),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
	}
	occurrences := []time.Time{
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
	}
	stamp := time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC)

	feed, err := BuildFeed(pattern, occurrences, stamp)
	require.NoError(t, err)

	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.Contains(t, feed, "END:VCALENDAR")
	assert.Contains(t, feed, "pattern-42-20250602@smc-scheduleservice")
	assert.Contains(t, feed, "pattern-42-20250609@smc-scheduleservice")
	assert.Contains(t, feed, "20250602T100000Z")
	assert.Contains(t, feed, "20250602T110000Z")
	assert.Contains(t, feed, "FREQ=WEEKLY")
	// RRULE присутствует ровно один раз
	assert.Equal(t, 1, strings.Count(feed, "RRULE"))
}

func TestBuildFeed_EmptyOccurrences(t *testing.T) {
	pattern := &domain.RecurrencePattern{
		ID:              1,
		Frequency:       domain.FrequencyWeekly,
		DayOfWeek:       ptr.Ptr(1),
		StartTime:       types.TimeString("09:00"),
		DurationMinutes: 30,
	}

	feed, err := BuildFeed(pattern, nil, time.Now())
	require.NoError(t, err)

	assert.Contains(t, feed, "BEGIN:VCALENDAR")
	assert.NotContains(t, feed, "BEGIN:VEVENT")
}
