package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func weeklyPattern(start time.Time, dayOfWeek, interval int) *domain.RecurrencePattern {
	return &domain.RecurrencePattern{
		Frequency: domain.FrequencyWeekly,
		Interval:  interval,
		DayOfWeek: ptr.Ptr(dayOfWeek),
		StartDate: start,
		Status:    domain.PatternStatusActive,
	}
}

func TestEngine_NextOccurrence_Weekly(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name    string
		pattern *domain.RecurrencePattern
		from    time.Time
		want    time.Time
		wantOK  bool
	}{
		{
			// 2025-01-06 is a Monday
			name:    "from target weekday jumps a full week",
			pattern: weeklyPattern(date(2025, time.January, 6), 1, 1),
			from:    date(2025, time.January, 6),
			want:    date(2025, time.January, 13),
			wantOK:  true,
		},
		{
			name:    "from other weekday moves to nearest target",
			pattern: weeklyPattern(date(2025, time.January, 6), 1, 1),
			from:    date(2025, time.January, 8),
			want:    date(2025, time.January, 13),
			wantOK:  true,
		},
		{
			name:    "interval 2 from target weekday jumps 14 days",
			pattern: weeklyPattern(date(2025, time.January, 6), 1, 2),
			from:    date(2025, time.January, 6),
			want:    date(2025, time.January, 20),
			wantOK:  true,
		},
		{
			// Historical behavior kept under the legacy policy: the interval
			// only applies when already on the target weekday.
			name:    "interval ignored when moving from another weekday",
			pattern: weeklyPattern(date(2025, time.January, 3), 5, 3),
			from:    date(2025, time.January, 7),
			want:    date(2025, time.January, 10),
			wantOK:  true,
		},
		{
			name:    "weekday defaults to start date weekday",
			pattern: &domain.RecurrencePattern{Frequency: domain.FrequencyWeekly, Interval: 1, StartDate: date(2025, time.January, 6)},
			from:    date(2025, time.January, 6),
			want:    date(2025, time.January, 13),
			wantOK:  true,
		},
		{
			name:    "zero interval treated as one",
			pattern: weeklyPattern(date(2025, time.January, 6), 1, 0),
			from:    date(2025, time.January, 6),
			want:    date(2025, time.January, 13),
			wantOK:  true,
		},
		{
			name: "unknown frequency yields nothing",
			pattern: &domain.RecurrencePattern{
				Frequency: domain.Frequency("daily"),
				Interval:  1,
				StartDate: date(2025, time.January, 6),
			},
			from:   date(2025, time.January, 6),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := engine.NextOccurrence(tt.pattern, tt.from)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEngine_NextOccurrence_Biweekly(t *testing.T) {
	engine := NewEngine()

	pattern := &domain.RecurrencePattern{
		Frequency: domain.FrequencyBiweekly,
		Interval:  1,
		DayOfWeek: ptr.Ptr(1),
		StartDate: date(2025, time.January, 6),
	}

	got, ok := engine.NextOccurrence(pattern, date(2025, time.January, 6))
	require.True(t, ok)
	assert.Equal(t, date(2025, time.January, 20), got)

	pattern.Interval = 2
	got, ok = engine.NextOccurrence(pattern, date(2025, time.January, 6))
	require.True(t, ok)
	assert.Equal(t, date(2025, time.February, 3), got)

	// From a non-target weekday the nearest Monday wins, as for weekly.
	pattern.Interval = 1
	got, ok = engine.NextOccurrence(pattern, date(2025, time.January, 8))
	require.True(t, ok)
	assert.Equal(t, date(2025, time.January, 13), got)
}

func TestEngine_NextOccurrence_Monthly(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name    string
		pattern *domain.RecurrencePattern
		from    time.Time
		want    time.Time
	}{
		{
			name: "day 31 clamps to end of february",
			pattern: &domain.RecurrencePattern{
				Frequency:  domain.FrequencyMonthly,
				Interval:   1,
				DayOfMonth: ptr.Ptr(31),
				StartDate:  date(2025, time.January, 31),
			},
			from: date(2025, time.January, 31),
			want: date(2025, time.February, 28),
		},
		{
			name: "day 31 clamps to end of thirty day month",
			pattern: &domain.RecurrencePattern{
				Frequency:  domain.FrequencyMonthly,
				Interval:   1,
				DayOfMonth: ptr.Ptr(31),
				StartDate:  date(2025, time.January, 31),
			},
			from: date(2025, time.March, 1),
			want: date(2025, time.April, 30),
		},
		{
			name: "regular day advances one month",
			pattern: &domain.RecurrencePattern{
				Frequency:  domain.FrequencyMonthly,
				Interval:   1,
				DayOfMonth: ptr.Ptr(15),
				StartDate:  date(2025, time.January, 15),
			},
			from: date(2025, time.January, 15),
			want: date(2025, time.February, 15),
		},
		{
			name: "interval three months",
			pattern: &domain.RecurrencePattern{
				Frequency:  domain.FrequencyMonthly,
				Interval:   3,
				DayOfMonth: ptr.Ptr(10),
				StartDate:  date(2025, time.January, 10),
			},
			from: date(2025, time.January, 10),
			want: date(2025, time.April, 10),
		},
		{
			name: "rolls over the year boundary",
			pattern: &domain.RecurrencePattern{
				Frequency:  domain.FrequencyMonthly,
				Interval:   1,
				DayOfMonth: ptr.Ptr(15),
				StartDate:  date(2025, time.January, 15),
			},
			from: date(2025, time.December, 15),
			want: date(2026, time.January, 15),
		},
		{
			name: "day of month defaults to start date day",
			pattern: &domain.RecurrencePattern{
				Frequency: domain.FrequencyMonthly,
				Interval:  1,
				StartDate: date(2025, time.January, 20),
			},
			from: date(2025, time.January, 20),
			want: date(2025, time.February, 20),
		},
		{
			name: "leap year february keeps day 29",
			pattern: &domain.RecurrencePattern{
				Frequency:  domain.FrequencyMonthly,
				Interval:   1,
				DayOfMonth: ptr.Ptr(29),
				StartDate:  date(2024, time.January, 29),
			},
			from: date(2024, time.January, 29),
			want: date(2024, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := engine.NextOccurrence(tt.pattern, tt.from)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_NextOccurrence_SeriesEnd(t *testing.T) {
	engine := NewEngine()

	t.Run("from date on or past end date", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)
		pattern.EndDate = ptr.Ptr(date(2025, time.January, 20))

		_, ok := engine.NextOccurrence(pattern, date(2025, time.January, 20))
		assert.False(t, ok)

		_, ok = engine.NextOccurrence(pattern, date(2025, time.February, 1))
		assert.False(t, ok)
	})

	t.Run("result landing on end date is kept", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)
		pattern.EndDate = ptr.Ptr(date(2025, time.January, 20))

		got, ok := engine.NextOccurrence(pattern, date(2025, time.January, 13))
		require.True(t, ok)
		assert.Equal(t, date(2025, time.January, 20), got)
	})

	t.Run("result past end date is dropped", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)
		pattern.EndDate = ptr.Ptr(date(2025, time.January, 18))

		// Next Monday after Jan 14 is Jan 20, two days past the end date.
		_, ok := engine.NextOccurrence(pattern, date(2025, time.January, 14))
		assert.False(t, ok)
	})

	t.Run("occurrence limit reached by generated bookings", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)
		pattern.OccurrenceLimit = ptr.Ptr(2)
		pattern.GeneratedBookingIDs = []int64{101, 102}

		_, ok := engine.NextOccurrence(pattern, date(2025, time.January, 6))
		assert.False(t, ok)
	})

	t.Run("limit not yet reached keeps advancing", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)
		pattern.OccurrenceLimit = ptr.Ptr(2)
		pattern.GeneratedBookingIDs = []int64{101}

		got, ok := engine.NextOccurrence(pattern, date(2025, time.January, 6))
		require.True(t, ok)
		assert.Equal(t, date(2025, time.January, 13), got)
	})
}

func TestEngine_NextOccurrence_BeforeStartDate(t *testing.T) {
	engine := NewEngine()

	// 2025-03-03 is a Monday. Advancing from early January would land before
	// the start date; the engine retries once from the start date itself.
	pattern := weeklyPattern(date(2025, time.March, 3), 1, 1)

	got, ok := engine.NextOccurrence(pattern, date(2025, time.January, 1))
	require.True(t, ok)
	assert.Equal(t, date(2025, time.March, 10), got)
	assert.False(t, got.Before(pattern.StartDate))
}

func TestEngine_IntervalStrictPolicy(t *testing.T) {
	legacy := NewEngine()
	strict := NewEngineWithPolicy(IntervalStrict)

	// Fridays every 3 weeks anchored at 2025-01-03. From Tuesday Jan 7 the
	// legacy policy lands on the nearest Friday; the strict policy pushes to
	// the next on-grid Friday.
	pattern := weeklyPattern(date(2025, time.January, 3), 5, 3)

	legacyGot, ok := legacy.NextOccurrence(pattern, date(2025, time.January, 7))
	require.True(t, ok)
	assert.Equal(t, date(2025, time.January, 10), legacyGot)

	strictGot, ok := strict.NextOccurrence(pattern, date(2025, time.January, 7))
	require.True(t, ok)
	assert.Equal(t, date(2025, time.January, 24), strictGot)

	// On the target weekday both policies jump the full period.
	legacyGot, ok = legacy.NextOccurrence(pattern, date(2025, time.January, 3))
	require.True(t, ok)
	strictGot, ok2 := strict.NextOccurrence(pattern, date(2025, time.January, 3))
	require.True(t, ok2)
	assert.Equal(t, legacyGot, strictGot)
	assert.Equal(t, date(2025, time.January, 24), strictGot)
}

func TestEngine_OccurrenceDates(t *testing.T) {
	engine := NewEngine()

	t.Run("weekly chain stays on the target weekday", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)

		dates := engine.OccurrenceDates(pattern, 4)
		require.Len(t, dates, 4)
		assert.Equal(t, []time.Time{
			date(2025, time.January, 13),
			date(2025, time.January, 20),
			date(2025, time.January, 27),
			date(2025, time.February, 3),
		}, dates)
	})

	t.Run("default cap bounds an open ended pattern", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)

		dates := engine.OccurrenceDates(pattern, 0)
		assert.Len(t, dates, domain.DefaultMaxOccurrences)
	})

	t.Run("end date truncates the series", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)
		pattern.EndDate = ptr.Ptr(date(2025, time.January, 20))

		dates := engine.OccurrenceDates(pattern, 10)
		assert.Equal(t, []time.Time{
			date(2025, time.January, 13),
			date(2025, time.January, 20),
		}, dates)
	})

	t.Run("monthly day 31 sequence skips short month follow-ups", func(t *testing.T) {
		pattern := &domain.RecurrencePattern{
			Frequency:  domain.FrequencyMonthly,
			Interval:   1,
			DayOfMonth: ptr.Ptr(31),
			StartDate:  date(2025, time.January, 31),
		}

		// After a clamped occurrence the cursor sits on the first of the next
		// month, so the month with a real 31st right after a clamp is passed
		// over. Pinned: callers depend on the stored dates staying stable.
		dates := engine.OccurrenceDates(pattern, 4)
		assert.Equal(t, []time.Time{
			date(2025, time.February, 28),
			date(2025, time.April, 30),
			date(2025, time.June, 30),
			date(2025, time.August, 31),
		}, dates)
	})
}

func TestEngine_UpcomingOccurrences(t *testing.T) {
	engine := NewEngine()

	t.Run("collects from the lower bound onward", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)

		got := engine.UpcomingOccurrences(pattern, UpcomingOptions{
			Count: 3,
			From:  date(2025, time.June, 1),
		})
		assert.Equal(t, []time.Time{
			date(2025, time.June, 2),
			date(2025, time.June, 9),
			date(2025, time.June, 16),
		}, got)
	})

	t.Run("count defaults and caps", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)

		got := engine.UpcomingOccurrences(pattern, UpcomingOptions{From: date(2025, time.January, 1)})
		assert.Len(t, got, domain.DefaultUpcomingCount)

		got = engine.UpcomingOccurrences(pattern, UpcomingOptions{Count: 80, From: date(2025, time.January, 1)})
		assert.Len(t, got, domain.MaxUpcomingCount)
	})

	t.Run("series ending before the bound returns nothing", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)
		pattern.EndDate = ptr.Ptr(date(2025, time.February, 1))

		got := engine.UpcomingOccurrences(pattern, UpcomingOptions{
			Count: 5,
			From:  date(2025, time.June, 1),
		})
		assert.Empty(t, got)
	})

	t.Run("far future bound hits the iteration ceiling", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)

		got := engine.UpcomingOccurrences(pattern, UpcomingOptions{
			Count: 5,
			From:  date(2040, time.January, 1),
		})
		assert.Empty(t, got)
	})

	t.Run("repeated calls return identical results", func(t *testing.T) {
		pattern := weeklyPattern(date(2025, time.January, 6), 1, 1)
		opts := UpcomingOptions{Count: 5, From: date(2025, time.March, 1)}

		first := engine.UpcomingOccurrences(pattern, opts)
		second := engine.UpcomingOccurrences(pattern, opts)
		assert.Equal(t, first, second)
	})
}
