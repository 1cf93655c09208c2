// Package recurrence advances recurrence patterns through calendar time.
// The engine is pure: it performs no I/O and depends only on its inputs.
package recurrence

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

const daysPerWeek = 7

// IntervalPolicy controls how the repeat interval is applied when the cursor
// is not on the pattern's target weekday.
type IntervalPolicy int

const (
	// IntervalLegacy reproduces the historical advance: the interval is applied
	// only when the cursor already sits on the target weekday. From any other
	// weekday the cursor moves to the nearest target weekday ahead, and
	// patterns with interval > 1 effectively repeat weekly.
	IntervalLegacy IntervalPolicy = iota

	// IntervalStrict aligns every advance to the interval grid anchored at the
	// pattern's first on-weekday date.
	IntervalStrict
)

// Engine expands recurrence patterns into occurrence dates.
// Occurrences are calendar dates normalized to midnight UTC; the pattern's
// time zone label and start time are not interpreted here.
type Engine struct {
	policy IntervalPolicy
}

// NewEngine creates an engine with the legacy interval policy.
func NewEngine() *Engine {
	return &Engine{policy: IntervalLegacy}
}

// NewEngineWithPolicy creates an engine with an explicit interval policy.
func NewEngineWithPolicy(policy IntervalPolicy) *Engine {
	return &Engine{policy: policy}
}

// NextOccurrence returns the first occurrence strictly derived from advancing
// the pattern once from the given date. The boolean is false when the series
// has ended: the date reached the pattern's end date, the occurrence limit is
// exhausted, or the frequency is unknown.
func (e *Engine) NextOccurrence(p *domain.RecurrencePattern, from time.Time) (time.Time, bool) {
	fromDay := domain.DateOnly(from)
	startDay := domain.DateOnly(p.StartDate)

	if p.EndDate != nil && !fromDay.Before(domain.DateOnly(*p.EndDate)) {
		return time.Time{}, false
	}
	if p.OccurrenceLimit != nil && len(p.GeneratedBookingIDs) >= *p.OccurrenceLimit {
		return time.Time{}, false
	}

	next, ok := e.advance(p, fromDay)
	if !ok {
		return time.Time{}, false
	}

	// A basis before the start date can produce a result before the start
	// date. One retry from the start date itself; if that still lands behind,
	// the series yields nothing.
	if next.Before(startDay) {
		next, ok = e.advance(p, startDay)
		if !ok || next.Before(startDay) {
			return time.Time{}, false
		}
	}

	if p.EndDate != nil && next.After(domain.DateOnly(*p.EndDate)) {
		return time.Time{}, false
	}
	return next, true
}

// OccurrenceDates expands the pattern into occurrence dates starting from its
// start date. maxCount bounds the expansion and is the sole termination
// guarantee; values <= 0 fall back to the default cap.
func (e *Engine) OccurrenceDates(p *domain.RecurrencePattern, maxCount int) []time.Time {
	if maxCount <= 0 {
		maxCount = domain.DefaultMaxOccurrences
	}

	dates := make([]time.Time, 0, maxCount)
	cursor := domain.DateOnly(p.StartDate)
	for len(dates) < maxCount {
		next, ok := e.NextOccurrence(p, cursor)
		if !ok {
			break
		}
		dates = append(dates, next)
		cursor = next.AddDate(0, 0, 1)
	}
	return dates
}

// UpcomingOptions controls UpcomingOccurrences.
type UpcomingOptions struct {
	// Count задаёт число возвращаемых дат;
	// по умолчанию DefaultUpcomingCount, не больше MaxUpcomingCount.
	Count int
	// From - нижняя граница выборки; нулевое значение означает текущий момент.
	From time.Time
}

// UpcomingOccurrences returns the next occurrences on or after the requested
// lower bound. Fast-forwarding from the start date and collecting share a hard
// iteration ceiling, so a far-future bound returns fewer dates instead of
// spinning.
func (e *Engine) UpcomingOccurrences(p *domain.RecurrencePattern, opts UpcomingOptions) []time.Time {
	count := opts.Count
	if count <= 0 {
		count = domain.DefaultUpcomingCount
	}
	if count > domain.MaxUpcomingCount {
		count = domain.MaxUpcomingCount
	}

	from := opts.From
	if from.IsZero() {
		from = time.Now()
	}
	fromDay := domain.DateOnly(from)

	out := make([]time.Time, 0, count)
	cursor := domain.DateOnly(p.StartDate)
	iterations := 0

	// Перемотка: двигаем курсор до первой даты не раньше нижней границы.
	for iterations < domain.UpcomingIterationCeiling {
		next, ok := e.NextOccurrence(p, cursor)
		if !ok {
			return out
		}
		iterations++
		cursor = next
		if !next.Before(fromDay) {
			out = append(out, next)
			break
		}
	}

	// Сбор оставшихся дат.
	for len(out) < count && iterations < domain.UpcomingIterationCeiling {
		next, ok := e.NextOccurrence(p, cursor)
		if !ok {
			break
		}
		iterations++
		cursor = next
		if !next.Before(fromDay) {
			out = append(out, next)
		}
	}
	return out
}

func (e *Engine) advance(p *domain.RecurrencePattern, from time.Time) (time.Time, bool) {
	interval := p.EffectiveInterval()
	switch p.Frequency {
	case domain.FrequencyWeekly:
		return e.advanceByWeekday(p, from, interval), true
	case domain.FrequencyBiweekly:
		return e.advanceByWeekday(p, from, 2*interval), true
	case domain.FrequencyMonthly:
		return advanceMonthly(p, from), true
	default:
		return time.Time{}, false
	}
}

// advanceByWeekday moves the cursor to the pattern's weekday. From the target
// weekday itself the cursor jumps a full period ahead; from any other weekday
// it moves to the nearest target weekday, where the interval is applied only
// under the strict policy.
func (e *Engine) advanceByWeekday(p *domain.RecurrencePattern, from time.Time, periodWeeks int) time.Time {
	target := p.EffectiveDayOfWeek()
	delta := (int(target) - int(from.Weekday()) + daysPerWeek) % daysPerWeek
	if delta == 0 {
		return from.AddDate(0, 0, daysPerWeek*periodWeeks)
	}

	next := from.AddDate(0, 0, delta)
	if e.policy == IntervalStrict {
		next = alignToPeriod(next, weekdayAnchor(p), periodWeeks)
	}
	return next
}

// weekdayAnchor returns the first date on the target weekday on or after the
// pattern's start date.
func weekdayAnchor(p *domain.RecurrencePattern) time.Time {
	start := domain.DateOnly(p.StartDate)
	delta := (int(p.EffectiveDayOfWeek()) - int(start.Weekday()) + daysPerWeek) % daysPerWeek
	return start.AddDate(0, 0, delta)
}

// alignToPeriod pushes a candidate forward onto the period grid anchored at anchor.
func alignToPeriod(candidate, anchor time.Time, periodWeeks int) time.Time {
	weeks := daysBetween(anchor, candidate) / daysPerWeek
	rem := weeks % periodWeeks
	if rem < 0 {
		rem += periodWeeks
	}
	if rem == 0 {
		return candidate
	}
	return candidate.AddDate(0, 0, daysPerWeek*(periodWeeks-rem))
}

// advanceMonthly adds the repeat interval in months and pins the result to the
// pattern's day of month. A day that does not exist in the target month clamps
// to that month's last day (day zero of the following month).
func advanceMonthly(p *domain.RecurrencePattern, from time.Time) time.Time {
	interval := p.EffectiveInterval()
	targetDay := p.EffectiveDayOfMonth()

	year, month, _ := from.Date()
	lastOfTarget := time.Date(year, month+time.Month(interval)+1, 0, 0, 0, 0, 0, time.UTC)
	if targetDay > lastOfTarget.Day() {
		return lastOfTarget
	}
	return time.Date(year, month+time.Month(interval), targetDay, 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
