package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Frequency defines how often a recurring appointment repeats.
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// IsValid returns true for the frequencies the engine knows how to advance.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// PatternStatus is the lifecycle state of a recurrence pattern.
type PatternStatus string

const (
	PatternStatusActive    PatternStatus = "active"
	PatternStatusPaused    PatternStatus = "paused"
	PatternStatusCancelled PatternStatus = "cancelled"
	PatternStatusCompleted PatternStatus = "completed"
)

// PaymentPlan is carried for billing integrations and never interpreted here.
type PaymentPlan string

const (
	PaymentPerSession          PaymentPlan = "per_session"
	PaymentMonthlySubscription PaymentPlan = "monthly_subscription"
)

// RecurrencePattern describes a standing appointment: a client repeatedly
// booked with a staff member for a service on a weekly, biweekly or monthly
// cadence.
type RecurrencePattern struct {
	ID        int64
	ClientID  int64
	StaffID   int64
	ServiceID int64

	Frequency  Frequency
	Interval   int  // повтор каждые N периодов, по умолчанию 1
	DayOfWeek  *int // 0 = Sunday ... 6 = Saturday; nil = брать из StartDate
	DayOfMonth *int // 1..31; nil = брать из StartDate

	StartTime       types.TimeString
	DurationMinutes int
	TimeZone        string // IANA label, carried as-is and never applied

	StartDate       time.Time
	EndDate         *time.Time
	OccurrenceLimit *int

	GeneratedBookingIDs []int64

	Status      PatternStatus
	PaymentPlan PaymentPlan

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveInterval returns the repeat interval, defaulting to 1.
func (p *RecurrencePattern) EffectiveInterval() int {
	if p.Interval < 1 {
		return 1
	}
	return p.Interval
}

// EffectiveDayOfWeek returns the target weekday, falling back to the
// start date's weekday when none is set.
func (p *RecurrencePattern) EffectiveDayOfWeek() time.Weekday {
	if p.DayOfWeek != nil {
		return time.Weekday(*p.DayOfWeek)
	}
	return p.StartDate.Weekday()
}

// EffectiveDayOfMonth returns the target day of month, falling back to the
// start date's day when none is set.
func (p *RecurrencePattern) EffectiveDayOfMonth() int {
	if p.DayOfMonth != nil {
		return *p.DayOfMonth
	}
	return p.StartDate.Day()
}

// IsActive returns true if the pattern still generates occurrences.
func (p *RecurrencePattern) IsActive() bool {
	return p.Status == PatternStatusActive
}

// IsTerminal returns true for states that allow no further transitions.
func (p *RecurrencePattern) IsTerminal() bool {
	return p.Status == PatternStatusCancelled || p.Status == PatternStatusCompleted
}

// CanPause returns true if the pattern can be put on hold.
func (p *RecurrencePattern) CanPause() bool {
	return p.Status == PatternStatusActive
}

// CanResume returns true if the pattern can be reactivated.
func (p *RecurrencePattern) CanResume() bool {
	return p.Status == PatternStatusPaused
}

// CanCancel returns true if the pattern can still be cancelled.
func (p *RecurrencePattern) CanCancel() bool {
	return !p.IsTerminal()
}

// CanComplete returns true if the pattern can be marked as exhausted.
func (p *RecurrencePattern) CanComplete() bool {
	return !p.IsTerminal()
}
