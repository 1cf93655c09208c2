package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// TimeSlot represents a working window or a bookable interval within a single
// day, bounded by "HH:MM" times. The end bound is exclusive.
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains reports whether the [start, end) interval fits entirely inside this
// slot. An interval spanning two adjacent slots does not fit in either.
func (s TimeSlot) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(s.Start) && !end.IsAfter(s.End)
}

// DayScheduleEntry describes the working windows for one weekday.
// DayOfWeek follows time.Weekday numbering: 0 = Sunday ... 6 = Saturday.
type DayScheduleEntry struct {
	DayOfWeek int
	TimeSlots []TimeSlot
}

// ExceptionKind distinguishes full-day closures from days with custom hours.
type ExceptionKind string

const (
	ExceptionUnavailable ExceptionKind = "unavailable"
	ExceptionCustomHours ExceptionKind = "custom_hours"
)

// ScheduleException overrides everything else for a single calendar date:
// the staff member is either fully unavailable or works custom hours.
type ScheduleException struct {
	Date      time.Time
	Kind      ExceptionKind
	TimeSlots []TimeSlot
	Reason    *string
}

// IsUnavailable returns true if the exception closes the whole day.
func (e *ScheduleException) IsUnavailable() bool {
	return e.Kind == ExceptionUnavailable
}

// ScheduleOverride replaces the weekly windows for a single calendar date.
type ScheduleOverride struct {
	Date      time.Time
	TimeSlots []TimeSlot
}

// AvailabilitySchedule is the working-hours record of a staff member:
// a weekly template plus date-specific exceptions and overrides.
type AvailabilitySchedule struct {
	ID             int64
	StaffID        int64
	WeeklySchedule []DayScheduleEntry
	Exceptions     []ScheduleException
	Overrides      []ScheduleOverride
	EffectiveFrom  time.Time
	EffectiveTo    *time.Time // nil = открытый период действия
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsActiveOn reports whether the schedule covers the given calendar date.
func (s *AvailabilitySchedule) IsActiveOn(date time.Time) bool {
	day := DateOnly(date)
	if day.Before(DateOnly(s.EffectiveFrom)) {
		return false
	}
	if s.EffectiveTo != nil && day.After(DateOnly(*s.EffectiveTo)) {
		return false
	}
	return true
}

// ExceptionOn returns the first exception recorded for the given date, if any.
func (s *AvailabilitySchedule) ExceptionOn(date time.Time) *ScheduleException {
	for i := range s.Exceptions {
		if SameDate(s.Exceptions[i].Date, date) {
			return &s.Exceptions[i]
		}
	}
	return nil
}

// OverrideOn returns the override recorded for the given date, if any.
func (s *AvailabilitySchedule) OverrideOn(date time.Time) *ScheduleOverride {
	for i := range s.Overrides {
		if SameDate(s.Overrides[i].Date, date) {
			return &s.Overrides[i]
		}
	}
	return nil
}

// WeekdayEntry returns the weekly entry for the given weekday, if any.
func (s *AvailabilitySchedule) WeekdayEntry(weekday time.Weekday) *DayScheduleEntry {
	for i := range s.WeeklySchedule {
		if s.WeeklySchedule[i].DayOfWeek == int(weekday) {
			return &s.WeeklySchedule[i]
		}
	}
	return nil
}

// DateOnly truncates a timestamp to its calendar date (midnight UTC).
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two timestamps fall on the same calendar date,
// ignoring the time components.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
