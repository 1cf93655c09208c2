package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	timeLayout    = "15:04"
	minutesPerDay = 24 * 60
)

// TimeString represents a time of day in 24-hour "HH:MM" format.
// It is the wire and storage format for all schedule times in the service.
type TimeString string

// NewTimeString creates a TimeString from a time.Time, keeping only hours and minutes.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
// time.Parse accepts single-digit hours, so the length is checked separately.
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) != len(timeLayout) {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", s)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM: %w", s, err)
	}
	return NewTimeString(t), nil
}

// String returns the "HH:MM" representation.
func (ts TimeString) String() string {
	return string(ts)
}

// MinutesOfDay returns the number of minutes elapsed since midnight.
func (ts TimeString) MinutesOfDay() (int, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q, expected HH:MM: %w", string(ts), err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes returns a new TimeString shifted forward by the given number of
// minutes. The result wraps around midnight.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := ts.MinutesOfDay()
	if err != nil {
		return "", err
	}
	total := (current + minutes) % minutesPerDay
	if total < 0 {
		total += minutesPerDay
	}
	return FromMinutesOfDay(total), nil
}

// FromMinutesOfDay builds a TimeString from minutes since midnight.
// The value is normalized into the [00:00, 24:00) range.
func FromMinutesOfDay(minutes int) TimeString {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// IsBefore reports whether ts is strictly earlier than other.
// Zero-padded "HH:MM" strings order lexicographically.
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// Value implements driver.Valuer for storing in TIME columns.
func (ts TimeString) Value() (driver.Value, error) {
	return string(ts), nil
}

// Scan implements sql.Scanner. Postgres TIME columns come back as "HH:MM:SS".
func (ts *TimeString) Scan(value interface{}) error {
	if value == nil {
		*ts = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		return ts.scanString(v)
	case []byte:
		return ts.scanString(string(v))
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", value)
	}
}

func (ts *TimeString) scanString(s string) error {
	if len(s) > len(timeLayout) {
		s = s[:len(timeLayout)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
