package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "morning", input: "09:00", want: "09:00"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "missing zero padding", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
	}{
		{name: "within hour", start: "09:00", minutes: 30, want: "09:30"},
		{name: "across hour", start: "09:45", minutes: 30, want: "10:15"},
		{name: "zero", start: "12:00", minutes: 0, want: "12:00"},
		{name: "wraps past midnight", start: "23:30", minutes: 60, want: "00:30"},
		{name: "negative goes back", start: "00:15", minutes: -30, want: "23:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	early := TimeString("09:00")
	late := TimeString("17:30")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsAfter(early))
	assert.False(t, early.IsBefore(early))
}

func TestTimeString_MinutesOfDay(t *testing.T) {
	ts := TimeString("10:45")
	minutes, err := ts.MinutesOfDay()
	require.NoError(t, err)
	assert.Equal(t, 645, minutes)

	assert.Equal(t, TimeString("10:45"), FromMinutesOfDay(645))
}

func TestTimeString_Scan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  TimeString
	}{
		{name: "postgres time with seconds", value: "14:30:00", want: "14:30"},
		{name: "plain string", value: "08:15", want: "08:15"},
		{name: "bytes", value: []byte("19:00:00"), want: "19:00"},
		{name: "time.Time", value: time.Date(2025, 6, 1, 11, 20, 0, 0, time.UTC), want: "11:20"},
		{name: "nil", value: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts TimeString
			require.NoError(t, ts.Scan(tt.value))
			assert.Equal(t, tt.want, ts)
		})
	}
}
