package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockAt(t *testing.T, value string) time.Time {
	t.Helper()
	now, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	require.NoError(t, err)
	return now
}

func TestDerive(t *testing.T) {
	now := clockAt(t, "2026-03-10 10:00:00")

	tests := []struct {
		name  string
		date  string
		start string
		end   string
		want  Status
	}{
		{name: "yesterday is completed", date: "2026-03-09", start: "09:00", end: "11:00", want: StatusCompleted},
		{name: "last month is completed", date: "2026-02-10", start: "10:00", end: "12:00", want: StatusCompleted},
		{name: "tomorrow is upcoming", date: "2026-03-11", start: "09:00", end: "11:00", want: StatusUpcoming},
		{name: "today before start is upcoming", date: "2026-03-10", start: "10:30", end: "12:00", want: StatusUpcoming},
		{name: "today inside window is active", date: "2026-03-10", start: "09:00", end: "11:00", want: StatusActive},
		{name: "today after end is completed", date: "2026-03-10", start: "08:00", end: "09:30", want: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.date, tt.start, tt.end, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerive_WindowBoundaries(t *testing.T) {
	date := "2026-03-10"

	// Exactly at start the session is already active
	atStart := clockAt(t, "2026-03-10 09:00:00")
	assert.Equal(t, StatusActive, Derive(date, "09:00", "11:00", atStart))

	// The end of the window is inclusive
	atEnd := clockAt(t, "2026-03-10 11:00:00")
	assert.Equal(t, StatusActive, Derive(date, "09:00", "11:00", atEnd))

	// One second past end the session is completed
	pastEnd := clockAt(t, "2026-03-10 11:00:01")
	assert.Equal(t, StatusCompleted, Derive(date, "09:00", "11:00", pastEnd))

	// One second before start it is still upcoming
	beforeStart := clockAt(t, "2026-03-10 08:59:59")
	assert.Equal(t, StatusUpcoming, Derive(date, "09:00", "11:00", beforeStart))
}

func TestDerive_SingleDigitHours(t *testing.T) {
	now := clockAt(t, "2026-03-10 09:30:00")

	// H:MM values coming from manual entry normalize before comparison
	assert.Equal(t, StatusActive, Derive("2026-03-10", "9:00", "11:00", now))
	assert.Equal(t, StatusCompleted, Derive("2026-03-10", "8:00", "9:15", now))
}

func TestDerive_SecondsPrecision(t *testing.T) {
	now := clockAt(t, "2026-03-10 10:00:30")

	// HH:MM:SS values compare without normalization
	assert.Equal(t, StatusActive, Derive("2026-03-10", "10:00:15", "10:00:45", now))
	assert.Equal(t, StatusCompleted, Derive("2026-03-10", "10:00:00", "10:00:15", now))
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "pads short hour", in: "9:05", want: "09:05:00"},
		{name: "appends seconds", in: "09:05", want: "09:05:00"},
		{name: "full value unchanged", in: "09:05:30", want: "09:05:30"},
		{name: "non clock value unchanged", in: "morning", want: "morning"},
		{name: "empty value unchanged", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTime(tt.in))
		})
	}
}

func TestSessionStart(t *testing.T) {
	start, err := SessionStart("2026-03-10", "9:00")
	require.NoError(t, err)

	assert.Equal(t, 2026, start.Year())
	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 10, start.Day())
	assert.Equal(t, 9, start.Hour())
	assert.Equal(t, 0, start.Minute())

	_, err = SessionStart("2026-03-10", "not-a-time")
	assert.Error(t, err)
}
