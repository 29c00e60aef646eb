package schedule

import (
	"strings"
	"time"
)

// Status classifies an attendance session relative to a clock reading.
// It is always derived, never stored.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

const (
	dateLayout     = "2006-01-02"
	clockLayout    = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Derive classifies a session from its date, start and end times and the
// current time. Dates are YYYY-MM-DD strings and times HH:MM or HH:MM:SS
// strings; after normalization lexical order matches chronological order,
// so plain string comparisons suffice. The end of the window is inclusive,
// a session whose end time equals the clock is still active.
func Derive(date, startTime, endTime string, now time.Time) Status {
	today := now.Format(dateLayout)

	if date < today {
		return StatusCompleted
	}
	if date > today {
		return StatusUpcoming
	}

	clock := now.Format(clockLayout)
	start := NormalizeTime(startTime)
	end := NormalizeTime(endTime)

	if clock > end {
		return StatusCompleted
	}
	if clock >= start {
		return StatusActive
	}
	return StatusUpcoming
}

// NormalizeTime pads an H:MM or HH:MM clock string to HH:MM:SS so that
// lexical comparison matches chronological order. Strings that are not
// colon-separated clock values are returned unchanged.
func NormalizeTime(t string) string {
	parts := strings.Split(t, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return t
	}
	if len(parts[0]) == 1 {
		parts[0] = "0" + parts[0]
	}
	if len(parts) == 2 {
		parts = append(parts, "00")
	}
	return strings.Join(parts, ":")
}

// SessionStart parses a session's date and start time in the server's
// local time zone. Used to measure how late a check-in is.
func SessionStart(date, startTime string) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, date+" "+NormalizeTime(startTime), time.Local)
}
