package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetNullString(t *testing.T) {
	assert.False(t, GetNullString(nil).Valid)

	value := "lecture notes"
	ns := GetNullString(&value)
	assert.True(t, ns.Valid)
	assert.Equal(t, "lecture notes", ns.String)

	// A pointer to an empty string is still a present value
	empty := ""
	ns = GetNullString(&empty)
	assert.True(t, ns.Valid)
	assert.Equal(t, "", ns.String)
}

func TestGetContentNullString(t *testing.T) {
	assert.False(t, GetContentNullString("").Valid)

	ns := GetContentNullString("syllabus")
	assert.True(t, ns.Valid)
	assert.Equal(t, "syllabus", ns.String)
}

func TestGetNullInt64(t *testing.T) {
	assert.False(t, GetNullInt64(0).Valid)

	ni := GetNullInt64(42)
	assert.True(t, ni.Valid)
	assert.Equal(t, int64(42), ni.Int64)
}

func TestGetNullTime(t *testing.T) {
	assert.False(t, GetNullTime(nil).Valid)

	now := time.Now()
	nt := GetNullTime(&now)
	assert.True(t, nt.Valid)
	assert.Equal(t, now, nt.Time)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 15*time.Minute, ParseDuration("15m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, 30*time.Second, ParseDuration("", 30*time.Second))
}
