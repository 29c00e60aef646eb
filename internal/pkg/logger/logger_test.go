package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Pretty: false, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	Info().Str("component", "attendance").Msg("session opened")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "attendance", entry["component"])
	assert.Equal(t, "session opened", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestConfigure_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: ErrorLevel, Pretty: false, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	Debug().Msg("not logged")
	Info().Msg("not logged")
	Warn().Msg("not logged")
	assert.Zero(t, buf.Len())

	Error().Msg("logged")
	assert.Contains(t, buf.String(), "logged")
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Pretty: false, Output: &buf})
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	l := WithField("sessionId", 42)
	l.Info().Msg("checked in")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(42), entry["sessionId"])
}
