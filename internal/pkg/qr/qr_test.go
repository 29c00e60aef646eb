package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckinPayload(t *testing.T) {
	g := NewGenerator("https://registrar.example.edu/api/v1/attendance/checkin", 256)

	payload := g.CheckinPayload("7f3b2a10-5c44-4f7e-9a61-2f9f6f0a1b2c")

	assert.Equal(t, "https://registrar.example.edu/api/v1/attendance/checkin?token=7f3b2a10-5c44-4f7e-9a61-2f9f6f0a1b2c", payload)
}

func TestCheckinPNG(t *testing.T) {
	g := NewGenerator("http://localhost:8080/api/v1/attendance/checkin", 256)

	png, err := g.CheckinPNG("7f3b2a10-5c44-4f7e-9a61-2f9f6f0a1b2c")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic header
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 0x50, 0x4e, 0x47}))
}

func TestNewGenerator_DefaultSize(t *testing.T) {
	g := NewGenerator("http://localhost:8080/checkin", 0)
	assert.Equal(t, defaultSize, g.size)

	g = NewGenerator("http://localhost:8080/checkin", -5)
	assert.Equal(t, defaultSize, g.size)
}
