package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Generator renders attendance check-in QR codes.
type Generator struct {
	checkinURL string
	size       int
}

// NewGenerator creates a generator. checkinURL is the absolute URL of the
// check-in endpoint, size the PNG edge length in pixels.
func NewGenerator(checkinURL string, size int) *Generator {
	if size <= 0 {
		size = defaultSize
	}
	return &Generator{checkinURL: checkinURL, size: size}
}

// CheckinPayload returns the URL encoded into a session's QR code.
func (g *Generator) CheckinPayload(token string) string {
	return fmt.Sprintf("%s?token=%s", g.checkinURL, token)
}

// CheckinPNG renders the QR code for a session token as a PNG image.
func (g *Generator) CheckinPNG(token string) ([]byte, error) {
	png, err := qrcode.Encode(g.CheckinPayload(token), qrcode.Medium, g.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
