// Package preview renders plain PNG previews of saved QR codes. The
// full styling pipeline lives in the client; this is the unstyled
// server-side render.
package preview

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the preview edge length in pixels.
const DefaultSize = 256

// MaxSize caps the rendered edge length. The encoder allocates a
// size×size image, so an unbounded caller-supplied size could exhaust
// memory in a single request.
const MaxSize = 2048

// PNG encodes content as a QR code PNG of the given size. Sizes
// outside [1, MaxSize] are clamped.
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

// DataURI encodes content as a base64 PNG data URI.
func DataURI(content string, size int) (string, error) {
	png, err := PNG(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
