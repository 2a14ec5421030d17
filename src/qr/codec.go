// Package qr builds the QR payload of an artifact, renders it to PNG and
// extracts candidate identifiers from scanned payloads.
package qr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	payloadMarker = "/artifact/"

	// DefaultModulePixels matches a box size of 10 pixels per module.
	DefaultModulePixels = 10
)

// ErrInvalidPayload is returned when a scanned payload is empty.
var ErrInvalidPayload = errors.New("invalid QR payload")

// Codec renders artifact payloads into QR images.
type Codec struct {
	baseURL      string
	level        qrcode.RecoveryLevel
	modulePixels int
}

type Option func(*Codec)

// WithRecoveryLevel overrides the error-correction level.
func WithRecoveryLevel(level qrcode.RecoveryLevel) Option {
	return func(c *Codec) { c.level = level }
}

// WithModulePixels sets the width in pixels of a single QR module.
func WithModulePixels(px int) Option {
	return func(c *Codec) {
		if px > 0 {
			c.modulePixels = px
		}
	}
}

func NewCodec(baseURL string, opts ...Option) *Codec {
	c := &Codec{
		baseURL:      strings.TrimRight(baseURL, "/"),
		level:        qrcode.Low,
		modulePixels: DefaultModulePixels,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseRecoveryLevel maps the letters L, M, Q and H onto go-qrcode levels.
func ParseRecoveryLevel(s string) (qrcode.RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "L":
		return qrcode.Low, nil
	case "M":
		return qrcode.Medium, nil
	case "Q":
		return qrcode.High, nil
	case "H":
		return qrcode.Highest, nil
	}
	return qrcode.Low, fmt.Errorf("unknown QR error correction level %q", s)
}

// Payload returns the string embedded in the QR image of id.
func (c *Codec) Payload(id uuid.UUID) string {
	return c.baseURL + payloadMarker + id.String()
}

// Encode renders the payload of id as PNG bytes.
func (c *Codec) Encode(id uuid.UUID) ([]byte, error) {
	// A negative size asks go-qrcode for modulePixels pixels per module.
	png, err := qrcode.Encode(c.Payload(id), c.level, -c.modulePixels)
	if err != nil {
		return nil, fmt.Errorf("encode QR for %s: %w", id, err)
	}
	return png, nil
}

// Decode extracts the candidate identifier from a scanned payload. URL-shaped
// payloads yield the path segment following the last "/artifact/"; anything
// else is returned unchanged as a bare identifier. The candidate is not validated.
func Decode(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidPayload
	}

	i := strings.LastIndex(raw, payloadMarker)
	if i < 0 {
		return raw, nil
	}

	candidate := raw[i+len(payloadMarker):]
	if j := strings.IndexByte(candidate, '/'); j >= 0 {
		candidate = candidate[:j]
	}
	return candidate, nil
}
