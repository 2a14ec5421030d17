package qr

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	id := uuid.MustParse("3f2a6c1e-8d4b-4f7a-9c2e-5b1d0a9e7f42")

	codec := NewCodec("https://museum-app.com/")
	assert.Equal(t, "https://museum-app.com/artifact/3f2a6c1e-8d4b-4f7a-9c2e-5b1d0a9e7f42", codec.Payload(id))
}

func TestDecodeRoundTrip(t *testing.T) {
	codec := NewCodec("https://museum-app.com")
	for i := 0; i < 50; i++ {
		id := uuid.New()
		got, err := Decode(codec.Payload(id))
		require.NoError(t, err)
		assert.Equal(t, id.String(), got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare identifier", "3f2a6c1e-8d4b-4f7a-9c2e-5b1d0a9e7f42", "3f2a6c1e-8d4b-4f7a-9c2e-5b1d0a9e7f42"},
		{"bare garbage", "INV-001", "INV-001"},
		{"trailing slash", "https://museum-app.com/artifact/abc/", "abc"},
		{"trailing path", "https://museum-app.com/artifact/abc/extra/more", "abc"},
		{"last occurrence wins", "https://a.example/artifact/old/artifact/new", "new"},
		{"empty after marker", "https://museum-app.com/artifact/", ""},
		{"marker only", "/artifact/x", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode("")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestEncodeIsDeterministicPNG(t *testing.T) {
	codec := NewCodec("https://museum-app.com", WithModulePixels(4))
	id := uuid.New()

	first, err := codec.Encode(id)
	require.NoError(t, err)
	second, err := codec.Encode(id)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	img, err := png.Decode(bytes.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
	assert.Zero(t, img.Bounds().Dx()%4)
}

func TestParseRecoveryLevel(t *testing.T) {
	level, err := ParseRecoveryLevel("")
	require.NoError(t, err)
	assert.Equal(t, qrcode.Low, level)

	level, err = ParseRecoveryLevel("h")
	require.NoError(t, err)
	assert.Equal(t, qrcode.Highest, level)

	_, err = ParseRecoveryLevel("Z")
	assert.Error(t, err)
}
