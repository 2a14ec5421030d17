package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/museum-catalog/museum-backend/src/identity"
	"github.com/museum-catalog/museum-backend/src/qr"
)

func TestScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	scanner := NewScanService(f.artifacts)

	a := f.createArtifact(t, "INV-001", "Masque")
	hidden := f.createArtifact(t, "INV-002", "Reserve", withdrawn)

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"full payload", f.codec.Payload(a.ID), nil},
		{"bare identifier", a.ID.String(), nil},
		{"trailing path", f.codec.Payload(a.ID) + "/details", nil},
		{"other host", "http://localhost:8000/artifact/" + a.ID.String(), nil},
		{"empty", "", ErrPayloadRequired},
		{"blank", "  ", ErrPayloadRequired},
		{"garbage", "hello world", identity.ErrMalformedIdentifier},
		{"malformed payload", testBaseURL + "/artifact/12", identity.ErrMalformedIdentifier},
		{"withdrawn", f.codec.Payload(hidden.ID), ErrArtifactNotFound},
		{"unknown", f.codec.Payload(identity.Mint()), ErrArtifactNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanner.Scan(ctx, tt.payload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, a.ID, got.ID)
			assert.Equal(t, "INV-001", got.InventoryNumber)
		})
	}
}

func TestScanRoundTripsEveryMintedIdentifier(t *testing.T) {
	codec := qr.NewCodec(testBaseURL + "/")
	for i := 0; i < 50; i++ {
		id := identity.Mint()
		candidate, err := qr.Decode(codec.Payload(id))
		require.NoError(t, err)
		parsed, err := identity.Parse(candidate)
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
}
