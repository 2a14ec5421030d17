package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintIsUnique(t *testing.T) {
	seen := make(map[uuid.UUID]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := Mint()
		require.NotEqual(t, uuid.Nil, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate identifier %s", id)
		seen[id] = struct{}{}
	}
}

func TestParseRoundTrip(t *testing.T) {
	id := Mint()
	parsed, err := Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseMalformed(t *testing.T) {
	for _, candidate := range []string{"", "not-a-valid-identifier-format", "INV-001", "1234"} {
		_, err := Parse(candidate)
		assert.ErrorIs(t, err, ErrMalformedIdentifier, candidate)
	}
}
