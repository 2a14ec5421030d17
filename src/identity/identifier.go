// Package identity mints and parses the immutable artifact identifiers.
package identity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMalformedIdentifier is returned when a candidate cannot be read as an identifier.
var ErrMalformedIdentifier = errors.New("malformed artifact identifier")

// Mint returns a new random (version 4) identifier. No coordination between
// concurrent callers is needed; persisting the value is the caller's job.
func Mint() uuid.UUID {
	return uuid.New()
}

// Parse converts a candidate string into an identifier.
func Parse(candidate string) (uuid.UUID, error) {
	id, err := uuid.Parse(candidate)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q: %v", ErrMalformedIdentifier, candidate, err)
	}
	return id, nil
}
