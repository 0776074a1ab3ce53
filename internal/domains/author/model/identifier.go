package model

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource is every form an author identifier may arrive in: a parsed UUID,
// its canonical 36-character text or its raw 16 bytes.
type IDSource interface {
	uuid.UUID | string | []byte
}

const canonicalIDLength = 36

// ParseID resolves any IDSource to a uuid.UUID. The nil UUID is rejected.
func ParseID[T IDSource](v T) (uuid.UUID, error) {
	var (
		id  uuid.UUID
		err error
	)

	switch raw := any(v).(type) {
	case uuid.UUID:
		id = raw
	case string:
		if len(raw) != canonicalIDLength {
			return uuid.Nil, fmt.Errorf("%w: %q must be %d characters", ErrInvalidIdentifier, raw, canonicalIDLength)
		}
		id, err = uuid.Parse(raw)
	case []byte:
		id, err = uuid.FromBytes(raw)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
	}

	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: nil uuid", ErrInvalidIdentifier)
	}
	return id, nil
}
