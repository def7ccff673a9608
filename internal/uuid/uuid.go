package uuid

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// UUID is a thin wrapper around google's uuid.UUID that implements database
// scanning and driver.Value interfaces. It is the public identifier of a media
// record, distinct from the internal auto-increment id.
type UUID uuid.UUID

// NewUUID creates a new random UUID.
func NewUUID() UUID {
	return UUID(uuid.New())
}

// Parse parses a textual UUID.
func Parse(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return UUID(id), nil
}

func (u UUID) String() string {
	return uuid.UUID(u).String()
}

func (u *UUID) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		// Stored as CHAR(36) text; fall back to raw bytes for BINARY(16) columns.
		if len(v) == 36 {
			parsed, err := uuid.ParseBytes(v)
			if err != nil {
				return err
			}
			*u = UUID(parsed)
			return nil
		}
		id, err := uuid.FromBytes(v)
		if err != nil {
			return err
		}
		*u = UUID(id)
		return nil
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*u = UUID(parsed)
		return nil
	default:
		return fmt.Errorf("UUID.Scan: expected []byte or string, got %T", src)
	}
}

func (u UUID) Value() (driver.Value, error) {
	return uuid.UUID(u).String(), nil
}

func (u UUID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(u).String()), nil
}

func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*u = UUID(parsed)
	return nil
}
