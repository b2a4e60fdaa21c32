package values

import (
	"fmt"

	"github.com/google/uuid"
)

// LaunchID uniquely identifies one host bootstrap.
type LaunchID struct {
	value uuid.UUID
}

// NewLaunchID creates a new random launch ID
func NewLaunchID() LaunchID {
	return LaunchID{value: uuid.New()}
}

// ParseLaunchID parses a string into a LaunchID
func ParseLaunchID(s string) (LaunchID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return LaunchID{}, fmt.Errorf("invalid launch ID: %w", err)
	}
	return LaunchID{value: id}, nil
}

// String returns the string representation
func (l LaunchID) String() string {
	return l.value.String()
}

// IsZero returns true if this is the zero value
func (l LaunchID) IsZero() bool {
	return l.value == uuid.Nil
}
