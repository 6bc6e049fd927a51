package shared

import (
	"fmt"
	"strings"
)

// Identity is a value object representing an opaque caller/account identifier
// used for ownership checks
type Identity struct {
	value string
}

// NewIdentity creates a new Identity value object
func NewIdentity(id string) (Identity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Identity{}, fmt.Errorf("identity cannot be empty")
	}
	return Identity{value: id}, nil
}

// MustNewIdentity creates a new Identity value object, panicking if invalid
// Use this only when you're certain the ID is valid (e.g., from database)
func MustNewIdentity(id string) Identity {
	identity, err := NewIdentity(id)
	if err != nil {
		panic(err)
	}
	return identity
}

// Value returns the string value of the Identity
func (i Identity) Value() string {
	return i.value
}

func (i Identity) String() string {
	return i.value
}

// Equals checks if two identities are equal
func (i Identity) Equals(other Identity) bool {
	return i.value == other.value
}

// IsZero checks if the Identity is the zero value (uninitialized)
func (i Identity) IsZero() bool {
	return i.value == ""
}
