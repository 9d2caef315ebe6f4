package store

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNameInvalid is returned when a preset name does not match the required pattern.
	ErrNameInvalid = errors.New("preset name must match [a-z0-9]([a-z0-9-]*[a-z0-9])?")

	// ErrNameReserved is returned when a preset name collides with a route or command word.
	ErrNameReserved = errors.New("preset name is reserved and cannot be used")

	namePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

	reservedNames = map[string]bool{
		"new":    true,
		"render": true,
		"import": true,
		"export": true,
	}
)

// MaxNameLength bounds preset names to the width of presets.name.
const MaxNameLength = 100

// ValidateName checks that name conforms to the required format and is not
// reserved. Uniqueness is enforced by the unique index on presets.name.
func ValidateName(name string) error {
	if len(name) > MaxNameLength || !namePattern.MatchString(name) {
		return ErrNameInvalid
	}
	if reservedNames[name] {
		return fmt.Errorf("%w: %q", ErrNameReserved, name)
	}
	return nil
}
