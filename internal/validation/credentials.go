// Package validation contains input validation rules for user-supplied values.
package validation

import (
	"fmt"
	"strings"
)

const (
	maxNameLength     = 64
	minPasswordLength = 4
)

// NormalizeName trims surrounding whitespace. Names are matched exactly and
// case-sensitively everywhere else.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateName checks a display name after normalization.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name must be at most %d characters", maxNameLength)
	}
	return nil
}

// ValidatePassword checks the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}
