package textutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName reports a game name that cannot be used as a single
// directory component.
var ErrInvalidName = errors.New("invalid game name")

// ValidateGameName checks that name addresses exactly one directory directly
// beneath the library root. Empty names, "." and "..", path separators, drive
// prefixes, and control characters are rejected.
func ValidateGameName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
		case r == ':':
			return fmt.Errorf("%w: %q contains a drive separator", ErrInvalidName, name)
		case r < 0x20 || r == 0x7f:
			return fmt.Errorf("%w: %q contains a control character", ErrInvalidName, name)
		}
	}
	return nil
}
