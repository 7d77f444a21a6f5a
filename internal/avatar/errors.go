package avatar

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrAvatarNotFound  = errors.New("avatar not found")
	ErrVersionConflict = errors.New("avatar was modified concurrently")
)

// InvalidInputError is returned for malformed or out-of-domain input, e.g.
// negative experience points or an unknown stat key. It matches
// ErrInvalidInput with errors.Is.
type InvalidInputError struct {
	Field  string
	Reason string
}

func NewInvalidInputError(field, reason string) *InvalidInputError {
	return &InvalidInputError{
		Field:  field,
		Reason: reason,
	}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
