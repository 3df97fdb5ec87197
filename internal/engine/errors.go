package engine

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a malformed input element. It is raised at
// the input boundary, before any snapshot is built - trace construction
// is all-or-nothing.
//
// Sources of invalid input:
//   - Non-integer tokens in text input ("3,x,7")
//   - Floats in scenario files (floats break canonical trace hashing)
//   - Values outside the int64 range
type InvalidInputError struct {
	// Position is the zero-based index of the offending element.
	Position int

	// Token is the raw representation of the offending element.
	Token string

	// Reason describes why the element was rejected.
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input at position %d: %q: %s", e.Position, e.Token, e.Reason)
}

// IsInvalidInput returns true if the error is an InvalidInputError.
// Uses errors.As to handle wrapped errors.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

// NewInvalidInputError creates an InvalidInputError.
func NewInvalidInputError(position int, token, reason string) *InvalidInputError {
	return &InvalidInputError{
		Position: position,
		Token:    token,
		Reason:   reason,
	}
}
