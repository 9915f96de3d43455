package folio

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every error returned when user or file input
// cannot be ingested.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a single rejected field.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Err}
}

func invalid(field, value string, err error) *InputError {
	return &InputError{Field: field, Value: value, Err: err}
}
