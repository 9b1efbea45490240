package report

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation_failed")
	ErrNotFound     = errors.New("not_found")
	ErrInvalidState = errors.New("invalid_state")
	ErrPersistence  = errors.New("persistence_error")
)

// FieldError says which field broke which rule. errors.Is(err, ErrValidation)
// still holds.
type FieldError struct {
	Field string
	Rule  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed: %s (%s)", e.Field, e.Rule)
}

func (e *FieldError) Unwrap() error { return ErrValidation }
