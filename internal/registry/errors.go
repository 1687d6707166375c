package registry

import (
	"errors"
	"fmt"

	"evalgo.org/vlanreg/models"
)

// Error categories returned by the registry. Callers match them with errors.Is.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrMissingField   = errors.New("missing required field")
	ErrInvalidType    = errors.New("invalid field type")
	ErrOutOfRange     = errors.New("vlan id out of range")
	ErrConflict       = errors.New("vlan already exists")
	ErrNotFound       = errors.New("vlan not found")
)

// FieldError reports a missing or mistyped payload field.
type FieldError struct {
	Field  string
	Reason string
	err    error
}

func (e *FieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %s", e.err, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.err, e.Field)
}

func (e *FieldError) Unwrap() error { return e.err }

// RangeError reports a VLAN ID outside the accepted bounds.
type RangeError struct {
	ID  int64
	Min int
	Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %d not in [%d, %d]", ErrOutOfRange, e.ID, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// ConflictError carries the record that already holds the requested ID.
type ConflictError struct {
	Existing models.VLAN
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %d", ErrConflict, e.Existing.ID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

func missingField(field string) error {
	return &FieldError{Field: field, err: ErrMissingField}
}

func invalidType(field, reason string) error {
	return &FieldError{Field: field, Reason: reason, err: ErrInvalidType}
}
