package core

import (
	"errors"
	"fmt"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The invalid value
	Message string // Human-readable error message
	Row     int    // 1-based sheet row, zero outside imports
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	return msg
}

// NotFoundError reports an id that matches no record.
type NotFoundError struct {
	Entity string // "Product", "Vendor", "Module"
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// ConstraintError reports a write rejected by a uniqueness rule.
type ConstraintError struct {
	Field string
	Value string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("duplicate %s: %q already exists", e.Field, e.Value)
}

// ParseError reports a workbook that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse workbook: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// StoreError wraps an unexpected adapter failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConstraint reports whether err is or wraps a *ConstraintError.
func IsConstraint(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
