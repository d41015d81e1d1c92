// Package errors defines the error kinds surfaced by the record store.
//
// Every user-facing refusal is a *ValidationError. Missing databases and tables are
// reported as *NotFoundError, which also matches fs.ErrNotExist. Unreadable persisted
// units wrap ErrCorruptUnit. Everything else is an I/O error from the storage layer,
// wrapped with context but otherwise untouched.
package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrNotFound matches any *NotFoundError via errors.Is.
	ErrNotFound = stderrors.New("not found")

	// ErrCorruptUnit is wrapped by failures to decode a persisted table unit.
	ErrCorruptUnit = stderrors.New("corrupt table unit")
)

// ValidationError reports input the store refuses to accept
// (wrong insert arity, wrong field type, duplicate names, bad schemas)
type ValidationError struct {
	Table  string // table name (empty if not table-scoped)
	Field  string // field name (empty if not field-scoped)
	Reason string // human-readable explanation
}

func (e *ValidationError) Error() string {
	var parts []string

	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table %s", e.Table))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field %q", e.Field))
	}
	parts = append(parts, e.Reason)

	return "validation error: " + strings.Join(parts, " - ")
}

// Validationf builds a ValidationError that is not tied to a table or field
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func NewFieldCountMismatch(table string, given, expected int) *ValidationError {
	return &ValidationError{
		Table:  table,
		Reason: fmt.Sprintf("field count mismatch: given %d, expected %d", given, expected),
	}
}

func NewTypeMismatch(table, field, given, expected string) *ValidationError {
	return &ValidationError{
		Table:  table,
		Field:  field,
		Reason: fmt.Sprintf("invalid type: given %q, expected %q", given, expected),
	}
}

func NewAlreadyExists(kind, name string) *ValidationError {
	return &ValidationError{
		Reason: fmt.Sprintf("%s with name %q already exists", kind, name),
	}
}

// IsValidation reports whether err is, or wraps, a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// NotFoundError reports a database or table that does not exist
type NotFoundError struct {
	Kind string // "database" or "table"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Unwrap lets callers test for fs.ErrNotExist, matching what the raw storage layer returns
func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Corruptf wraps ErrCorruptUnit with context
func Corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptUnit, fmt.Sprintf(format, args...))
}
