package testutil

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/leengari/recordstore/internal/domain/data"
	domainerrors "github.com/leengari/recordstore/internal/domain/errors"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected no error, got: %v", context, err)
	}
}

// AssertValidationError checks that err is a ValidationError
func AssertValidationError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected a validation error, got nil", context)
	}
	if !domainerrors.IsValidation(err) {
		t.Errorf("%s: expected a validation error, got %T: %v", context, err, err)
	}
}

// AssertNotFound checks that err reports a missing database or table
func AssertNotFound(t *testing.T, err error, context string) {
	t.Helper()
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("%s: expected a not-found error, got: %v", context, err)
	}
}

// AssertFieldEquals checks a single field of a row
func AssertFieldEquals(t *testing.T, row data.Row, field string, expected any, context string) {
	t.Helper()
	v, ok := row.Get(field)
	if !ok {
		t.Errorf("%s: expected field '%s' to exist", context, field)
		return
	}
	if v != expected {
		t.Errorf("%s: field '%s': expected %#v, got %#v", context, field, expected, v)
	}
}

// CollectRows drains the row sequence of a scan call, failing the test if
// the call returned an error:
//
//	rows := testutil.CollectRows(t)(table.All())
func CollectRows(t *testing.T) func(iter.Seq[data.Row], error) []data.Row {
	return func(seq iter.Seq[data.Row], err error) []data.Row {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error opening row sequence: %v", err)
		}
		return slices.Collect(seq)
	}
}
