package table

import (
	"errors"
	"fmt"
)

// ErrTable is the base error of the package. Every typed error below unwraps
// to it, so callers can match the whole family with errors.Is(err, ErrTable).
var ErrTable = errors.New("table error")

// ErrExhausted signals the end of a cursor traversal.
var ErrExhausted = errors.New("cursor exhausted")

// RowLookupError is returned when an id-addressed operation targets a row
// that does not exist (out of range, or a tombstoned slot).
type RowLookupError struct {
	RowID int
}

func (e RowLookupError) Error() string {
	return fmt.Sprintf("row index %d is not valid", e.RowID)
}

func (e RowLookupError) Unwrap() error { return ErrTable }

// ColumnLookupError is returned when a column name is not part of the table
// schema.
type ColumnLookupError struct {
	Column string
}

func (e ColumnLookupError) Error() string {
	return fmt.Sprintf("column name '%s' is not valid", e.Column)
}

func (e ColumnLookupError) Unwrap() error { return ErrTable }

// CursorModeError is returned when an operation is not supported by the
// cursor's mode, or when a mode name cannot be parsed.
type CursorModeError struct {
	Mode      string
	Operation string
}

func (e CursorModeError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("unknown cursor mode '%s'", e.Mode)
	}
	return fmt.Sprintf("%s is not supported by %s cursors", e.Operation, e.Mode)
}

func (e CursorModeError) Unwrap() error { return ErrTable }

// TypeMismatchError is returned by record validation when a value does not
// match the declared kind of its column.
type TypeMismatchError struct {
	Field    string
	Expected Kind
	Actual   any
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("field '%s' requires type '%s', got %T", e.Field, e.Expected, e.Actual)
}

func (e TypeMismatchError) Unwrap() error { return ErrTable }
