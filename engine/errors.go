package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrEmptyDataset    = errors.New("empty dataset")
	ErrAxisMismatch    = errors.New("axis mismatch")
	ErrInvalidConfig   = errors.New("invalid chart config")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrNotFound        = errors.New("no matching record")
)

// MalformedRecordError reports a non-numeric value in a numeric column.
type MalformedRecordError struct {
	Row    int // 1-based data row, header excluded
	Column string
	Value  string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("row %d: column %q: %q is not a number", e.Row, e.Column, e.Value)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// AxisMismatchError reports an entity whose attributes differ in count or
// order from the first entity passed to a layout.
type AxisMismatchError struct {
	Entity string
	Index  int    // attribute index, -1 when the counts differ
	Want   string // expected axis, or expected count when Index is -1
	Got    string
}

func (e *AxisMismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("entity %q has %s attributes, want %s", e.Entity, e.Got, e.Want)
	}
	return fmt.Sprintf("entity %q attribute %d is %q, want %q", e.Entity, e.Index, e.Got, e.Want)
}

func (e *AxisMismatchError) Unwrap() error { return ErrAxisMismatch }
