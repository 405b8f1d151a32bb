package extractor

import (
	"fmt"
)

// MissingFieldError is returned when a variant needs a field key that the
// header row did not produce.
type MissingFieldError struct {
	// Field is the normalized field key that was looked up.
	Field string

	// Row is the 1-based worksheet row being mapped.
	Row int
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row %d: missing field %q", e.Row, e.Field)
}

// InvalidValueError is returned when a cell cannot be converted to the
// type its canonical field requires, e.g. a price that is not a number.
type InvalidValueError struct {
	Field string
	Row   int
	Value string
	Err   error
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("row %d: invalid value %q for field %q: %v", e.Row, e.Value, e.Field, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// UnknownVariantError is returned by Lookup for an unrecognized variant name.
type UnknownVariantError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant %q", e.Name)
}
