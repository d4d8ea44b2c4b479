package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is on the fatal pipeline errors.
var (
	ErrSchemaMismatch = stderrors.New("schema mismatch")
	ErrMalformedDate  = stderrors.New("malformed date")
	ErrMalformedValue = stderrors.New("malformed value")
)

// SchemaMismatchError is returned when a required source column is absent.
type SchemaMismatchError struct {
	Column string
	Source string
}

func (e *SchemaMismatchError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("schema mismatch: required column %q not found in %s", e.Column, e.Source)
	}
	return fmt.Sprintf("schema mismatch: required column %q not found", e.Column)
}

// Unwrap returns ErrSchemaMismatch.
func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}

// MalformedDateError is returned when an activity date does not match the
// month/day/year pattern. Row is the 1-based data row (header excluded).
type MalformedDateError struct {
	Column string
	Row    int
	Value  string
	Cause  error
}

func (e *MalformedDateError) Error() string {
	msg := fmt.Sprintf("malformed date %q in column %q at row %d", e.Value, e.Column, e.Row)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the parse error.
func (e *MalformedDateError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMalformedDate}
	}
	return []error{ErrMalformedDate, e.Cause}
}

// MalformedValueError is returned when a numeric cell holds text that is not
// a number, or a fraction where whole units are expected.
type MalformedValueError struct {
	Column string
	Row    int
	Value  string
	Reason string
}

func (e *MalformedValueError) Error() string {
	msg := fmt.Sprintf("malformed value %q in column %q at row %d", e.Value, e.Column, e.Row)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns ErrMalformedValue.
func (e *MalformedValueError) Unwrap() error {
	return ErrMalformedValue
}

// Kind classifies an error for logs and metrics labels.
func Kind(err error) string {
	var appErr *AppError
	switch {
	case err == nil:
		return "none"
	case stderrors.Is(err, ErrSchemaMismatch):
		return "schema_mismatch"
	case stderrors.Is(err, ErrMalformedDate):
		return "malformed_date"
	case stderrors.Is(err, ErrMalformedValue):
		return "malformed_value"
	case stderrors.As(err, &appErr):
		return strings.ToLower(string(appErr.Type))
	default:
		return "unknown"
	}
}
