package types

import (
	"errors"
	"fmt"
)

// Catalog operation errors.
var (
	// ErrInvalidFormat matches any *FormatError via errors.Is.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrNotFound is returned when no product carries the requested id.
	ErrNotFound = errors.New("product not found")
	// ErrStorage wraps failures of the underlying file or database.
	ErrStorage = errors.New("storage failure")
)

// FormatError reports a catalog line or user-entered field that could not
// be parsed.
type FormatError struct {
	Line  int    // 1-based line number in the catalog file; 0 for user input.
	Field string // field name, empty when the field count is wrong.
	Input string // offending text.
	Err   error  // underlying parse error, if any.
}

func (e *FormatError) Error() string {
	msg := "invalid format"
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s %q", msg, e.Field, e.Input)
	} else {
		msg = fmt.Sprintf("%s: %q", msg, e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInvalidFormat.
func (e *FormatError) Is(target error) bool { return target == ErrInvalidFormat }
