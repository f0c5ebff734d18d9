package csv

import (
	"errors"
	"fmt"
)

// ErrInvalidDelimiter is matched by every *OptionsError that rejects a delimiter.
var ErrInvalidDelimiter = errors.New("invalid delimiter")

// IOError reports that the input could not be opened or read.
// It is distinct from the normal end of input, which is never an error.
type IOError struct {
	// Op is the failed operation: "open" or "read".
	Op string
	// Path is the file name, if the input was a named file.
	Path string
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message.
func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("csv: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("csv: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}

// Is reports whether target is ErrInvalidDelimiter and e rejects the delimiter.
func (e *OptionsError) Is(target error) bool {
	return target == ErrInvalidDelimiter && e.Field == "Comma"
}
