package normalize

import "fmt"

// ValidationError reports a record value that could not be normalized.
// Row is the 1-based row of the source spreadsheet.
type ValidationError struct {
	Row   int
	Field string // "name" or "identifier"
	Err   error
}

// Error returns "row N: invalid field: cause".
func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: invalid %s: %v", e.Row, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error { return e.Err }
