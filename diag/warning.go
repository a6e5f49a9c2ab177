// Package diag defines the warning values returned by cardpress
// operations.
//
// The library never logs. Any operation that can encounter a non-fatal
// issue returns []Warning alongside its result, and the caller decides
// whether and how to surface them.
package diag

import (
	"fmt"
	"strings"
)

// Code identifies a warning category for programmatic handling.
type Code string

// Warning categories.
const (
	// CodeConfig marks soft configuration issues such as layout overflow.
	CodeConfig Code = "config"
	// CodeFont marks a font source that failed, causing a fallback.
	CodeFont Code = "font"
	// CodeDuplicate marks identifiers shared by more than one record.
	CodeDuplicate Code = "duplicate"
	// CodeRecord marks a source row that was skipped while reading input.
	CodeRecord Code = "record"
)

// Warning describes a non-fatal issue encountered while generating cards.
type Warning struct {
	Code    Code
	Message string
}

// Warningf constructs a Warning with a formatted message.
func Warningf(code Code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// String returns the warning as "code: message".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single display string.
// Returns "" for an empty slice.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
