package config

import (
	"fmt"
	"strings"
)

// FieldError describes one invalid configuration value.
type FieldError struct {
	Key     string // configuration file key
	Message string
}

// Error returns the violation as "key: message".
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// ConfigError aggregates every invalid value found in a single pass, so
// callers can report all of them at once instead of fixing one per run.
type ConfigError struct {
	Fields []FieldError
}

// Error joins all field violations into one message.
func (e *ConfigError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid configuration"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}
