package normalize

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		digits   string
		expected int
	}{
		{"400638133393", 1},
		{"460068200460", 8},
		{"000000000000", 0},
		{"111111111111", 6},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			got, err := CheckDigit(tt.digits)
			if err != nil {
				t.Fatalf("CheckDigit(%q) error = %v", tt.digits, err)
			}
			if got != tt.expected {
				t.Errorf("CheckDigit(%q) = %d, want %d", tt.digits, got, tt.expected)
			}
		})
	}

	if _, err := CheckDigit("12345"); err == nil {
		t.Error("CheckDigit should reject short input")
	}
	if _, err := CheckDigit("40063813339x"); err == nil {
		t.Error("CheckDigit should reject non-numeric input")
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"12 digits gain check digit", "400638133393", "4006381333931"},
		{"valid 13 digits unchanged", "4006381333931", "4006381333931"},
		{"separators stripped", "400-638-133-393", "4006381333931"},
		{"surrounding space", "  4006381333931  ", "4006381333931"},
		{"float cell", 4006381333931.0, "4006381333931"},
		{"12 digit float", 400638133393.0, "4006381333931"},
		{"int cell", 400638133393, "4006381333931"},
		{"int64 cell", int64(4006381333931), "4006381333931"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Identifier(tt.value)
			if err != nil {
				t.Fatalf("Identifier(%v) error = %v", tt.value, err)
			}
			if got != tt.expected {
				t.Errorf("Identifier(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestIdentifierErrors(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		substr string
	}{
		{"nil", nil, "empty"},
		{"wrong check digit", "4006381333930", "expected 1"},
		{"too short", "1234567890", "found 10 digits"},
		{"too long", "46000000000000", "found 14 digits"},
		{"no digits", "barcode", "found 0 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Identifier(tt.value)
			if err == nil {
				t.Fatalf("Identifier(%v) should fail", tt.value)
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.substr)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	cause := errors.New("found 10 digits, need 12 or 13")
	err := &ValidationError{Row: 7, Field: "identifier", Err: cause}

	want := "row 7: invalid identifier: found 10 digits, need 12 or 13"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	var ve *ValidationError
	if !errors.As(error(err), &ve) || ve.Row != 7 {
		t.Error("errors.As should recover the ValidationError")
	}
}
