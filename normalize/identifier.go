package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Identifier coerces a raw cell value into a canonical 13-digit EAN-13
// string. Numeric input is rendered without a fractional part first, then
// every non-digit character is stripped. A 12-digit value gains its check
// digit; a 13-digit value must already carry the correct one.
//
// Example:
//
//	Identifier("400638133393")    // "4006381333931"
//	Identifier(4006381333931.0)   // "4006381333931"
//	Identifier("400-638-133-393") // "4006381333931"
func Identifier(value any) (string, error) {
	raw, err := rawIdentifier(value)
	if err != nil {
		return "", err
	}

	digits := digitsOnly(raw)
	switch len(digits) {
	case 12:
		check, err := CheckDigit(digits)
		if err != nil {
			return "", err
		}
		return digits + strconv.Itoa(check), nil
	case 13:
		check, err := CheckDigit(digits[:12])
		if err != nil {
			return "", err
		}
		if digits[12:] != strconv.Itoa(check) {
			return "", fmt.Errorf("check digit mismatch: expected %d", check)
		}
		return digits, nil
	default:
		return "", fmt.Errorf("found %d digits, need 12 or 13", len(digits))
	}
}

// CheckDigit computes the EAN-13 check digit for a string of exactly 12
// digits. Digits at even positions (0-indexed) count once, digits at odd
// positions three times; the check digit is the distance from the
// weighted sum to the next multiple of ten.
func CheckDigit(digits12 string) (int, error) {
	if len(digits12) != 12 {
		return 0, fmt.Errorf("check digit needs 12 digits, got %d", len(digits12))
	}
	sum := 0
	for i := 0; i < 12; i++ {
		c := digits12[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("check digit input must be numeric, got %q", digits12)
		}
		d := int(c - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10, nil
}

// rawIdentifier renders a cell value as text. Spreadsheet readers hand
// numeric cells over as floats, which must not print an exponent or a
// fractional part.
func rawIdentifier(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", errors.New("identifier is empty")
	case string:
		return strings.TrimSpace(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', 0, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 0, 32), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	default:
		return strings.TrimSpace(fmt.Sprint(value)), nil
	}
}

// digitsOnly strips every character outside '0'..'9'.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
