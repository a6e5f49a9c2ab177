package xlsx

import (
	"fmt"
	"strconv"
	"strings"
)

// decodeCell resolves a cell's typed value: string, float64, bool, or
// nil for an empty cell. Shared string indices resolve against the
// workbook's string table.
func (r *Reader) decodeCell(c cellXML) any {
	switch c.T {
	case "s": // Shared string
		idx, err := strconv.Atoi(c.V)
		if err != nil || idx < 0 || idx >= len(r.sharedStrings) {
			return nil
		}
		return r.sharedStrings[idx]
	case "b": // Boolean
		return c.V == "1"
	case "e": // Error value, e.g. #DIV/0!
		return c.V
	case "str": // Cached formula result
		return c.V
	case "inlineStr":
		if c.Is != nil {
			return flattenRuns(c.Is.T, c.Is.R)
		}
		return nil
	default: // Number or empty
		if c.V == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(c.V, 64); err == nil {
			return f
		}
		return c.V
	}
}

// columnIndex parses the column letters of a cell reference like "B7"
// into a 0-indexed column (A=0, B=1, ..., AA=26). It returns -1 when
// the reference carries no column letters.
func columnIndex(ref string) int {
	result := 0
	i := 0
	for ; i < len(ref); i++ {
		c := ref[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			break
		}
		result = result*26 + int(c-'A') + 1
	}
	if i == 0 {
		return -1
	}
	return result - 1
}

// displayString renders a cell value the way it reads in the sheet.
// Integral numbers drop their decimal point.
func displayString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(x)
	}
}

// digitCount counts decimal digits after rendering the value as an
// identifier. Floats render without an exponent so spreadsheet number
// cells keep all their digits.
func digitCount(v any) int {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', 0, 64)
	case bool:
		return 0
	default:
		s = fmt.Sprint(x)
	}
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// blankRow reports whether every cell is empty or whitespace. Rows like
// that are formatting artifacts, not records.
func blankRow(cells []any) bool {
	for _, v := range cells {
		switch x := v.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(x) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
