package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Runs of letters, periods and hyphens; anything else separates tokens.
// Covers the Latin and Russian Cyrillic alphabets, including ё.
var nameToken = regexp.MustCompile(`[A-Za-zА-Яа-яЁё.\-]+`)

// Name canonicalizes a free-form person name into "SURNAME I.O." form.
//
// The first token is the surname, uppercased. If any later token already
// contains a period, all later tokens are treated as pre-abbreviated
// initials and pass through uppercased. Otherwise the first two later
// tokens contribute one initial each. A surname-only name is valid.
//
// Example:
//
//	Name("иванов иван иванович")  // "ИВАНОВ И.И."
//	Name("petrov a.")             // "PETROV A."
//	Name("сидоров")               // "СИДОРОВ"
func Name(raw string) (string, error) {
	// NFC first: decomposed Cyrillic (й as и plus combining breve) would
	// otherwise lose its accent to the tokenizer.
	cleaned := strings.Join(strings.Fields(norm.NFC.String(raw)), " ")
	if cleaned == "" {
		return "", errors.New("name is empty")
	}

	tokens := nameToken.FindAllString(cleaned, -1)
	if len(tokens) == 0 {
		return "", fmt.Errorf("no recognizable letters in %q", raw)
	}

	surname := strings.ToUpper(tokens[0])
	rest := tokens[1:]

	for _, t := range rest {
		if strings.Contains(t, ".") {
			// Pre-abbreviated initials pass through as written.
			upper := make([]string, len(rest))
			for i, p := range rest {
				upper[i] = strings.ToUpper(p)
			}
			return surname + " " + strings.Join(upper, " "), nil
		}
	}

	var initials []string
	for _, t := range rest {
		trimmed := strings.Trim(t, ".-")
		if trimmed == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(trimmed)
		initials = append(initials, string(unicode.ToUpper(r)))
		if len(initials) == 2 {
			break
		}
	}
	if len(initials) == 0 {
		return surname, nil
	}
	return surname + " " + strings.Join(initials, ".") + ".", nil
}
