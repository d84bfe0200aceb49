// Package dates extracts release years from the loosely formatted date text
// returned by lyrics and catalog services.
package dates

import (
	"regexp"
	"strings"

	"vibecatalog/internal/logger"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ExtractYear returns a best-effort four digit year for text, or "" when none
// can be determined. Rules are applied in order:
//
//   - text containing a comma yields the trimmed segment after the last comma
//     ("July 26, 2024" -> "2024"), whatever that segment holds
//   - text containing a hyphen yields its first four characters ("2018-03-21")
//   - a four character numeric string is returned as is
//   - otherwise the first standalone 19xx/20xx word is returned
//
// Failure is not an error; it is logged at warn level and reported as "".
func ExtractYear(text string) string {
	if text == "" {
		return ""
	}

	if i := strings.LastIndex(text, ","); i >= 0 {
		return strings.TrimSpace(text[i+1:])
	}

	if strings.Contains(text, "-") {
		return prefix(text, 4)
	}

	if len(text) == 4 && allDigits(text) {
		return text
	}

	if m := yearPattern.FindString(text); m != "" {
		return m
	}

	logger.Default().Warn("could not extract year from date string: %q", text)
	return ""
}

// prefix returns at most n bytes of s.
func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// YearValue parses the leading digits of an extracted year for ordering.
// ok is false when year does not start with a digit.
func YearValue(year string) (value int, ok bool) {
	for i := 0; i < len(year); i++ {
		c := year[i]
		if c < '0' || c > '9' {
			break
		}
		value = value*10 + int(c-'0')
		ok = true
	}
	return value, ok
}
