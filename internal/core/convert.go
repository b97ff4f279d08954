package core

// convert.go coerces loosely typed cell and JSON values into record fields.
//
// Spreadsheet and form input is messy:
//   - Numbers arrive as float64 from JSON and numeric cells, or as text
//   - Tax rates carry percent signs, currency symbols and thousands separators
//   - Excel formula prefixes (="value") and stray quotes wrap text cells
//
// Optional fields collapse to nil when empty or unparseable, so callers never
// see an empty string standing in for "no value".

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes one pair of matching surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		return s[2 : len(s)-1]
	}
	s = strings.TrimPrefix(s, "=")

	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// ParseNumber parses a decimal string.
// Handles currency symbols, percent signs, thousands separators, and
// accounting format (parentheses for negative).
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, "₹", "") // Rupee
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatNumber renders f without an exponent or trailing zeros,
// so a numeric barcode cell 4006381333931 stays "4006381333931".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isScalar reports whether v is a value a text or numeric field can accept.
func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, float64, float32, int, int64, int32:
		return true
	}
	return false
}

// cellText converts a scalar to its text form. ok is false for nil and
// non-scalar values.
func cellText(v any) (s string, ok bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return FormatNumber(x), true
	case float32:
		return FormatNumber(float64(x)), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	}
	return "", false
}

// optionalText returns the trimmed text of v, or nil when v is absent,
// empty, or not a scalar. Quotes and formula prefixes are kept.
func optionalText(v any) *string {
	s, ok := cellText(v)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// optionalNumber returns v as a number, or nil when it is absent or cannot
// be parsed. Parse failures are swallowed.
func optionalNumber(v any) *float64 {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return &x
	case float32, int, int64, int32:
		s, _ := cellText(x)
		f, ok := ParseNumber(s)
		if !ok {
			return nil
		}
		return &f
	case string:
		f, ok := ParseNumber(CleanCell(x))
		if !ok {
			return nil
		}
		return &f
	}
	return nil
}

// requiredText returns the trimmed text of v, or "" when it is absent.
func requiredText(v any) string {
	s, ok := cellText(v)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
