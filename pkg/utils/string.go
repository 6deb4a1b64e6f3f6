package utils

import (
	"strings"
	"unicode"
)

// IsSpace reports whether r is whitespace. Besides the Unicode White_Space
// set it includes the ASCII separators U+001C..U+001F, which subscription
// publishers occasionally leave in exported lists.
func IsSpace(r rune) bool {
	if r >= 0x1c && r <= 0x1f {
		return true
	}

	return unicode.IsSpace(r)
}

// TrimWhitespace removes leading and trailing whitespace as defined by IsSpace.
func TrimWhitespace(str string) string {
	return strings.TrimFunc(str, IsSpace)
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.FieldsFunc(str, IsSpace), " ")
}

// TruncateString truncates string to max length in runes.
func TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
