package question

import "strings"

// NormalizeLabel trims whitespace and lowercases an option label for comparison.
func NormalizeLabel(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ValidLabel reports whether a normalized label is one of a-d or 1-4.
func ValidLabel(label string) bool {
	if len(label) != 1 {
		return false
	}
	c := label[0]
	return (c >= 'a' && c <= 'd') || (c >= '1' && c <= '4')
}
