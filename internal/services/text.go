package services

import "strings"

// NormalizeText collapses every run of whitespace into a single space and
// trims the ends. Idempotent.
func NormalizeText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// TruncateRunes returns at most max characters of s. Counting runes keeps
// the cut from landing inside a multi-byte character.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
