package util

import (
	"strings"
	"unicode/utf8"
)

// Truncate trims surrounding whitespace and cuts s to at most max runes.
// A non-positive max returns the trimmed string unchanged.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// Placeholder returns s, or def when s is blank.
func Placeholder(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// CleanList trims each entry and drops blanks, preserving order.
func CleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
