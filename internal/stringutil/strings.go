// Package stringutil provides common string manipulation utilities.
package stringutil

import "strings"

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// IsTooShort reports whether s contains fewer than minWords words.
// Used to detect degenerate LLM output that should be replaced with a
// templated fallback.
func IsTooShort(s string, minWords int) bool {
	return WordCount(s) < minWords
}

// JoinNatural joins items with commas and a final "and", the way a
// sentence would list them: "A", "A and B", "A, B, and C".
func JoinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// Truncate shortens s to at most max runes, appending an ellipsis when
// truncation occurs. Returns s unchanged if it already fits.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
