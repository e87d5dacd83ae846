// Package coursecode normalizes free-text course references into the
// canonical "DEPT NNN" course code form used as the graph's course identity.
package coursecode

import (
	"regexp"
	"strings"
)

// Alias maps a spoken course name to its canonical code.
// Aliases are checked in declaration order; the first phrase found as a
// substring of the input wins, so more specific phrases must come before
// their prefixes.
type Alias struct {
	Phrase string
	Code   string
}

// Aliases is the known course name table. Order is significant.
var Aliases = []Alias{
	{"data structures and algorithms", "CS 210"},
	{"data structures", "CS 210"},
	{"introduction to programming", "CS 110"},
	{"intro to programming", "CS 110"},
	{"object oriented programming", "CS 115"},
	{"web and database programming", "CS 215"},
	{"web programming", "CS 215"},
	{"applied calculus i", "MATH 103"},
	{"calculus 1", "MATH 103"},
	{"calculus i", "MATH 103"},
}

// codeRegex matches loose course code spellings like "cs210", "math-103" or
// "stat 151" for the known departments.
var codeRegex = regexp.MustCompile(`\b(cs|math|stat|eng|bio|chem)[\s-]?(\d{3})\b`)

// Normalize maps free text to a canonical course code, or "" when the text
// contains neither a known alias nor a recognizable code pattern.
// It is pure and case-insensitive, and idempotent on canonical codes.
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return ""
	}

	for _, alias := range Aliases {
		if strings.Contains(lowered, alias.Phrase) {
			return alias.Code
		}
	}

	if m := codeRegex.FindStringSubmatch(lowered); m != nil {
		return strings.ToUpper(m[1]) + " " + m[2]
	}

	return ""
}
