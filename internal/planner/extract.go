package planner

// This file contains the JSON extraction fallback chain for model output.
// Models are told to return bare JSON but routinely wrap it in code fences
// or prose, so extraction tries progressively looser strategies.

import (
	"regexp"
	"strings"
)

var fencedJSONRegexp = regexp.MustCompile("(?i)```json\\s*(\\{[\\s\\S]*?\\})\\s*```")

// ExtractJSONObject pulls the first JSON object out of raw model output.
// Strategy order:
//  1. a ```json fenced block
//  2. the span from the first "{" to the last "}"
//
// Returns "" when no candidate object exists.
func ExtractJSONObject(text string) string {
	if m := fencedJSONRegexp.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}
