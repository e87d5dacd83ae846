// Package planner turns a student's free-form question into a structured
// query plan: an intent plus the course codes the question mentions.
// The plan comes from an LLM but is validated here; the model never gets
// to invent intents or non-list code fields.
package planner

import "strings"

// Intent is the kind of response the question needs.
type Intent string

const (
	// IntentPrereqQuery asks for the direct prerequisites of a course.
	IntentPrereqQuery Intent = "prereq_query"
	// IntentAllPrerequisites asks for the full transitive prerequisite chain.
	IntentAllPrerequisites Intent = "all_prerequisites"
	// IntentNextCourse asks which courses a given course unlocks.
	IntentNextCourse Intent = "next_course_query"
	// IntentCourseInfo asks for the details of one course.
	IntentCourseInfo Intent = "course_info"
	// IntentAdvising asks for help planning or choosing courses.
	IntentAdvising Intent = "advising"
	// IntentSmalltalk covers greetings, thanks, and casual chat.
	IntentSmalltalk Intent = "smalltalk"
	// IntentGeneral is everything else, and the fallback for anything
	// the model returns that is not in the allowed set.
	IntentGeneral Intent = "general"
)

var allowedIntents = map[Intent]struct{}{
	IntentPrereqQuery:      {},
	IntentAllPrerequisites: {},
	IntentNextCourse:       {},
	IntentCourseInfo:       {},
	IntentAdvising:         {},
	IntentSmalltalk:        {},
	IntentGeneral:          {},
}

// ParseIntent lowercases and trims a raw intent string and coerces anything
// outside the allowed set to IntentGeneral.
func ParseIntent(raw string) Intent {
	intent := Intent(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := allowedIntents[intent]; ok {
		return intent
	}
	return IntentGeneral
}

// IsValid reports whether the intent is one of the allowed values.
func (i Intent) IsValid() bool {
	_, ok := allowedIntents[i]
	return ok
}

// NeedsCourseCode reports whether the intent is meaningless without a
// course code to query.
func (i Intent) NeedsCourseCode() bool {
	switch i {
	case IntentPrereqQuery, IntentAllPrerequisites, IntentNextCourse, IntentCourseInfo:
		return true
	default:
		return false
	}
}
