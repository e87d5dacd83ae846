package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want Intent
	}{
		{name: "Known intent", raw: "prereq_query", want: IntentPrereqQuery},
		{name: "Uppercase coerced", raw: "SMALLTALK", want: IntentSmalltalk},
		{name: "Whitespace trimmed", raw: "  advising ", want: IntentAdvising},
		{name: "Unknown intent falls back to general", raw: "course_registration", want: IntentGeneral},
		{name: "Empty falls back to general", raw: "", want: IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseIntent(tt.raw))
		})
	}
}

func TestParsePlan(t *testing.T) {
	t.Parallel()

	t.Run("Valid plan", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan(`{"intent": "prereq_query", "course_codes": ["CS210"], "reasoning": "direct prereqs"}`)
		assert.Equal(t, IntentPrereqQuery, plan.Intent)
		assert.Equal(t, []string{"CS 210"}, plan.CourseCodes)
		assert.Equal(t, "direct prereqs", plan.Rationale)
	})

	t.Run("Fenced plan", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan("```json\n{\"intent\": \"course_info\", \"course_codes\": [\"cs-215\"]}\n```")
		assert.Equal(t, IntentCourseInfo, plan.Intent)
		assert.Equal(t, []string{"CS 215"}, plan.CourseCodes)
	})

	t.Run("Malformed JSON degrades to general", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan(`{"intent": "prereq_query", "course_codes": [`)
		assert.Equal(t, IntentGeneral, plan.Intent)
		assert.Empty(t, plan.CourseCodes)
	})

	t.Run("Non-JSON output degrades to general", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan("I think you want prerequisites for CS210.")
		assert.Equal(t, IntentGeneral, plan.Intent)
		assert.Empty(t, plan.CourseCodes)
	})

	t.Run("Empty output degrades to general", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan("")
		assert.Equal(t, IntentGeneral, plan.Intent)
		assert.Empty(t, plan.CourseCodes)
	})

	t.Run("Unknown intent coerced to general", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan(`{"intent": "enrollment", "course_codes": []}`)
		assert.Equal(t, IntentGeneral, plan.Intent)
	})

	t.Run("Non-list course_codes rejected without failing the plan", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan(`{"intent": "course_info", "course_codes": "CS210"}`)
		assert.Equal(t, IntentCourseInfo, plan.Intent)
		assert.Empty(t, plan.CourseCodes)
	})

	t.Run("Non-string reasoning keeps intent and codes", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan(`{"intent": "prereq_query", "course_codes": ["CS210"], "reasoning": 123}`)
		assert.Equal(t, IntentPrereqQuery, plan.Intent)
		assert.Equal(t, []string{"CS 210"}, plan.CourseCodes)
		assert.Equal(t, "123", plan.Rationale)
	})

	t.Run("Non-string intent keeps codes", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan(`{"intent": 7, "course_codes": ["CS210"]}`)
		assert.Equal(t, IntentGeneral, plan.Intent)
		assert.Equal(t, []string{"CS 210"}, plan.CourseCodes)
	})

	t.Run("Null reasoning coerced to empty", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan(`{"intent": "smalltalk", "course_codes": [], "reasoning": null}`)
		assert.Equal(t, IntentSmalltalk, plan.Intent)
		assert.Empty(t, plan.Rationale)
	})

	t.Run("Unnormalizable codes kept verbatim", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan(`{"intent": "course_info", "course_codes": ["PHYS 901"]}`)
		assert.Equal(t, []string{"PHYS 901"}, plan.CourseCodes)
	})

	t.Run("Codes deduplicated preserving order", func(t *testing.T) {
		t.Parallel()
		plan := ParsePlan(`{"intent": "prereq_query", "course_codes": ["cs210", "CS 210", "CS310", "cs-210"]}`)
		assert.Equal(t, []string{"CS 210", "CS 310"}, plan.CourseCodes)
	})

	t.Run("Raw output preserved", func(t *testing.T) {
		t.Parallel()
		raw := `{"intent": "smalltalk", "course_codes": []}`
		assert.Equal(t, raw, ParsePlan(raw).Raw)
	})
}

type stubGenerator struct {
	output string
	err    error
	calls  int
}

func (s *stubGenerator) Complete(_ context.Context, _ string, _ []string) (string, error) {
	s.calls++
	return s.output, s.err
}

func TestPlannerPlan(t *testing.T) {
	t.Parallel()

	t.Run("Successful classification", func(t *testing.T) {
		t.Parallel()
		gen := &stubGenerator{output: `{"intent": "next_course_query", "course_codes": ["CS110"]}`}
		plan, err := New(gen, nil).Plan(context.Background(), "What can I take after CS110?")
		require.NoError(t, err)
		assert.Equal(t, IntentNextCourse, plan.Intent)
		assert.Equal(t, []string{"CS 110"}, plan.CourseCodes)
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("Generation failure returns general plan and the error", func(t *testing.T) {
		t.Parallel()
		genErr := errors.New("provider down")
		gen := &stubGenerator{err: genErr}
		plan, err := New(gen, nil).Plan(context.Background(), "Anything")
		require.ErrorIs(t, err, genErr)
		assert.Equal(t, IntentGeneral, plan.Intent)
		assert.Empty(t, plan.CourseCodes)
	})
}

func TestQueryPlanHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, QueryPlan{Intent: IntentPrereqQuery}.NeedsGraph())
	assert.True(t, QueryPlan{Intent: IntentCourseInfo}.NeedsGraph())
	assert.False(t, QueryPlan{Intent: IntentAdvising}.NeedsGraph())
	assert.False(t, QueryPlan{Intent: IntentSmalltalk}.NeedsGraph())

	assert.Equal(t, "CS 210", QueryPlan{CourseCodes: []string{"CS 210", "CS 310"}}.FirstCode())
	assert.Empty(t, QueryPlan{}.FirstCode())
}
