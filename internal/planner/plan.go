package planner

// This file contains plan parsing, validation, and the planner itself.

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/coursecompass/advisor-go/internal/coursecode"
	"github.com/coursecompass/advisor-go/internal/sliceutil"
)

// QueryPlan is the validated planning result for one question.
type QueryPlan struct {
	// Intent is always a member of the allowed set.
	Intent Intent
	// CourseCodes are the mentioned codes, canonicalized where possible.
	// Codes the normalizer cannot parse are kept as the model wrote them.
	CourseCodes []string
	// Rationale is the model's stated reason for the classification.
	Rationale string
	// Raw is the unmodified model output, kept for diagnostics.
	Raw string
}

// NeedsGraph reports whether answering this plan requires a graph query.
func (p QueryPlan) NeedsGraph() bool {
	return p.Intent.NeedsCourseCode()
}

// FirstCode returns the first course code in the plan, or "".
func (p QueryPlan) FirstCode() string {
	if len(p.CourseCodes) == 0 {
		return ""
	}
	return p.CourseCodes[0]
}

// rawPlan mirrors the JSON shape the model is asked to produce. Every
// field is json.RawMessage so one mistyped value degrades that field
// alone instead of failing the whole object.
type rawPlan struct {
	Intent      json.RawMessage `json:"intent"`
	CourseCodes json.RawMessage `json:"course_codes"`
	Reasoning   json.RawMessage `json:"reasoning"`
}

// coerceString renders a JSON value as the string the prompt asked for.
// Non-string values keep their literal JSON text, null becomes "".
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}

// ParsePlan turns raw model output into a validated QueryPlan. It never
// fails: unparseable output degrades to the general intent with no codes.
func ParsePlan(raw string) QueryPlan {
	plan := QueryPlan{Intent: IntentGeneral, CourseCodes: []string{}, Raw: raw}

	extracted := ExtractJSONObject(raw)
	if extracted == "" {
		return plan
	}

	var decoded rawPlan
	if err := json.Unmarshal([]byte(extracted), &decoded); err != nil {
		return plan
	}

	plan.Intent = ParseIntent(coerceString(decoded.Intent))
	plan.Rationale = strings.TrimSpace(coerceString(decoded.Reasoning))
	plan.CourseCodes = normalizeCodes(decoded.CourseCodes)
	return plan
}

// normalizeCodes canonicalizes the model's course_codes list. Values the
// normalizer cannot parse are kept verbatim so downstream lookups can still
// report "course not found" with the student's own wording.
func normalizeCodes(raw json.RawMessage) []string {
	var listed []string
	if len(raw) == 0 || json.Unmarshal(raw, &listed) != nil {
		return []string{}
	}

	codes := make([]string, 0, len(listed))
	for _, c := range listed {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if normalized := coursecode.Normalize(c); normalized != "" {
			codes = append(codes, normalized)
		} else {
			codes = append(codes, c)
		}
	}

	return sliceutil.Deduplicate(codes, func(c string) string { return c })
}

// Generator is the completion capability the planner needs.
type Generator interface {
	Complete(ctx context.Context, prompt string, stop []string) (string, error)
}

// Planner classifies questions with an LLM and validates the result.
type Planner struct {
	generator Generator
	log       *slog.Logger
}

// New builds a planner over a generator.
func New(generator Generator, log *slog.Logger) *Planner {
	if log == nil {
		log = slog.Default()
	}
	return &Planner{
		generator: generator,
		log:       log.With(slog.String("component", "planner")),
	}
}

// Plan classifies a question. On generation failure it returns the general
// fallback plan together with the error, so callers can both log the
// failure and still answer something.
func (p *Planner) Plan(ctx context.Context, question string) (QueryPlan, error) {
	raw, err := p.generator.Complete(ctx, BuildPrompt(question), nil)
	if err != nil {
		p.log.WarnContext(ctx, "intent planning failed, defaulting to general",
			slog.String("error", err.Error()),
		)
		return QueryPlan{Intent: IntentGeneral, CourseCodes: []string{}}, err
	}

	plan := ParsePlan(raw)
	p.log.DebugContext(ctx, "question planned",
		slog.String("intent", string(plan.Intent)),
		slog.Int("codes", len(plan.CourseCodes)),
	)
	return plan, nil
}
