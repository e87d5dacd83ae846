package advisor

// This file contains the per-intent response handlers. Graph-grounded
// handlers always have a deterministic textual fallback, so a failing
// generation engine degrades phrasing, never facts.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domerrors "github.com/coursecompass/advisor-go/internal/errors"
	"github.com/coursecompass/advisor-go/internal/graph"
	"github.com/coursecompass/advisor-go/internal/planner"
	"github.com/coursecompass/advisor-go/internal/stringutil"
)

const (
	// minResponseWords is the threshold below which generated text is
	// treated as degenerate and replaced by the templated fallback.
	minResponseWords = 4

	clarifyCourseMsg     = "Could you tell me which course you're referring to?"
	clarifyCourseInfoMsg = "Could you specify which course you'd like to know more about?"
	catalogUnavailable   = "(course catalog unavailable)"
	graphTroubleMsg      = "I'm having trouble reaching the course catalog right now. Please try again in a moment."
	thinkingTroubleMsg   = "I'm having trouble thinking right now. Please try again shortly."
	timeoutMsg           = "That took longer than expected. Please try asking again in a moment."
	emptyQuestionMsg     = "Please include a question in your message."
	rateLimitedMsg       = "You've asked quite a few questions in a row. Give me a few seconds to catch up."
)

// fallback reasons recorded in metrics.
const (
	reasonLLMError     = "llm_error"
	reasonShortOutput  = "short_output"
	reasonGraphError   = "graph_error"
	reasonGraphDown    = "graph_unavailable"
	reasonGraphTimeout = "graph_timeout"
	reasonNoCode       = "no_code"
)

// graphFailureReason distinguishes reachability failures from bad queries
// in the fallback metric.
func graphFailureReason(err error) string {
	switch {
	case errors.Is(err, domerrors.ErrGraphUnavailable):
		return reasonGraphDown
	case errors.Is(err, domerrors.ErrTimeout):
		return reasonGraphTimeout
	default:
		return reasonGraphError
	}
}

// clarificationFor phrases the follow-up question asked when a graph
// intent arrives without a resolvable course code.
func clarificationFor(intent planner.Intent) string {
	if intent == planner.IntentCourseInfo {
		return clarifyCourseInfoMsg
	}
	return clarifyCourseMsg
}

func (a *Advisor) handleSmalltalk(ctx context.Context, question string) (Response, error) {
	text, err := a.generator.Complete(ctx, smalltalkPrompt(question), nil)
	if err != nil {
		return Response{}, err
	}
	return TextResponse(strings.TrimSpace(text)), nil
}

func (a *Advisor) handleAdvising(ctx context.Context, question string) (Response, error) {
	text, err := a.generator.Complete(ctx, advisingPrompt(question, a.catalogDigest(ctx, planner.IntentAdvising)), nil)
	if err != nil {
		return Response{}, err
	}
	return TextResponse(strings.TrimSpace(text)), nil
}

func (a *Advisor) handleGeneral(ctx context.Context, question string) (Response, error) {
	text, err := a.generator.Complete(ctx, generalPrompt(question, a.catalogDigest(ctx, planner.IntentGeneral)), nil)
	if err != nil {
		return Response{}, err
	}
	return TextResponse(strings.TrimSpace(text)), nil
}

// catalogDigest fetches the catalog summary for conversational context.
// The digest is optional context, so a graph failure degrades to a
// placeholder instead of failing the question.
func (a *Advisor) catalogDigest(ctx context.Context, intent planner.Intent) string {
	digest, err := a.catalog.Summary(ctx)
	if err != nil {
		a.metrics.RecordFallbackResponse(string(intent), graphFailureReason(err))
		a.log.WarnContext(ctx, "catalog digest unavailable",
			slog.String("error", err.Error()),
		)
		return catalogUnavailable
	}
	if digest == "" {
		return "(no course data found in graph)"
	}
	return digest
}

// handlePrereqs answers prereq_query and all_prerequisites. The payload is
// built entirely from graph data; generation contributes only the caption.
func (a *Advisor) handlePrereqs(ctx context.Context, intent planner.Intent, code string) (Response, error) {
	if code == "" {
		return Response{}, domerrors.ErrNoCourseCode
	}

	var (
		prereqs []graph.Prerequisite
		err     error
	)
	if intent == planner.IntentPrereqQuery {
		prereqs, err = a.store.DirectPrerequisites(ctx, code)
	} else {
		prereqs, err = a.store.FullPrerequisites(ctx, code)
	}
	if err != nil {
		a.metrics.RecordFallbackResponse(string(intent), graphFailureReason(err))
		return TextResponse(graphTroubleMsg), nil
	}

	if len(prereqs) == 0 {
		return TextResponse(fmt.Sprintf("There are no prerequisites listed for %s.", code)), nil
	}

	target := graph.Course{Code: code}
	if info, err := a.store.CourseInfo(ctx, code); err == nil && info != nil {
		target = *info
	}

	payload := BuildPrereqPayload(target, prereqs)
	payload.Caption = a.prereqCaption(ctx, intent, target)
	return GraphResponse(payload), nil
}

func (a *Advisor) prereqCaption(ctx context.Context, intent planner.Intent, target graph.Course) string {
	caption, err := a.generator.Complete(ctx, prereqSummaryPrompt(target), nil)
	if err != nil {
		a.metrics.RecordFallbackResponse(string(intent), reasonLLMError)
	}
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return fmt.Sprintf("These prerequisites provide the essential background for %s.", target.Code)
	}
	return caption
}

func (a *Advisor) handleNextCourses(ctx context.Context, code, question string) (Response, error) {
	intent := string(planner.IntentNextCourse)
	if code == "" {
		return Response{}, domerrors.ErrNoCourseCode
	}

	refs, err := a.store.NextCourses(ctx, code)
	if err != nil {
		a.metrics.RecordFallbackResponse(intent, graphFailureReason(err))
		return TextResponse(fmt.Sprintf("I couldn't find any courses that require %s.", code)), nil
	}
	if len(refs) == 0 {
		return TextResponse(fmt.Sprintf("There are no courses that list %s as a prerequisite.", code)), nil
	}

	joined := joinCourseRefs(refs)
	fallback := fmt.Sprintf("After completing **%s**, you can take %s next.", code, joined)

	text, err := a.generator.Complete(ctx, nextCoursesPrompt(question, code, joined), nil)
	if err != nil {
		a.metrics.RecordFallbackResponse(intent, reasonLLMError)
		return TextResponse(fallback), nil
	}
	text = strings.TrimSpace(text)
	if stringutil.IsTooShort(text, minResponseWords) {
		a.metrics.RecordFallbackResponse(intent, reasonShortOutput)
		return TextResponse(fallback), nil
	}
	return TextResponse(text), nil
}

func (a *Advisor) handleCourseInfo(ctx context.Context, code, question string) (Response, error) {
	intent := string(planner.IntentCourseInfo)
	if code == "" {
		return Response{}, domerrors.ErrNoCourseCode
	}

	course, err := a.store.CourseInfo(ctx, code)
	if errors.Is(err, domerrors.ErrNotFound) {
		return TextResponse(fmt.Sprintf("I couldn't find detailed information for %s.", code)), nil
	}
	if err != nil {
		a.metrics.RecordFallbackResponse(intent, graphFailureReason(err))
		return TextResponse(fmt.Sprintf("I couldn't find detailed information for %s.", code)), nil
	}

	// Prerequisite and follow-up lookups enrich the fact sheet; failures
	// here just leave those lists empty.
	var prereqCodes []string
	if prereqs, err := a.store.FullPrerequisites(ctx, code); err == nil {
		for _, p := range prereqs {
			prereqCodes = append(prereqCodes, p.Code)
		}
	}
	var nextCodes []string
	if refs, err := a.store.NextCourses(ctx, code); err == nil {
		for _, r := range refs {
			nextCodes = append(nextCodes, r.Code)
		}
	}

	facts := courseFactSheet(*course, prereqCodes, nextCodes)
	fallback := fmt.Sprintf("**%s - %s** is a level %d course worth %d credits.\n\n%s\n\nPrerequisites: %s. Next recommended courses: %s.",
		course.Code, course.Title, course.Level, course.Credits, course.Description,
		codeListOrNone(prereqCodes), codeListOrNone(nextCodes))

	text, err := a.generator.Complete(ctx, courseInfoPrompt(question, facts), nil)
	if err != nil {
		a.metrics.RecordFallbackResponse(intent, reasonLLMError)
		return TextResponse(fallback), nil
	}
	text = strings.TrimSpace(text)
	if stringutil.IsTooShort(text, minResponseWords) {
		a.metrics.RecordFallbackResponse(intent, reasonShortOutput)
		return TextResponse(fallback), nil
	}
	return TextResponse(text), nil
}
