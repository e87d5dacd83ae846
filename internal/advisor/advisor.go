package advisor

// This file contains the conversation orchestrator.

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domerrors "github.com/coursecompass/advisor-go/internal/errors"
	"github.com/coursecompass/advisor-go/internal/graph"
	"github.com/coursecompass/advisor-go/internal/metrics"
	"github.com/coursecompass/advisor-go/internal/planner"
)

// Generator is the completion capability the handlers need.
type Generator interface {
	Complete(ctx context.Context, prompt string, stop []string) (string, error)
}

// GraphStore is the slice of the graph layer the advisor consumes.
type GraphStore interface {
	CourseInfo(ctx context.Context, code string) (*graph.Course, error)
	DirectPrerequisites(ctx context.Context, code string) ([]graph.Prerequisite, error)
	FullPrerequisites(ctx context.Context, code string) ([]graph.Prerequisite, error)
	NextCourses(ctx context.Context, code string) ([]graph.CourseRef, error)
}

// CatalogSource produces the catalog digest used as conversational context.
type CatalogSource interface {
	Summary(ctx context.Context) (string, error)
}

// QueryPlanner classifies questions into query plans.
type QueryPlanner interface {
	Plan(ctx context.Context, question string) (planner.QueryPlan, error)
}

// LLMLimiter gates generation usage per session.
type LLMLimiter interface {
	Allow(key string) bool
}

// Advisor answers student questions: it plans each question, grounds graph
// intents in Neo4j facts, and synthesizes the reply.
type Advisor struct {
	planner   QueryPlanner
	store     GraphStore
	catalog   CatalogSource
	generator Generator
	limiter   LLMLimiter
	log       *slog.Logger
	metrics   *metrics.Metrics
	wrap      *domerrors.ErrorWrapper
}

// Options carries the advisor's collaborators. Limiter, Log, and Metrics
// are optional.
type Options struct {
	Planner   QueryPlanner
	Store     GraphStore
	Catalog   CatalogSource
	Generator Generator
	Limiter   LLMLimiter
	Log       *slog.Logger
	Metrics   *metrics.Metrics
}

// New builds an advisor.
func New(opts Options) *Advisor {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Advisor{
		planner:   opts.Planner,
		store:     opts.Store,
		catalog:   opts.Catalog,
		generator: opts.Generator,
		limiter:   opts.Limiter,
		log:       log.With(slog.String("component", "advisor")),
		metrics:   opts.Metrics,
		wrap:      domerrors.NewWrapper("advisor", "ask"),
	}
}

// Ask answers one question within a session. Per turn it appends the
// question to the log, plans, substitutes the session's remembered course
// code when the plan carries none, remembers the plan's first code, and
// dispatches by intent.
//
// Graph failures and degenerate generation output degrade to polite
// fallback text; only generation-engine unavailability and rate limiting
// surface as errors.
func (a *Advisor) Ask(ctx context.Context, session *Session, question string) (Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Response{}, a.wrap.Wrap(domerrors.ErrInvalidInput, emptyQuestionMsg)
	}

	if a.limiter != nil && !a.limiter.Allow(session.ID()) {
		return Response{}, a.wrap.Wrap(domerrors.ErrRateLimitExceeded, rateLimitedMsg)
	}

	start := time.Now()
	session.Append(RoleStudent, question)

	plan, planErr := a.planner.Plan(ctx, question)
	if planErr != nil && errors.Is(planErr, domerrors.ErrGenerationUnavailable) {
		a.metrics.RecordChatRequest(string(plan.Intent), "error", time.Since(start))
		return Response{}, a.wrap.Wrap(planErr, thinkingTroubleMsg)
	}

	code := plan.FirstCode()
	if code == "" {
		code = session.LastCode()
	} else {
		session.RememberCode(code)
	}

	a.log.InfoContext(ctx, "question planned",
		slog.String("session_id", session.ID()),
		slog.String("intent", string(plan.Intent)),
		slog.Any("course_codes", plan.CourseCodes),
		slog.String("rationale", plan.Rationale),
	)

	resp, err := a.dispatch(ctx, plan, code, question)
	if errors.Is(err, domerrors.ErrNoCourseCode) {
		a.metrics.RecordFallbackResponse(string(plan.Intent), reasonNoCode)
		resp, err = TextResponse(clarificationFor(plan.Intent)), nil
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordChatRequest(string(plan.Intent), status, time.Since(start))
	if err != nil {
		return Response{}, a.askError(err)
	}

	session.Append(RoleAdvisor, responseLogText(resp))
	return resp, nil
}

// askError converts dispatch failures into the error surface callers
// switch on: aborts and timeouts map to their sentinels, everything else
// carries a user-safe message.
func (a *Advisor) askError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return domerrors.ErrContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return a.wrap.Wrap(domerrors.ErrTimeout, timeoutMsg)
	default:
		return a.wrap.Wrap(err, thinkingTroubleMsg)
	}
}

func (a *Advisor) dispatch(ctx context.Context, plan planner.QueryPlan, code, question string) (Response, error) {
	switch plan.Intent {
	case planner.IntentSmalltalk:
		return a.handleSmalltalk(ctx, question)
	case planner.IntentAdvising:
		return a.handleAdvising(ctx, question)
	case planner.IntentPrereqQuery, planner.IntentAllPrerequisites:
		return a.handlePrereqs(ctx, plan.Intent, code)
	case planner.IntentNextCourse:
		return a.handleNextCourses(ctx, code, question)
	case planner.IntentCourseInfo:
		return a.handleCourseInfo(ctx, code, question)
	default:
		return a.handleGeneral(ctx, question)
	}
}

// responseLogText is what gets recorded in the conversation log for a
// response; graph payloads are represented by their caption.
func responseLogText(resp Response) string {
	if resp.Type == TypeGraph && resp.Graph != nil {
		return resp.Graph.Caption
	}
	return resp.Text
}
