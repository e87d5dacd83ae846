package graph

// This file contains the course graph query operations.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domerrors "github.com/coursecompass/advisor-go/internal/errors"
	"github.com/coursecompass/advisor-go/internal/metrics"
	"github.com/coursecompass/advisor-go/internal/sliceutil"
)

const (
	// MaxTraversalDepth caps variable-length prerequisite traversals.
	MaxTraversalDepth = 5

	courseInfoQuery = `
MATCH (c:Course {code: $code})
RETURN c.code AS code, c.title AS title, c.credits AS credits,
       c.level AS level, c.description AS description`

	nextCoursesQuery = `
MATCH (next:Course)-[:REQUIRES]->(:PrerequisiteGroup)-[:HAS]->(c:Course {code: $code})
RETURN DISTINCT next.code AS code, next.title AS title
ORDER BY code`
)

// prereqQuery builds the prerequisite traversal for a bounded depth.
// Variable-length bounds cannot be Cypher parameters, so the validated
// depth is spliced into the pattern.
func prereqQuery(depth int) string {
	return fmt.Sprintf(`
MATCH (target:Course {code: $code})-[:REQUIRES]->(g:PrerequisiteGroup)-[:HAS*1..%d]->(p:Course)
RETURN DISTINCT p.code AS prereq_code, p.title AS prereq_title,
       p.description AS prereq_description,
       g.type AS group_type, g.recommended AS recommended
ORDER BY group_type, prereq_code`, depth)
}

func catalogQuery() string {
	return `
MATCH (c:Course)
OPTIONAL MATCH (c)-[:REQUIRES]->(:PrerequisiteGroup)-[:HAS]->(p:Course)
RETURN c.code AS code, c.title AS title, c.credits AS credits,
       c.level AS level, c.description AS description,
       collect(DISTINCT p.code) AS prereq_codes
ORDER BY c.level, c.code
LIMIT $limit`
}

// Store executes the course graph operations over a Client.
type Store struct {
	client  *Client
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewStore wraps a connected client.
func NewStore(client *Client, log *slog.Logger, m *metrics.Metrics) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		client:  client,
		log:     log.With(slog.String("component", "graph.store")),
		metrics: m,
	}
}

// CourseInfo returns the course stored under the given canonical code.
// A course absent from the graph is ErrNotFound; the advising layer
// phrases "not found" itself.
func (s *Store) CourseInfo(ctx context.Context, code string) (*Course, error) {
	rows, err := s.run(ctx, "course_info", courseInfoQuery, map[string]any{"code": code})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domerrors.ErrNotFound
	}
	course, err := decodeCourse(rows[0])
	if err != nil {
		return nil, s.queryErr("course_info", err)
	}
	return &course, nil
}

// DirectPrerequisites returns the courses one REQUIRES→HAS hop away,
// ordered by group type then code.
func (s *Store) DirectPrerequisites(ctx context.Context, code string) ([]Prerequisite, error) {
	return s.prerequisites(ctx, "direct_prerequisites", code, 1)
}

// FullPrerequisites returns the transitive prerequisite closure, traversing
// HAS chains up to MaxTraversalDepth hops.
func (s *Store) FullPrerequisites(ctx context.Context, code string) ([]Prerequisite, error) {
	return s.prerequisites(ctx, "full_prerequisites", code, MaxTraversalDepth)
}

func (s *Store) prerequisites(ctx context.Context, op, code string, depth int) ([]Prerequisite, error) {
	if depth < 1 {
		depth = 1
	}
	if depth > MaxTraversalDepth {
		depth = MaxTraversalDepth
	}

	rows, err := s.run(ctx, op, prereqQuery(depth), map[string]any{"code": code})
	if err != nil {
		return nil, err
	}

	prereqs := make([]Prerequisite, 0, len(rows))
	for _, row := range rows {
		p, err := decodePrerequisite(row)
		if err != nil {
			return nil, s.queryErr(op, err)
		}
		prereqs = append(prereqs, p)
	}

	// Deep traversals can reach the same course through several groups;
	// the first (group type, code) occurrence wins.
	return sliceutil.Deduplicate(prereqs, func(p Prerequisite) string {
		return p.Code
	}), nil
}

// NextCourses returns the courses that list the given course as a direct
// prerequisite, ordered by code.
func (s *Store) NextCourses(ctx context.Context, code string) ([]CourseRef, error) {
	rows, err := s.run(ctx, "next_courses", nextCoursesQuery, map[string]any{"code": code})
	if err != nil {
		return nil, err
	}

	refs := make([]CourseRef, 0, len(rows))
	for _, row := range rows {
		ref, err := decodeCourseRef(row)
		if err != nil {
			return nil, s.queryErr("next_courses", err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Catalog returns up to limit courses with their direct prerequisite codes,
// ordered by level then code.
func (s *Store) Catalog(ctx context.Context, limit int) ([]CatalogEntry, error) {
	if limit <= 0 {
		limit = DefaultCatalogLimit
	}

	rows, err := s.run(ctx, "catalog", catalogQuery(), map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}

	entries := make([]CatalogEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := decodeCatalogEntry(row)
		if err != nil {
			return nil, s.queryErr("catalog", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Store) run(ctx context.Context, op, query string, params map[string]any) ([]map[string]any, error) {
	start := time.Now()
	rows, err := s.client.read(ctx, query, params)
	duration := time.Since(start)

	if err != nil {
		s.metrics.RecordGraphQuery(op, "error", duration)
		s.log.WarnContext(ctx, "graph query failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		return nil, &QueryError{Kind: classifyQueryErr(ctx, err), Operation: op, Err: err}
	}

	s.metrics.RecordGraphQuery(op, "success", duration)
	return rows, nil
}

func (s *Store) queryErr(op string, err error) error {
	return &QueryError{Kind: KindQuery, Operation: op, Err: err}
}

func classifyQueryErr(ctx context.Context, err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return KindTimeout
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"connection", "routing", "unable to retrieve", "refused", "no reachable", "pool closed"} {
		if strings.Contains(msg, marker) {
			return KindUnavailable
		}
	}
	return KindQuery
}
