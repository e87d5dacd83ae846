// Package graph provides read-only access to the course/prerequisite graph
// stored in Neo4j. All operations are parametrized Cypher reads; the layer
// never mutates the graph.
package graph

import (
	"fmt"
	"strings"

	domerrors "github.com/coursecompass/advisor-go/internal/errors"
)

// GroupType is the logical type of a prerequisite group.
type GroupType string

const (
	// GroupAND means every course in the group is required.
	GroupAND GroupType = "AND"
	// GroupOR means any one course in the group satisfies it.
	GroupOR GroupType = "OR"
	// GroupCustom covers groups with free-form requirement semantics.
	GroupCustom GroupType = "CUSTOM"
)

// ParseGroupType maps a raw graph value to a GroupType.
// Unknown or missing values collapse to GroupCustom, matching how the
// data was loaded.
func ParseGroupType(v any) GroupType {
	s, _ := v.(string)
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AND":
		return GroupAND
	case "OR":
		return GroupOR
	default:
		return GroupCustom
	}
}

// Recommended is the tri-state recommendation flag on a prerequisite group.
// The graph stores true, false, or null; null (and CUSTOM groups) mean the
// group is neither strictly required nor merely recommended. The third
// state is preserved rather than collapsed to false.
type Recommended string

const (
	// RecommendedYes marks a merely-recommended group.
	RecommendedYes Recommended = "recommended"
	// RecommendedNo marks a strictly required group.
	RecommendedNo Recommended = "required"
	// RecommendedUnspecified preserves the null/CUSTOM ambiguous state.
	RecommendedUnspecified Recommended = "unspecified"
)

// ParseRecommended maps a raw graph value to the tri-state flag.
func ParseRecommended(v any) Recommended {
	b, ok := v.(bool)
	if !ok {
		return RecommendedUnspecified
	}
	if b {
		return RecommendedYes
	}
	return RecommendedNo
}

// Course holds the facts stored on a Course node.
// Code is the canonical "DEPT NNN" identity.
type Course struct {
	Code        string
	Title       string
	Credits     int
	Level       int
	Description string
}

// Prerequisite is a course reached through a REQUIRES→HAS traversal,
// tagged with its originating group's type and recommendation flag.
type Prerequisite struct {
	Code        string
	Title       string
	Description string
	GroupType   GroupType
	Recommended Recommended
}

// CourseRef is a lightweight course reference (inverse-prerequisite results).
type CourseRef struct {
	Code  string
	Title string
}

// CatalogEntry is one row of the catalog digest: a course annotated with
// its direct prerequisite codes.
type CatalogEntry struct {
	Course
	PrereqCodes []string
}

// ErrorKind classifies graph query failures.
type ErrorKind string

const (
	// KindUnavailable indicates the graph could not be reached.
	KindUnavailable ErrorKind = "unavailable"
	// KindQuery indicates the query itself failed.
	KindQuery ErrorKind = "query"
	// KindTimeout indicates the query exceeded its deadline.
	KindTimeout ErrorKind = "timeout"
)

// QueryError is the failure side of every graph operation. Callers match
// on it (errors.As) instead of probing result records for error markers.
type QueryError struct {
	Kind      ErrorKind
	Operation string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("graph %s failed (%s): %v", e.Operation, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is maps failure kinds onto the shared sentinels, so callers can switch
// on errors.Is without inspecting Kind.
func (e *QueryError) Is(target error) bool {
	switch target {
	case domerrors.ErrGraphUnavailable:
		return e.Kind == KindUnavailable
	case domerrors.ErrTimeout:
		return e.Kind == KindTimeout
	default:
		return false
	}
}

// MissingFieldError indicates a query result lacked an expected field.
// This replaces silent key errors on dynamic records with a typed condition.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("result record missing field %q", e.Field)
}
