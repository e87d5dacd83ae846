package advisor

// This file contains the tagged response types returned to the caller.
// A response is either plain text or a graph-visualization payload with a
// caption; the caller decides how to render each.

import (
	"fmt"

	"github.com/coursecompass/advisor-go/internal/graph"
)

// ResponseType tags the shape of a response.
type ResponseType string

const (
	// TypeText is a plain natural-language answer.
	TypeText ResponseType = "text"
	// TypeGraph is a prerequisite visualization with a caption.
	TypeGraph ResponseType = "graph"
)

// Response is the advisor's answer to one question.
type Response struct {
	Type  ResponseType  `json:"type"`
	Text  string        `json:"text,omitempty"`
	Graph *GraphPayload `json:"graph,omitempty"`
}

// TextResponse builds a plain-text response.
func TextResponse(text string) Response {
	return Response{Type: TypeText, Text: text}
}

// GraphResponse builds a graph-payload response.
func GraphResponse(payload *GraphPayload) Response {
	return Response{Type: TypeGraph, Graph: payload}
}

// GraphPayload describes a prerequisite graph for visualization.
// Node and edge identifiers are course codes; the factual content comes
// solely from graph queries, never from generation.
type GraphPayload struct {
	Title   string `json:"title"`
	Nodes   []Node `json:"nodes"`
	Edges   []Edge `json:"edges"`
	Caption string `json:"caption"`
}

// Node is one course in the visualization. Kind distinguishes the queried
// target course from its prerequisites.
type Node struct {
	ID          string            `json:"id"`
	Label       string            `json:"label"`
	Kind        string            `json:"kind"`
	GroupType   graph.GroupType   `json:"group_type,omitempty"`
	Recommended graph.Recommended `json:"recommended,omitempty"`
}

// Edge links a prerequisite to the course that requires it.
type Edge struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Target    string          `json:"target"`
	GroupType graph.GroupType `json:"group_type"`
}

const (
	// NodeKindTarget marks the course the student asked about.
	NodeKindTarget = "target"
	// NodeKindPrereq marks a prerequisite course.
	NodeKindPrereq = "prereq"
)

// BuildPrereqPayload assembles the visualization for a course and its
// prerequisites: one target node, one node per distinct prerequisite, and
// one prerequisite→target edge each, tagged with the group type.
func BuildPrereqPayload(target graph.Course, prereqs []graph.Prerequisite) *GraphPayload {
	nodes := []Node{{
		ID:    target.Code,
		Label: target.Code,
		Kind:  NodeKindTarget,
	}}
	seen := map[string]struct{}{target.Code: {}}

	edges := make([]Edge, 0, len(prereqs))
	for _, p := range prereqs {
		if _, dup := seen[p.Code]; !dup {
			seen[p.Code] = struct{}{}
			nodes = append(nodes, Node{
				ID:          p.Code,
				Label:       p.Code,
				Kind:        NodeKindPrereq,
				GroupType:   p.GroupType,
				Recommended: p.Recommended,
			})
		}
		edges = append(edges, Edge{
			ID:        fmt.Sprintf("%s->%s", p.Code, target.Code),
			Source:    p.Code,
			Target:    target.Code,
			GroupType: p.GroupType,
		})
	}

	return &GraphPayload{
		Title: fmt.Sprintf("Prerequisites for %s", target.Code),
		Nodes: nodes,
		Edges: edges,
	}
}
