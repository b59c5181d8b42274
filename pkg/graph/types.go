package graph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/columnview/pkg/dag"
)

// =============================================================================
// Graph - Wire Format
// =============================================================================

// Graph is the canonical serialization format for graphs.
// Used for API responses, graph files, storage backends and cache keys.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges" bson:"edges"`
}

// Node is a graph node as sent over the wire.
type Node struct {
	ID   int    `json:"id" yaml:"id" bson:"id"`
	Name string `json:"name" yaml:"name" bson:"name"`
}

// Edge is a directed edge as sent over the wire.
type Edge struct {
	From int `json:"fromId" yaml:"fromId" bson:"fromId"`
	To   int `json:"toId" yaml:"toId" bson:"toId"`
}

// =============================================================================
// Index ↔ Graph Conversion
// =============================================================================

// ToIndex validates g and builds its adjacency index.
// Errors wrap [dag.ErrInvalidGraph].
func ToIndex(g Graph) (*dag.Index, error) {
	nodes := make([]dag.Node, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = dag.Node{ID: n.ID, Name: n.Name}
	}
	edges := make([]dag.Edge, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = dag.Edge{From: e.From, To: e.To}
	}

	idx, err := dag.Build(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	return idx, nil
}

// FromIndex converts an index back to its wire format.
// Node and edge order are preserved; duplicate edges are gone.
func FromIndex(idx *dag.Index) Graph {
	out := Graph{
		Nodes: make([]Node, 0, idx.NodeCount()),
		Edges: make([]Edge, 0, idx.EdgeCount()),
	}
	for _, n := range idx.Nodes() {
		out.Nodes = append(out.Nodes, Node{ID: n.ID, Name: n.Name})
	}
	for _, e := range idx.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To})
	}
	return out
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	return Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: slices.Clone(g.Edges),
	}
}
