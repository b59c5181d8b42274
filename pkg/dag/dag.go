package dag

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidGraph is returned by [Build] when the node or edge lists do not
	// describe a well-formed graph: an edge references an unknown node, an edge
	// starts and ends at the same node, or a node ID is negative or repeated.
	ErrInvalidGraph = errors.New("invalid graph")
)

// Node is a vertex of a loaded graph. Nodes are immutable once loaded.
type Node struct {
	ID   int    // Unique, non-negative identifier
	Name string // Display name
}

// Edge is a directed dependency from one node to another.
type Edge struct {
	From int
	To   int
}

// Index is the read model derived from a graph's node and edge lists: for
// every node the outgoing targets, the incoming sources and the in-degree
// weight.
//
// An Index is never mutated after [Build] returns; a changed graph gets a new
// Index. It is therefore safe for concurrent readers.
type Index struct {
	nodes    []Node
	pos      map[int]int // nodeID -> position in nodes
	edges    []Edge
	outgoing map[int][]int
	incoming map[int][]int
}

// Build validates the node and edge lists and returns their index.
//
// Build fails with an error wrapping [ErrInvalidGraph] if a node ID is negative
// or duplicated, if an edge references a node that is not in nodes, or if an
// edge is a self-edge. Repeated edges between the same pair are kept once; the
// first occurrence fixes their position in child and parent lists.
//
// Build runs in O(N+E) time.
func Build(nodes []Node, edges []Edge) (*Index, error) {
	idx := &Index{
		nodes:    slices.Clone(nodes),
		pos:      make(map[int]int, len(nodes)),
		edges:    make([]Edge, 0, len(edges)),
		outgoing: make(map[int][]int, len(nodes)),
		incoming: make(map[int][]int, len(nodes)),
	}

	for i, n := range nodes {
		if n.ID < 0 {
			return nil, fmt.Errorf("%w: node ID %d is negative", ErrInvalidGraph, n.ID)
		}
		if _, dup := idx.pos[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node ID %d", ErrInvalidGraph, n.ID)
		}
		idx.pos[n.ID] = i
	}

	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if _, ok := idx.pos[e.From]; !ok {
			return nil, fmt.Errorf("%w: edge %d->%d references unknown node %d", ErrInvalidGraph, e.From, e.To, e.From)
		}
		if _, ok := idx.pos[e.To]; !ok {
			return nil, fmt.Errorf("%w: edge %d->%d references unknown node %d", ErrInvalidGraph, e.From, e.To, e.To)
		}
		if e.From == e.To {
			return nil, fmt.Errorf("%w: self-edge on node %d", ErrInvalidGraph, e.From)
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		idx.edges = append(idx.edges, e)
		idx.outgoing[e.From] = append(idx.outgoing[e.From], e.To)
		idx.incoming[e.To] = append(idx.incoming[e.To], e.From)
	}
	return idx, nil
}

// Nodes returns a copy of the nodes in input order.
func (x *Index) Nodes() []Node { return slices.Clone(x.nodes) }

// Edges returns a copy of the de-duplicated edges in input order.
func (x *Index) Edges() []Edge { return slices.Clone(x.edges) }

// NodeCount returns the number of nodes.
func (x *Index) NodeCount() int { return len(x.nodes) }

// EdgeCount returns the number of distinct edges.
func (x *Index) EdgeCount() int { return len(x.edges) }

// Node returns the node with the given ID and true, or the zero Node and
// false if the ID is unknown.
func (x *Index) Node(id int) (Node, bool) {
	i, ok := x.pos[id]
	if !ok {
		return Node{}, false
	}
	return x.nodes[i], true
}

// Has reports whether id names a node of the graph.
func (x *Index) Has(id int) bool {
	_, ok := x.pos[id]
	return ok
}

// Name returns the display name of the node, or "" if the ID is unknown.
func (x *Index) Name(id int) string {
	n, _ := x.Node(id)
	return n.Name
}

// Children returns the outgoing targets of a node in edge order.
// The returned slice must not be modified.
func (x *Index) Children(id int) []int { return x.outgoing[id] }

// Parents returns the incoming sources of a node in edge order.
// The returned slice must not be modified.
func (x *Index) Parents(id int) []int { return x.incoming[id] }

// Weight returns the in-degree of a node: the number of distinct edges that
// end at it. Unknown IDs have weight 0.
func (x *Index) Weight(id int) int { return len(x.incoming[id]) }

// Sources returns the IDs of nodes with weight 0 in input order.
func (x *Index) Sources() []int {
	var out []int
	for _, n := range x.nodes {
		if x.Weight(n.ID) == 0 {
			out = append(out, n.ID)
		}
	}
	return out
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice.
func PosMap(ids []int) map[int]int {
	m := make(map[int]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
