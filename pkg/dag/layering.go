package dag

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNodeMissing is returned by [Layering.Validate] when a node of the
	// index does not appear in any column.
	ErrNodeMissing = errors.New("node missing from layering")

	// ErrNodeRepeated is returned by [Layering.Validate] when a node appears
	// more than once.
	ErrNodeRepeated = errors.New("node placed more than once")

	// ErrUnknownNode is returned by [Layering.Validate] when a column holds
	// an ID that is not in the index.
	ErrUnknownNode = errors.New("unknown node in layering")

	// ErrEdgeNotForward is returned by [Layering.Validate] when an edge does
	// not point from a lower column index to a strictly higher one.
	ErrEdgeNotForward = errors.New("edge does not point to a later column")

	// ErrRootsMisplaced is returned by [Layering.Validate] when column 0 is not
	// exactly the set of zero-weight nodes.
	ErrRootsMisplaced = errors.New("column 0 must hold exactly the roots")
)

// Layering assigns every node to one column. Columns are ordered left to
// right; the IDs inside a column are ordered top to bottom.
//
// A Layering is a plain value. Operations that change it return a new one.
type Layering [][]int

// Len returns the number of columns.
func (l Layering) Len() int { return len(l) }

// NodeCount returns the number of placed IDs across all columns.
func (l Layering) NodeCount() int {
	n := 0
	for _, col := range l {
		n += len(col)
	}
	return n
}

// Clone returns a deep copy.
func (l Layering) Clone() Layering {
	if l == nil {
		return nil
	}
	out := make(Layering, len(l))
	for i, col := range l {
		out[i] = slices.Clone(col)
	}
	return out
}

// Equal reports whether both layerings have the same columns in the same order.
func (l Layering) Equal(other Layering) bool {
	return slices.EqualFunc(l, other, func(a, b []int) bool { return slices.Equal(a, b) })
}

// ColumnOf returns the index of the first column containing id, or -1.
func (l Layering) ColumnOf(id int) int {
	for i, col := range l {
		if slices.Contains(col, id) {
			return i
		}
	}
	return -1
}

// IndexIn returns the position of id inside the given column, or -1 if the
// column does not exist or does not contain id.
func (l Layering) IndexIn(column, id int) int {
	if column < 0 || column >= len(l) {
		return -1
	}
	return slices.Index(l[column], id)
}

// Columns returns the column index of every placed ID.
func (l Layering) Columns() map[int]int {
	m := make(map[int]int, l.NodeCount())
	for i, col := range l {
		for _, id := range col {
			m[id] = i
		}
	}
	return m
}

// First returns the first node of the first column.
// The boolean is false for an empty layering.
func (l Layering) First() (int, bool) {
	if len(l) == 0 || len(l[0]) == 0 {
		return 0, false
	}
	return l[0][0], true
}

// Validate checks the layering against the index:
//
//  1. every node of the index is placed exactly once
//  2. every edge points from a column to a strictly later one
//  3. column 0 holds exactly the zero-weight nodes
//
// A layering produced by the layering engine satisfies all three. User swaps
// keep 1 and 2 but may break 3; use [Layering.ValidateStructure] for those.
func (l Layering) Validate(x *Index) error {
	if err := l.ValidateStructure(x); err != nil {
		return err
	}
	sources := x.Sources()
	var first []int
	if len(l) > 0 {
		first = l[0]
	}
	if len(first) != len(sources) {
		return fmt.Errorf("%w: %d in column 0, %d roots", ErrRootsMisplaced, len(first), len(sources))
	}
	for _, id := range first {
		if x.Weight(id) != 0 {
			return fmt.Errorf("%w: node %d has weight %d", ErrRootsMisplaced, id, x.Weight(id))
		}
	}
	return nil
}

// ValidateStructure checks totality, uniqueness and forward edges only.
func (l Layering) ValidateStructure(x *Index) error {
	cols := make(map[int]int, x.NodeCount())
	for i, col := range l {
		for _, id := range col {
			if !x.Has(id) {
				return fmt.Errorf("%w: %d in column %d", ErrUnknownNode, id, i)
			}
			if prev, dup := cols[id]; dup {
				return fmt.Errorf("%w: node %d in columns %d and %d", ErrNodeRepeated, id, prev, i)
			}
			cols[id] = i
		}
	}
	for _, n := range x.nodes {
		if _, ok := cols[n.ID]; !ok {
			return fmt.Errorf("%w: node %d", ErrNodeMissing, n.ID)
		}
	}
	for _, e := range x.edges {
		if cols[e.To] <= cols[e.From] {
			return fmt.Errorf("%w: %d (column %d) -> %d (column %d)", ErrEdgeNotForward, e.From, cols[e.From], e.To, cols[e.To])
		}
	}
	return nil
}

// LongestPath returns the number of nodes on the longest directed path of
// the graph, or 0 for an empty graph. It assumes the graph is acyclic and
// returns -1 if it is not.
func LongestPath(x *Index) int {
	depth := make(map[int]int, x.NodeCount())
	remaining := make(map[int]int, x.NodeCount())
	queue := make([]int, 0, x.NodeCount())
	for _, n := range x.nodes {
		remaining[n.ID] = x.Weight(n.ID)
		if remaining[n.ID] == 0 {
			queue = append(queue, n.ID)
			depth[n.ID] = 1
		}
	}

	longest, visited := 0, 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		visited++
		longest = max(longest, depth[curr])
		for _, child := range x.Children(curr) {
			depth[child] = max(depth[child], depth[curr]+1)
			remaining[child]--
			if remaining[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	if visited != x.NodeCount() {
		return -1
	}
	return longest
}
