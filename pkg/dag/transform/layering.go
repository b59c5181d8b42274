package transform

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matzehuels/columnview/pkg/dag"
)

// ErrCycleDetected is returned by [Layer] when the graph is not a DAG, or when
// some node cannot be reached from any zero-weight root.
var ErrCycleDetected = errors.New("cycle detected")

// Layer assigns every node of the index to a column by breadth-first leveling
// from the roots.
//
// # Algorithm
//
//  1. Column 0 holds every node of weight 0, in input order.
//  2. The next frontier is the union of the children of every node in the
//     current frontier, in first-encounter order. A node with two or more
//     children emits them sorted ascending by their weight; the sort is
//     stable, so equal weights keep edge order. Nodes with fewer prerequisites
//     drift to the top of their column.
//  3. Expansion stops at the first empty frontier.
//  4. A node reached on several frontiers is placed in the deepest one. The
//     column count therefore equals the longest root-to-sink path in nodes,
//     and every edge points to a strictly later column.
//
// The weight used in step 2 is the in-degree computed once over the whole
// graph by [dag.Build]. It is a static tie-break, not the residual in-degree
// of Kahn's algorithm, and must stay that way: a residual count changes the
// resulting order.
//
// # Cycles
//
// Layer fails with an error wrapping [ErrCycleDetected] if there are nodes but
// no roots, if a frontier is still non-empty after as many levels as there are
// nodes (a reachable cycle), or if a node is never reached. A partial layering
// is never returned. The error message names one offending cycle when
// [FindCycle] finds it.
//
// An empty graph yields an empty layering and no error.
func Layer(x *dag.Index) (dag.Layering, error) {
	if x.NodeCount() == 0 {
		return dag.Layering{}, nil
	}

	frontier := x.Sources()
	if len(frontier) == 0 {
		return nil, cycleError(x, "no root nodes")
	}

	var frontiers [][]int
	deepest := make(map[int]int, x.NodeCount())
	for len(frontier) > 0 {
		if len(frontiers) >= x.NodeCount() {
			return nil, cycleError(x, "leveling does not terminate")
		}
		level := len(frontiers)
		for _, id := range frontier {
			deepest[id] = level
		}
		frontiers = append(frontiers, frontier)
		frontier = nextFrontier(x, frontier)
	}

	if len(deepest) != x.NodeCount() {
		return nil, cycleError(x, fmt.Sprintf("%d of %d nodes unreachable from a root", x.NodeCount()-len(deepest), x.NodeCount()))
	}

	layering := make(dag.Layering, len(frontiers))
	for level, ids := range frontiers {
		col := make([]int, 0, len(ids))
		for _, id := range ids {
			if deepest[id] == level {
				col = append(col, id)
			}
		}
		layering[level] = col
	}
	return layering, nil
}

// nextFrontier returns the de-duplicated children of the frontier in
// first-encounter order, each parent's children ordered by ascending weight.
func nextFrontier(x *dag.Index, frontier []int) []int {
	var next []int
	seen := make(map[int]bool)
	for _, id := range frontier {
		for _, child := range orderedChildren(x, id) {
			if !seen[child] {
				seen[child] = true
				next = append(next, child)
			}
		}
	}
	return next
}

func orderedChildren(x *dag.Index, id int) []int {
	children := x.Children(id)
	if len(children) < 2 {
		return children
	}
	sorted := slices.Clone(children)
	slices.SortStableFunc(sorted, func(a, b int) int {
		return x.Weight(a) - x.Weight(b)
	})
	return sorted
}

func cycleError(x *dag.Index, reason string) error {
	if cycle := FindCycle(x); len(cycle) > 0 {
		return fmt.Errorf("%w: %s (cycle %v)", ErrCycleDetected, reason, cycle)
	}
	return fmt.Errorf("%w: %s", ErrCycleDetected, reason)
}
