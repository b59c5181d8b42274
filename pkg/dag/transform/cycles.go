package transform

import (
	"slices"

	"github.com/matzehuels/columnview/pkg/dag"
)

// FindCycle returns the node IDs of one directed cycle, starting and ending
// at the same node, or nil if the graph is acyclic. Nodes are visited in
// input order so the reported cycle is deterministic.
func FindCycle(x *dag.Index) []int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int]int, x.NodeCount())
	var stack []int
	var cycle []int

	var dfs func(id int) bool
	dfs = func(id int) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range x.Children(id) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[start:]), child)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, n := range x.Nodes() {
		if color[n.ID] == white && dfs(n.ID) {
			return cycle
		}
	}
	return nil
}

// Unplaced returns the IDs of index nodes that do not appear in the layering,
// in input order.
func Unplaced(x *dag.Index, l dag.Layering) []int {
	placed := l.Columns()
	var out []int
	for _, n := range x.Nodes() {
		if _, ok := placed[n.ID]; !ok {
			out = append(out, n.ID)
		}
	}
	return out
}
