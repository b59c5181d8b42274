package dag

import "slices"

// CountCrossings returns the total number of edge crossings between each pair
// of adjacent columns of the layering. Edges that skip one or more columns
// are not counted; they are drawn as straight lines over the intermediate
// columns and their crossings depend on measured geometry.
//
// It runs in O(C × E log V) time where C is the number of columns.
func CountCrossings(x *Index, l Layering) int {
	crossings := 0
	for i := 0; i < len(l)-1; i++ {
		crossings += CountColumnCrossings(x, l[i], l[i+1])
	}
	return crossings
}

// CountColumnCrossings counts edge crossings between two adjacent columns using
// a Fenwick tree (binary indexed tree).
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// which is the number of inversions in the sequence of target positions when
// edges are sorted by source position.
func CountColumnCrossings(x *Index, left, right []int) int {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}

	rightPos := PosMap(right)

	type edge struct{ left, right int }
	edges := make([]edge, 0, len(left)*2)
	for i, id := range left {
		for _, child := range x.Children(id) {
			if pos, ok := rightPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.left != b.left {
			return a.left - b.left
		}
		return a.right - b.right
	})

	fenwick := make([]int, len(right)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.right + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for i := e.right + 1; i < len(fenwick); i += i & (-i) {
			fenwick[i]++
		}
	}
	return crossings
}
