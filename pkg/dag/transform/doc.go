// Package transform computes the column layering of a graph index.
//
// # Layer Assignment
//
// [Layer] levels the graph breadth-first from its roots (the nodes of weight
// 0). Each following column is the ordered union of the children of the
// previous frontier. Siblings emitted by one parent are ordered by ascending
// in-degree weight, which pulls nodes with fewer prerequisites to the top of
// their column without a crossing-minimisation pass:
//
//	idx, _ := dag.Build(nodes, edges)
//	layering, err := transform.Layer(idx)
//	if errors.Is(err, transform.ErrCycleDetected) {
//	    // not a DAG
//	}
//
// A node reached on several frontiers is placed in the deepest one, so edges
// that skip levels still point to later columns.
//
// # Cycles
//
// Cycles are an error, not something to repair. [FindCycle] returns a witness
// cycle for diagnostics and [Unplaced] lists nodes a layering is missing.
package transform
