// Package dag provides the read model of a loaded graph and the column
// layering built on top of it.
//
// # Overview
//
// Columnview draws a directed acyclic graph as vertical columns joined by
// lines. A graph arrives as a list of [Node] values and a list of [Edge]
// values. [Build] validates both lists and derives an [Index]: for every node
// the outgoing targets, the incoming sources and the in-degree weight.
//
//	idx, err := dag.Build(
//	    []dag.Node{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}},
//	    []dag.Edge{{From: 1, To: 2}, {From: 1, To: 3}},
//	)
//
// Build rejects edges that reference unknown nodes and self-edges with
// [ErrInvalidGraph]. Repeated edges are kept once.
//
// # Layering
//
// A [Layering] is the assignment of every node to exactly one column. The
// [transform] subpackage computes it. [Layering.Validate] checks the three
// invariants a computed layering holds:
//
//   - totality and uniqueness: every node is placed exactly once
//   - leveling: every edge points to a strictly later column
//   - roots: column 0 holds exactly the zero-weight nodes
//
// # Crossings
//
// [CountCrossings] counts crossings between adjacent columns with a Fenwick
// tree. Hosts use it to report how a user's reordering changed the drawing.
//
// # Concurrency
//
// An Index is immutable after Build and safe for concurrent readers. A
// Layering is a plain slice value; functions that change one return a copy.
//
// [transform]: github.com/matzehuels/columnview/pkg/dag/transform
package dag
