// Package pkg provides the core libraries for columnview.
//
// # Overview
//
// Columnview draws a directed acyclic graph as vertical columns of boxes
// joined by connector lines. Every node sits in the column after its deepest
// parent, the user can swap two nodes within a column, and the connectors
// are re-projected from the measured boxes. The pkg directory is organized
// into four areas:
//
//  1. Domain logic: [dag], [dag/transform], [reorder] and [render/lines]
//  2. Serialization: [graph]
//  3. Infrastructure: [store], [cache], [client], [httputil], [metrics]
//  4. Orchestration: [pipeline] and [session]
//
// # Architecture
//
// The typical data flow:
//
//	Store / HTTP API
//	       ↓
//	  [graph] (decode, validate)
//	       ↓
//	  [dag] Index → [dag/transform] Layering
//	       ↓
//	  [reorder] Swap (user drag)
//	       ↓
//	  [render/lines] Project → SVG/DOT/PNG/PDF/JSON
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/columnview/pkg/dag"
//	    "github.com/matzehuels/columnview/pkg/dag/transform"
//	)
//
//	idx, _ := dag.Build(nodes, edges)
//	layering, _ := transform.Layer(idx)
//	fmt.Println(layering) // [[1] [2 3] [4]]
//
// # Main Packages
//
// [dag] - The immutable graph index and the [dag.Layering] type with its
// invariants and crossing counts.
//
// [dag/transform] - Breadth-first frontier layering. Cycles fail with
// [transform.ErrCycleDetected].
//
// [reorder] - Drag gesture state and the same-column swap.
//
// [render/lines] - Projects connector segments from measured box rectangles.
//
// [render/columns] and [render/nodelink] - SVG column grid and Graphviz
// output; [render] converts SVG to PNG and PDF.
//
// [store] - Graph sources: memory, directory, Redis and MongoDB.
//
// [cache] - Layering cache backends (file, Redis, null) keyed by graph hash.
//
// [pipeline] - Layout and render orchestration shared by the CLI and server.
//
// [session] - One selected graph and its drag state, as used by the
// interactive board.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/dag/...         # Specific package
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/dag
// [dag.Layering]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/dag#Layering
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/dag/transform
// [transform.ErrCycleDetected]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/dag/transform#ErrCycleDetected
// [reorder]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/reorder
// [render]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/render
// [render/lines]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/render/lines
// [render/columns]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/render/columns
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/render/nodelink
// [graph]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/graph
// [store]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/cache
// [client]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/client
// [httputil]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/httputil
// [metrics]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/metrics
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/pipeline
// [session]: https://pkg.go.dev/github.com/matzehuels/columnview/pkg/session
package pkg
