// Package graph provides the wire format for graphs and computed views.
//
// This package defines the JSON shape exchanged with graph sources (the HTTP
// API, graph files on disk, Redis and MongoDB) and the shape of the layered
// view returned to clients.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph], [View]: Serialization types (this package)
//   - pkg/dag.Index: Validated in-memory graph
//   - pkg/dag.Layering: Column assignment
//
// Use [ToIndex] and [FromIndex] to convert between them.
//
// # Graph Serialization
//
// Graphs use a node-link format with integer identifiers:
//
//	{
//	  "nodes": [{"id": 1, "name": "app"}, {"id": 2, "name": "lib"}],
//	  "edges": [{"fromId": 1, "toId": 2}]
//	}
//
// The same fields are accepted from YAML files (.yaml, .yml).
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("deps.yaml")   // File → Graph
//	idx, _ := graph.ToIndex(g)                 // Graph → dag.Index
//	data, _ := graph.MarshalGraph(g)           // Graph → []byte
//
// # Views
//
// A [View] is the layered rendering of one graph: the columns, the display
// name of every node and, when a host has measured the nodes, the connector
// segments.
package graph
