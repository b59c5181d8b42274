// Package nodelink renders layered graphs as Graphviz node-link diagrams.
//
// # Usage
//
// Convert an index and its layering to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(idx, layering, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The generated DOT lays columns out left to right (rankdir=LR). Each column
// is a rank=same subgraph, so Graphviz keeps the column assignment computed
// by the layering engine instead of ranking nodes itself. Nodes are named
// n<ID> and labelled with their display name.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PNG conversion requires librsvg (rsvg-convert).
package nodelink
