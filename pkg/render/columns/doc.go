// Package columns paints a layered graph as a grid of columns.
//
// It plays the part of a display host: [Measure] assigns every node a box
// (columns left to right in layering order, nodes top to bottom in column
// order), and [RenderSVG] projects the edges onto those boxes and writes an
// SVG document with the boxes, their names and the connectors.
//
//	v := graph.NewView(id, idx, layering, nil)
//	svg := columns.RenderSVG(v, idx.Edges(), columns.Options{})
package columns
