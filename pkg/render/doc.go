// Package render turns layered graphs into images.
//
// Two painters are provided:
//
//   - [columns]: the column grid itself. Every node becomes a box placed by
//     its column and position, connectors are projected with
//     [lines.Project] from the measured boxes, and the result is SVG.
//   - [nodelink]: a Graphviz diagram with one rank per column.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := columns.RenderSVG(view, columns.Options{})
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [columns]: github.com/matzehuels/columnview/pkg/render/columns
// [nodelink]: github.com/matzehuels/columnview/pkg/render/nodelink
// [lines.Project]: github.com/matzehuels/columnview/pkg/render/lines#Project
package render
