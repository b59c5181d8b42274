package columns

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/matzehuels/columnview/pkg/dag"
	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/render/lines"
)

const fontFamily = "system-ui, -apple-system, sans-serif"

const columnCSS = `
    .node rect { fill: #ffffff; stroke: #334155; stroke-width: 1.5; }
    .node.highlight rect { fill: #fde68a; stroke-width: 3; }
    .node text { fill: #0f172a; }
    .edge { stroke: #64748b; stroke-width: 1.25; fill: none; marker-end: url(#arrow); }`

// RenderSVG paints a view as boxes in columns joined by connectors.
//
// Boxes are measured with [Measure]; connectors are projected from the
// measured boxes with [lines.Project] and drawn in the anchor's coordinate
// space. Segments already stored in the view are ignored.
func RenderSVG(v graph.View, edges []dag.Edge, opts Options) []byte {
	opts = opts.withDefaults()
	l := v.Layering()
	grid := Measure(l, v.Name, opts)
	segments := lines.Project(l, edges, grid.Rects)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		grid.Width, grid.Height, grid.Width, grid.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", columnCSS)
	buf.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#64748b"/></marker></defs>` + "\n")

	if first, ok := l.First(); ok {
		anchor := grid.Rects[first]
		fmt.Fprintf(&buf, "  <g class=\"edges\" transform=\"translate(%.1f %.1f)\">\n", anchor.Left(), anchor.Top())
		for _, s := range segments {
			fmt.Fprintf(&buf, "    <line class=\"edge\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", s.X1, s.Y1, s.X2, s.Y2)
		}
		buf.WriteString("  </g>\n")
	}

	for _, col := range l {
		for _, id := range col {
			renderNode(&buf, id, v.Name(id), grid.Rects[id], slices.Contains(opts.Highlight, id))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderNode(buf *bytes.Buffer, id int, name string, r lines.Rect, highlight bool) {
	class := "node"
	if highlight {
		class += " highlight"
	}
	fmt.Fprintf(buf, "  <g class=\"%s\" id=\"node-%d\">\n", class, id)
	fmt.Fprintf(buf, "    <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" rx=\"6\"/>\n", r.X, r.Y, r.Width, r.Height)
	fmt.Fprintf(buf, "    <text x=\"%.1f\" y=\"%.1f\" font-family=\"%s\" font-size=\"%.0f\" text-anchor=\"middle\" dominant-baseline=\"central\">%s</text>\n",
		r.X+r.Width/2, r.Y+r.Height/2, fontFamily, fontSize, escapeXML(name))
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
