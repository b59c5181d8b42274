package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/columnview/pkg/dag"
	"github.com/matzehuels/columnview/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node ID and column number to each label.
	// When false, only the node name is shown.
	Detailed bool

	// Highlight marks nodes drawn with a bold outline, e.g. the node being
	// dragged in an interactive view.
	Highlight []int
}

// ToDOT converts a layered graph to Graphviz DOT format.
//
// Columns become ranks laid out left to right (rankdir=LR), and every column
// is emitted as a rank=same subgraph listing its nodes in column order.
// Nodes missing from the layering are still declared but left unranked.
func ToDOT(x *dag.Index, l dag.Layering, opts Options) string {
	columns := l.Columns()
	highlight := make(map[int]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		highlight[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range x.Nodes() {
		col, placed := columns[n.ID]
		label := fmtLabel(n, col, placed, opts.Detailed)
		attrs := fmtAttrs(label, highlight[n.ID])
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, col := range l {
		names := make([]string, len(col))
		for j, id := range col {
			names[j] = nodeName(id)
		}
		fmt.Fprintf(&buf, "  subgraph col%d { rank=same; %s; }\n", i, strings.Join(names, "; "))
	}

	buf.WriteString("\n")
	for _, e := range x.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeName(e.From), nodeName(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id int) string { return "n" + strconv.Itoa(id) }

func fmtLabel(n dag.Node, column int, placed, detailed bool) string {
	name := n.Name
	if name == "" {
		name = strconv.Itoa(n.ID)
	}
	if !detailed {
		return name
	}
	if !placed {
		return fmt.Sprintf("%s\nid: %d", name, n.ID)
	}
	return fmt.Sprintf("%s\nid: %d\ncolumn: %d", name, n.ID, column)
}

func fmtAttrs(label string, highlighted bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if highlighted {
		attrs = append(attrs, "penwidth=3", "fillcolor=\"#fde68a\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg (rsvg-convert) on PATH.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
