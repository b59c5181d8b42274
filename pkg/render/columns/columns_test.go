package columns

import (
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/columnview/pkg/dag"
	"github.com/matzehuels/columnview/pkg/graph"
)

func idName(id int) string { return strconv.Itoa(id) }

func TestMeasure(t *testing.T) {
	opts := Options{MinBoxWidth: 50, BoxHeight: 20, ColumnGap: 30, RowGap: 10, Margin: 5}
	g := Measure(dag.Layering{{1}, {2, 3}}, idName, opts)

	tests := []struct {
		id         int
		x, y, w, h float64
	}{
		{1, 5, 5, 50, 20},
		{2, 85, 5, 50, 20},
		{3, 85, 35, 50, 20},
	}
	for _, tt := range tests {
		r, ok := g.Rects[tt.id]
		if !ok {
			t.Fatalf("node %d not measured", tt.id)
		}
		if r.X != tt.x || r.Y != tt.y || r.Width != tt.w || r.Height != tt.h {
			t.Errorf("Rect(%d) = %+v, want {%v %v %v %v}", tt.id, r, tt.x, tt.y, tt.w, tt.h)
		}
	}
	if g.Width != 140 {
		t.Errorf("Width = %v, want 140", g.Width)
	}
	if g.Height != 60 {
		t.Errorf("Height = %v, want 60", g.Height)
	}
}

func TestMeasure_WideLabelWidensColumn(t *testing.T) {
	names := map[int]string{1: "a", 2: "a-very-long-package-name"}
	g := Measure(dag.Layering{{1}, {2}}, func(id int) string { return names[id] }, Options{MinBoxWidth: 10})

	if g.Rects[2].Width <= g.Rects[1].Width {
		t.Errorf("long label width %v should exceed short label width %v", g.Rects[2].Width, g.Rects[1].Width)
	}
	if want := labelWidth(names[2]); g.Rects[2].Width != want {
		t.Errorf("Width = %v, want %v", g.Rects[2].Width, want)
	}
}

func TestMeasure_Empty(t *testing.T) {
	g := Measure(nil, idName, Options{})
	if len(g.Rects) != 0 {
		t.Errorf("Rects = %v, want none", g.Rects)
	}
	if want := 2 * DefaultOptions().Margin; g.Width != want || g.Height != want {
		t.Errorf("size = %vx%v, want %vx%v", g.Width, g.Height, want, want)
	}
}

func TestRenderSVG(t *testing.T) {
	x, err := dag.Build(
		[]dag.Node{{ID: 1, Name: "app"}, {ID: 2, Name: "<lib>"}, {ID: 3, Name: "util"}},
		[]dag.Edge{{From: 1, To: 2}, {From: 1, To: 3}},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	v := graph.NewView(1, x, dag.Layering{{1}, {2, 3}}, nil)

	svg := string(RenderSVG(v, x.Edges(), Options{Highlight: []int{3}}))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("RenderSVG() is not a complete SVG document")
	}
	if got := strings.Count(svg, `<line class="edge"`); got != 2 {
		t.Errorf("edge count = %d, want 2", got)
	}
	if got := strings.Count(svg, `<rect `); got != 3 {
		t.Errorf("box count = %d, want 3", got)
	}
	if !strings.Contains(svg, "&lt;lib&gt;") {
		t.Error("RenderSVG() did not escape node names")
	}
	if !strings.Contains(svg, `class="node highlight" id="node-3"`) {
		t.Error("RenderSVG() did not highlight node 3")
	}
}

func TestRenderSVG_Empty(t *testing.T) {
	x, _ := dag.Build(nil, nil)
	svg := string(RenderSVG(graph.NewView(0, x, nil, nil), nil, Options{}))
	if strings.Contains(svg, "<line") || strings.Contains(svg, "<rect") {
		t.Errorf("empty view should paint nothing: %s", svg)
	}
}
