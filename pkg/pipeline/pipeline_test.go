package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/columnview/pkg/cache"
	"github.com/matzehuels/columnview/pkg/dag"
	"github.com/matzehuels/columnview/pkg/dag/transform"
	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func diamond() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{{ID: 1, Name: "root"}, {ID: 2, Name: "left"}, {ID: 3, Name: "right"}, {ID: 4, Name: "sink"}},
		Edges: []graph.Edge{{From: 1, To: 2}, {From: 1, To: 3}, {From: 2, To: 4}, {From: 3, To: 4}},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"columns", false},
		{"graphviz", false},
		{"dot", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"svg", true},
		{"DOT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestContentTypesCoverFormats(t *testing.T) {
	for f := range ValidFormats {
		if ContentTypes[f] == "" {
			t.Errorf("no content type for format %q", f)
		}
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) left nil fields: %+v", r)
	}
}

func TestLayout(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Layout(context.Background(), diamond())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	if want := (dag.Layering{{1}, {2, 3}, {4}}); !res.Layering.Equal(want) {
		t.Errorf("Layering = %v, want %v", res.Layering, want)
	}
	if res.Stats.NodeCount != 4 || res.Stats.EdgeCount != 4 || res.Stats.Columns != 3 || res.Stats.Crossings != 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.GraphHash) != 64 {
		t.Errorf("GraphHash = %q, want 64 hex chars", res.GraphHash)
	}
	if res.CacheHit {
		t.Error("CacheHit = true with NullCache")
	}
}

func TestLayout_Errors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	tests := []struct {
		name     string
		g        graph.Graph
		code     cverr.Code
		sentinel error
	}{
		{
			name:     "UnknownNode",
			g:        graph.Graph{Nodes: []graph.Node{{ID: 1}}, Edges: []graph.Edge{{From: 1, To: 2}}},
			code:     cverr.ErrCodeInvalidGraph,
			sentinel: dag.ErrInvalidGraph,
		},
		{
			name: "Cycle",
			g: graph.Graph{
				Nodes: []graph.Node{{ID: 1}, {ID: 2}, {ID: 3}},
				Edges: []graph.Edge{{From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 2}},
			},
			code:     cverr.ErrCodeCycleDetected,
			sentinel: transform.ErrCycleDetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Layout(ctx, tt.g)
			if !cverr.Is(err, tt.code) {
				t.Errorf("Layout() code = %v, want %v", cverr.GetCode(err), tt.code)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Layout() error = %v, want wrapping %v", err, tt.sentinel)
			}
			if got := cverr.UserMessage(err); got != cverr.MsgCannotDisplay {
				t.Errorf("UserMessage() = %q, want %q", got, cverr.MsgCannotDisplay)
			}
		})
	}
}

func TestLayout_CacheHit(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()

	first, err := r.Layout(ctx, diamond())
	if err != nil {
		t.Fatalf("first Layout: %v", err)
	}
	second, err := r.Layout(ctx, diamond())
	if err != nil {
		t.Fatalf("second Layout: %v", err)
	}

	if first.CacheHit || !second.CacheHit {
		t.Errorf("CacheHit = %v then %v, want false then true", first.CacheHit, second.CacheHit)
	}
	if !second.Layering.Equal(first.Layering) {
		t.Errorf("cached layering %v != computed %v", second.Layering, first.Layering)
	}
}

func TestLayout_IgnoresInvalidCacheEntry(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()

	res, err := r.Layout(ctx, diamond())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if err := c.Set(ctx, r.Keyer.LayeringKey(res.GraphHash), []byte(`[[4],[1]]`), 0); err != nil {
		t.Fatal(err)
	}

	again, err := r.Layout(ctx, diamond())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if again.CacheHit {
		t.Error("invalid cached layering was used")
	}
	if !again.Layering.Equal(res.Layering) {
		t.Errorf("Layering = %v, want %v", again.Layering, res.Layering)
	}
}

func TestRender(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	res, err := r.Layout(ctx, diamond())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	tests := []struct {
		format string
		want   string
	}{
		{FormatColumns, "<svg"},
		{FormatDOT, "rankdir=LR"},
		{FormatJSON, `"graph_id": 9`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := r.Render(ctx, 9, res, tt.format)
			if err != nil {
				t.Fatalf("Render(%s): %v", tt.format, err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("Render(%s) missing %q:\n%.200s", tt.format, tt.want, data)
			}
		})
	}

	if _, err := r.Render(ctx, 9, res, "bmp"); !cverr.Is(err, cverr.ErrCodeInvalidInput) {
		t.Errorf("Render(bmp) error = %v, want INVALID_INPUT", err)
	}
}

func TestView(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Layout(context.Background(), diamond())
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	v := View(9, res)
	if v.GraphID != 9 || len(v.Columns) != 3 {
		t.Errorf("View = %+v, want graph 9 with 3 columns", v)
	}
	if len(v.Segments) != res.Stats.EdgeCount {
		t.Errorf("len(Segments) = %d, want %d", len(v.Segments), res.Stats.EdgeCount)
	}
	if v.Segments[0].X1 <= 0 {
		t.Errorf("first segment starts at x=%v, want right of the root box", v.Segments[0].X1)
	}
}
