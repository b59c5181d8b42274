package columns

import (
	"github.com/matzehuels/columnview/pkg/dag"
	"github.com/matzehuels/columnview/pkg/render/lines"
)

const (
	fontSize      = 14.0
	fontCharWidth = 0.6
	labelPadding  = 24.0
)

// Options controls box sizes and spacing. Zero fields take defaults.
type Options struct {
	MinBoxWidth float64
	BoxHeight   float64
	ColumnGap   float64
	RowGap      float64
	Margin      float64

	// Highlight marks nodes drawn with an accent fill.
	Highlight []int
}

// DefaultOptions returns the spacing used when Options fields are zero.
func DefaultOptions() Options {
	return Options{
		MinBoxWidth: 80,
		BoxHeight:   32,
		ColumnGap:   72,
		RowGap:      16,
		Margin:      20,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinBoxWidth <= 0 {
		o.MinBoxWidth = d.MinBoxWidth
	}
	if o.BoxHeight <= 0 {
		o.BoxHeight = d.BoxHeight
	}
	if o.ColumnGap <= 0 {
		o.ColumnGap = d.ColumnGap
	}
	if o.RowGap <= 0 {
		o.RowGap = d.RowGap
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	return o
}

// Grid is the measured placement of every node.
type Grid struct {
	Rects  lines.RectMap
	Width  float64
	Height float64
}

// Measure places the columns side by side, top-aligned, in layering order.
// A column is as wide as its longest label needs; name returns the label of
// a node.
func Measure(l dag.Layering, name func(int) string, opts Options) Grid {
	opts = opts.withDefaults()
	g := Grid{Rects: make(lines.RectMap, l.NodeCount())}

	x := opts.Margin
	tallest := 0.0
	for i, col := range l {
		w := columnWidth(col, name, opts.MinBoxWidth)
		y := opts.Margin
		for _, id := range col {
			g.Rects[id] = lines.Rect{X: x, Y: y, Width: w, Height: opts.BoxHeight}
			y += opts.BoxHeight + opts.RowGap
		}
		if len(col) > 0 {
			tallest = max(tallest, y-opts.RowGap)
		}
		x += w
		if i < len(l)-1 {
			x += opts.ColumnGap
		}
	}

	g.Width = x + opts.Margin
	g.Height = max(tallest, opts.Margin) + opts.Margin
	return g
}

func columnWidth(col []int, name func(int) string, minWidth float64) float64 {
	w := minWidth
	for _, id := range col {
		w = max(w, labelWidth(name(id)))
	}
	return w
}

func labelWidth(s string) float64 {
	return float64(len([]rune(s)))*fontSize*fontCharWidth + labelPadding
}
