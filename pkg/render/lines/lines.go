// Package lines projects graph edges onto measured node rectangles.
//
// A host lays the columns of a [dag.Layering] out on screen, measures the
// rectangle of every node and hands the measurements to [Project]. The
// result is one [Segment] per edge, expressed relative to the top-left corner
// of the first node of the first column (the anchor), so the overlay can be
// drawn in the same coordinate space as the grid regardless of scrolling.
//
// Segments run from the right edge of the source node to the left edge of the
// target node. Both endpoints sit at the vertical centre of the target, which
// keeps edges into a node parallel:
//
//	x1 = from.Right - anchor.Left
//	y1 = from.Top   - anchor.Top + to.Height/2
//	x2 = to.Left    - anchor.Left
//	y2 = to.Top     - anchor.Top + to.Height/2
package lines

import "github.com/matzehuels/columnview/pkg/dag"

// Rect is the measured box of a rendered node.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Segment is a straight connector in anchor-relative coordinates.
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// RectSource looks up the measured rectangle of a node.
// The boolean is false while the node has not been measured.
type RectSource interface {
	Rect(id int) (Rect, bool)
}

// RectMap is a RectSource backed by a map.
type RectMap map[int]Rect

func (m RectMap) Rect(id int) (Rect, bool) {
	r, ok := m[id]
	return r, ok
}

// Project computes one segment per edge, in edge order.
//
// Edges with an unmeasured endpoint are skipped. If the layering is empty or
// the anchor has not been measured, Project returns nil.
func Project(l dag.Layering, edges []dag.Edge, rects RectSource) []Segment {
	first, ok := l.First()
	if !ok || rects == nil {
		return nil
	}
	anchor, ok := rects.Rect(first)
	if !ok {
		return nil
	}

	ax, ay := anchor.Left(), anchor.Top()
	segments := make([]Segment, 0, len(edges))
	for _, e := range edges {
		from, ok := rects.Rect(e.From)
		if !ok {
			continue
		}
		to, ok := rects.Rect(e.To)
		if !ok {
			continue
		}
		mid := to.Height / 2
		segments = append(segments, Segment{
			X1: from.Right() - ax,
			Y1: from.Top() - ay + mid,
			X2: to.Left() - ax,
			Y2: to.Top() - ay + mid,
		})
	}
	return segments
}
