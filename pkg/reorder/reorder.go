// Package reorder implements the drag-and-drop gesture that lets a user swap
// two nodes of the same column.
//
// A gesture is begin-drag, any number of hovers and leaves, then a drop or an
// abort. The [Controller] tracks it as a small state machine and, on a valid
// drop, returns a new layering in which the dragged node and the drop target
// have traded places. The graph itself is never changed, and no node ever
// leaves its column: a swap is a value exchange inside one column.
//
// The controller knows nothing about rendering. Hosts feed it the three
// gesture events and the layering currently on screen:
//
//	var c reorder.Controller
//	c.Begin(layering, a)
//	c.Hover(b)
//	if next, ok := c.Drop(layering); ok {
//	    layering = next
//	}
//
// Drops with no target, onto the dragged node itself, or onto a node of a
// different column are ignored; they happen during ordinary use and are not
// errors.
package reorder

import (
	"slices"

	"github.com/matzehuels/columnview/pkg/dag"
)

// Phase is the state of a drag gesture.
type Phase int

const (
	// Idle means no gesture is in progress.
	Idle Phase = iota
	// Dragging means a node is being dragged but no drop target is recorded.
	Dragging
	// HoveringTarget means the pointer is over a candidate drop node.
	HoveringTarget
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case HoveringTarget:
		return "hovering"
	default:
		return "unknown"
	}
}

// DragState is the transient state of one gesture. The zero value is Idle.
type DragState struct {
	Phase   Phase
	Dragged int // node being dragged; valid unless Idle
	Target  int // hovered drop node; valid in HoveringTarget
	Column  int // column the drag started in; valid unless Idle
}

// Active reports whether a gesture is in progress.
func (s DragState) Active() bool { return s.Phase != Idle }

// HasTarget reports whether a drop target is recorded.
func (s DragState) HasTarget() bool { return s.Phase == HoveringTarget }

// Controller owns the drag state of one view. The zero value is ready to use
// and Idle. A Controller is not safe for concurrent use; gestures arrive from
// a single event loop.
type Controller struct {
	state DragState
}

// State returns a copy of the current drag state.
func (c *Controller) State() DragState { return c.state }

// Begin starts dragging node id. It records the column id occupies in l and
// moves to Dragging. If id is not placed in l the controller resets to Idle
// and Begin returns false. Beginning while a gesture is active restarts it.
func (c *Controller) Begin(l dag.Layering, id int) bool {
	col := l.ColumnOf(id)
	if col < 0 {
		c.Reset()
		return false
	}
	c.state = DragState{Phase: Dragging, Dragged: id, Column: col}
	return true
}

// Hover records id as the current drop target. Hovering a different node
// replaces the target. Hover is ignored while Idle.
func (c *Controller) Hover(id int) {
	if c.state.Phase == Idle {
		return
	}
	c.state.Phase = HoveringTarget
	c.state.Target = id
}

// Leave clears the drop target and returns to Dragging. It is ignored unless
// a target is recorded.
func (c *Controller) Leave() {
	if c.state.Phase != HoveringTarget {
		return
	}
	c.state.Phase = Dragging
	c.state.Target = 0
}

// Drop ends the gesture. If a target is recorded, differs from the dragged
// node and sits in the column the drag started in, Drop returns a copy of l
// with the two nodes swapped in that column and true. Otherwise it returns l
// unchanged and false. The controller is Idle afterwards in every case, and l
// itself is never modified.
func (c *Controller) Drop(l dag.Layering) (dag.Layering, bool) {
	s := c.state
	c.Reset()
	if s.Phase != HoveringTarget {
		return l, false
	}
	return Swap(l, s.Column, s.Dragged, s.Target)
}

// Abort discards the gesture without changing anything.
func (c *Controller) Abort() { c.Reset() }

// Reset returns the controller to Idle.
func (c *Controller) Reset() { c.state = DragState{} }

// Swap returns a copy of l in which, within the given column only, every
// occurrence of a is replaced by b and every occurrence of b by a. It returns
// l unchanged and false if a == b, the column does not exist, or either node
// is missing from that column.
//
// Swap is its own inverse: swapping the same pair twice restores l.
func Swap(l dag.Layering, column, a, b int) (dag.Layering, bool) {
	if a == b || column < 0 || column >= len(l) {
		return l, false
	}
	col := l[column]
	if !slices.Contains(col, a) || !slices.Contains(col, b) {
		return l, false
	}

	out := l.Clone()
	for i, id := range out[column] {
		switch id {
		case a:
			out[column][i] = b
		case b:
			out[column][i] = a
		}
	}
	return out, true
}
