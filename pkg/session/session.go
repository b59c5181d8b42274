// Package session holds the state of one interactive graph view.
//
// A [Session] is what a display host talks to. It owns exactly one selected
// graph at a time together with everything derived from it: the index, the
// current layering (which user swaps change), the drag gesture in progress,
// the measured node rectangles and the projected connector segments.
//
// # Lifecycle
//
//	s := session.New(source, runner, logger)
//	ids, _ := s.Graphs(ctx)          // populate the selector once
//	if err := s.Select(ctx, ids[0]); err != nil {
//	    show(errors.UserMessage(err)) // "graph unavailable" / "cannot display graph"
//	}
//	s.Settle(ctx, host.Measure(s.Layering()))
//	draw(s.Layering(), s.Segments())
//
// Gestures forward to a [reorder.Controller]:
//
//	s.Begin(a); s.Hover(b); s.Drop(ctx)
//
// A successful Drop replaces the layering and discards the rectangles and
// segments, since every box may have moved. The host re-measures and calls
// [Session.Settle], which is the explicit "layout settled" signal that
// triggers re-projection.
//
// Selecting another graph, or clearing the selection, discards all derived
// state before anything new is loaded, so a failed load never shows parts of
// the previous graph.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/columnview/pkg/dag"
	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/observability"
	"github.com/matzehuels/columnview/pkg/pipeline"
	"github.com/matzehuels/columnview/pkg/render/lines"
	"github.com/matzehuels/columnview/pkg/reorder"
)

// Source provides graphs by ID. pkg/store backends and pkg/client satisfy it.
type Source interface {
	List(ctx context.Context) ([]int, error)
	Get(ctx context.Context, id int) (graph.Graph, error)
}

// ErrSuperseded is returned by Select when a later Select or Clear replaced
// the selection while the graph was loading. The session is left untouched.
var ErrSuperseded = errors.New("session: selection superseded")

// Session is the host-side state of one view. It is safe for concurrent use.
type Session struct {
	// ID identifies the session in logs.
	ID string

	source Source
	runner *pipeline.Runner
	logger *log.Logger

	mu       sync.Mutex
	gen      uint64 // bumped by every Clear; a load commits only if unchanged
	graphID  int
	selected bool
	index    *dag.Index
	layering dag.Layering
	ctrl     reorder.Controller
	rects    lines.RectSource
	segments []lines.Segment
}

// New creates a session with nothing selected.
// A nil runner uses pipeline.NewRunner defaults; a nil logger uses log.Default.
func New(source Source, runner *pipeline.Runner, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	id := uuid.NewString()
	return &Session{
		ID:     id,
		source: source,
		runner: runner,
		logger: logger.With("session", id[:8]),
	}
}

// Graphs lists the IDs available for selection.
func (s *Session) Graphs(ctx context.Context) ([]int, error) {
	ids, err := s.source.List(ctx)
	if err != nil {
		s.logger.Warn("list graphs failed", "error", err)
		return nil, cverr.Wrap(codeOr(err, cverr.ErrCodeUnavailable), err, cverr.MsgUnavailable)
	}
	return ids, nil
}

// Select loads graph id and computes its layering.
//
// All previous state is discarded first. On failure the session stays
// cleared and the error's user message is "graph unavailable" (source
// failures) or "cannot display graph" (invalid or cyclic graphs).
//
// Concurrent calls resolve to the latest one: a load overtaken by another
// Select or by Clear returns [ErrSuperseded] and never commits.
func (s *Session) Select(ctx context.Context, id int) error {
	gen := s.clear()

	err := s.load(ctx, id, gen)
	observability.Session().OnSelect(ctx, id, err)
	return err
}

func (s *Session) load(ctx context.Context, id int, gen uint64) error {
	g, err := s.source.Get(ctx, id)
	if err != nil {
		s.logger.Warn("fetch graph failed", "graph", id, "error", err)
		return cverr.Wrap(codeOr(err, cverr.ErrCodeUnavailable), err, cverr.MsgUnavailable)
	}
	if !s.current(gen) {
		s.logger.Debug("selection superseded", "graph", id)
		return ErrSuperseded
	}

	res, err := s.runner.Layout(ctx, g)
	if err != nil {
		s.logger.Warn("layout failed", "graph", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		s.logger.Debug("selection superseded", "graph", id)
		return ErrSuperseded
	}
	s.graphID = id
	s.selected = true
	s.index = res.Index
	s.layering = res.Layering
	s.logger.Debug("selected graph", "graph", id, "columns", res.Layering.Len(), "cache_hit", res.CacheHit)
	return nil
}

// Clear deselects the current graph and discards all derived state. A Select
// still loading is abandoned.
func (s *Session) Clear() {
	s.clear()
}

func (s *Session) clear() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.graphID = 0
	s.selected = false
	s.index = nil
	s.layering = nil
	s.ctrl.Reset()
	s.rects = nil
	s.segments = nil
	return s.gen
}

func (s *Session) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

// Selected returns the selected graph ID; ok is false when none is selected.
func (s *Session) Selected() (id int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graphID, s.selected
}

// Index returns the selected graph's index, or nil.
func (s *Session) Index() *dag.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Layering returns a copy of the current layering, or nil.
func (s *Session) Layering() dag.Layering {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layering.Clone()
}

// DragState returns the gesture in progress.
func (s *Session) DragState() reorder.DragState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.State()
}

// Begin starts dragging node id. It returns false when nothing is selected
// or id is not placed.
func (s *Session) Begin(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selected {
		return false
	}
	return s.ctrl.Begin(s.layering, id)
}

// Hover records id as the drop target.
func (s *Session) Hover(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Hover(id)
}

// Leave clears the drop target.
func (s *Session) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Leave()
}

// Abort cancels the gesture.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Abort()
}

// Drop ends the gesture. When it produces a swap the layering is replaced,
// measured rectangles and segments are discarded, and Drop returns true.
func (s *Session) Drop(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selected {
		s.ctrl.Reset()
		return false
	}

	next, ok := s.ctrl.Drop(s.layering)
	observability.Session().OnSwap(ctx, s.graphID, ok)
	if !ok {
		return false
	}
	s.layering = next
	s.rects = nil
	s.segments = nil
	return true
}

// Settle records freshly measured rectangles for the current layering and
// re-projects the connector segments. It returns the new segments.
func (s *Session) Settle(ctx context.Context, rects lines.RectSource) []lines.Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selected {
		return nil
	}
	edges := s.index.Edges()
	s.rects = rects
	s.segments = lines.Project(s.layering, edges, rects)
	observability.Session().OnProject(ctx, s.graphID, len(edges), len(s.segments))
	return s.segments
}

// Segments returns the connector segments from the last Settle, or nil if
// the layout has changed since.
func (s *Session) Segments() []lines.Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.segments
}

// View exports the selected graph, or false when nothing is selected.
func (s *Session) View() (graph.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selected {
		return graph.View{}, false
	}
	return graph.NewView(s.graphID, s.index, s.layering, s.segments), true
}

// codeOr keeps NOT_FOUND and TIMEOUT from the source; anything else becomes fallback.
func codeOr(err error, fallback cverr.Code) cverr.Code {
	switch code := cverr.GetCode(err); code {
	case cverr.ErrCodeNotFound, cverr.ErrCodeTimeout:
		return code
	default:
		return fallback
	}
}
