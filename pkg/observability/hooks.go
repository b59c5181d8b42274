// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks; the defaults are no-ops
// so nothing is recorded unless a binary registers a backend at startup:
//
//	func main() {
//	    reg := metrics.NewRegistry()
//	    observability.SetPipelineHooks(reg)
//	    observability.SetSessionHooks(reg)
//	    observability.SetCacheHooks(reg)
//	    observability.SetHTTPHooks(reg)
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	layering, err := transform.Layer(idx)
//	observability.Pipeline().OnLayer(ctx, layering.Len(), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// OnIndexBuild records the construction of a graph index.
	OnIndexBuild(ctx context.Context, nodeCount, edgeCount int, duration time.Duration, err error)

	// OnLayer records a layering run.
	OnLayer(ctx context.Context, columns int, duration time.Duration, err error)
}

// =============================================================================
// Session Hooks
// =============================================================================

// SessionHooks receives events from interactive sessions.
type SessionHooks interface {
	// OnSelect records a graph selection.
	OnSelect(ctx context.Context, graphID int, err error)

	// OnSwap records a finished drag gesture; applied is false for no-op drops.
	OnSwap(ctx context.Context, graphID int, applied bool)

	// OnProject records a line projection pass.
	OnProject(ctx context.Context, graphID, edges, segments int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnIndexBuild(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayer(context.Context, int, time.Duration, error)           {}

// NoopSessionHooks is a no-op implementation of SessionHooks.
type NoopSessionHooks struct{}

func (NoopSessionHooks) OnSelect(context.Context, int, error)     {}
func (NoopSessionHooks) OnSwap(context.Context, int, bool)        {}
func (NoopSessionHooks) OnProject(context.Context, int, int, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// hookSet is an immutable snapshot of the registered hooks. Setters copy
// the current snapshot and swap in the modified copy, so readers never lock.
type hookSet struct {
	pipeline PipelineHooks
	session  SessionHooks
	cache    CacheHooks
	http     HTTPHooks
}

func noopSet() *hookSet {
	return &hookSet{
		pipeline: NoopPipelineHooks{},
		session:  NoopSessionHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	}
}

var (
	current  atomic.Pointer[hookSet]
	updateMu sync.Mutex
)

func init() { current.Store(noopSet()) }

func update(fn func(*hookSet)) {
	updateMu.Lock()
	defer updateMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers custom pipeline hooks.
// Nil leaves the current hooks in place.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(s *hookSet) { s.pipeline = h })
	}
}

// SetSessionHooks registers custom session hooks.
func SetSessionHooks(h SessionHooks) {
	if h != nil {
		update(func(s *hookSet) { s.session = h })
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Session returns the registered session hooks.
func Session() SessionHooks { return current.Load().session }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores all hooks to their no-op defaults.
func Reset() {
	updateMu.Lock()
	defer updateMu.Unlock()
	current.Store(noopSet())
}
