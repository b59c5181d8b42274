package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/columnview/pkg/cache"
	"github.com/matzehuels/columnview/pkg/dag"
	"github.com/matzehuels/columnview/pkg/dag/transform"
	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/observability"
)

const keyTypeLayering = "layering"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Layout validates g and computes its layering.
//
// Invalid graphs fail with INVALID_GRAPH and cyclic graphs with
// CYCLE_DETECTED; both wrap the underlying sentinel so errors.Is still
// matches [dag.ErrInvalidGraph] and [transform.ErrCycleDetected].
func (r *Runner) Layout(ctx context.Context, g graph.Graph) (*Result, error) {
	result := &Result{}

	indexStart := time.Now()
	idx, err := graph.ToIndex(g)
	result.Stats.IndexTime = time.Since(indexStart)
	observability.Pipeline().OnIndexBuild(ctx, len(g.Nodes), len(g.Edges), result.Stats.IndexTime, err)
	if err != nil {
		return nil, cverr.Wrap(cverr.ErrCodeInvalidGraph, err, cverr.MsgCannotDisplay)
	}
	result.Index = idx
	result.Stats.NodeCount = idx.NodeCount()
	result.Stats.EdgeCount = idx.EdgeCount()

	if data, err := graph.MarshalGraph(graph.FromIndex(idx)); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	layerStart := time.Now()
	layering, hit, err := r.layerWithCache(ctx, idx, result.GraphHash)
	result.Stats.LayerTime = time.Since(layerStart)
	if err != nil {
		r.Logger.Warn("layering failed", "nodes", idx.NodeCount(), "error", err)
		return nil, err
	}
	result.Layering = layering
	result.CacheHit = hit
	result.Stats.Columns = layering.Len()
	result.Stats.Crossings = dag.CountCrossings(idx, layering)

	r.Logger.Debug("computed layering",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"columns", result.Stats.Columns,
		"crossings", result.Stats.Crossings,
		"cache_hit", hit,
		"duration", result.Stats.LayerTime)

	return result, nil
}

func (r *Runner) layerWithCache(ctx context.Context, idx *dag.Index, graphHash string) (dag.Layering, bool, error) {
	cacheKey := ""
	if graphHash != "" {
		cacheKey = r.Keyer.LayeringKey(graphHash)
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached dag.Layering
			if err := json.Unmarshal(data, &cached); err == nil && cached.Validate(idx) == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayering)
				return cached, true, nil
			}
			// Stale or corrupt entries fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayering)
	}

	start := time.Now()
	layering, err := transform.Layer(idx)
	observability.Pipeline().OnLayer(ctx, layering.Len(), time.Since(start), err)
	if err != nil {
		if errors.Is(err, transform.ErrCycleDetected) {
			return nil, false, cverr.Wrap(cverr.ErrCodeCycleDetected, err, cverr.MsgCannotDisplay)
		}
		return nil, false, cverr.Wrap(cverr.ErrCodeInternal, err, cverr.MsgCannotDisplay)
	}

	if cacheKey != "" {
		if data, err := json.Marshal(layering); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.LayeringTTL); err != nil {
				r.Logger.Debug("cache write failed", "key", cacheKey, "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, keyTypeLayering, len(data))
			}
		}
	}
	return layering, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
