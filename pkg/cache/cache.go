// Package cache memoises computed layouts keyed by graph content.
//
// Layering is deterministic in the graph, so a [Hash] of the canonical graph
// JSON identifies the result. The pipeline runner consults a [Cache] before
// layering and stores the result afterwards:
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().LayeringKey(cache.Hash(graphJSON))
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // decode the cached layering
//	}
//
// Backends:
//   - [NullCache]: disables caching
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared across server instances
//
// Cache failures are never fatal to callers; a failed Get is a miss.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default TTLs.
const (
	// LayeringTTL bounds how long a computed layering is kept.
	LayeringTTL = 7 * 24 * time.Hour
)
