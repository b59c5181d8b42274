// Package store provides read access to the catalog of graphs.
//
// A [Store] lists graph identifiers and fetches one graph at a time. The
// backends are:
//   - memory: in-process map, for tests and demos
//   - dir: a directory of <id>.json / <id>.yaml files, for the CLI
//   - redis: Redis-backed storage shared across server instances
//   - mongo: a MongoDB collection of graph documents
//
// # Usage
//
//	s, err := store.New(ctx, store.Config{Backend: store.BackendDir, Dir: "graphs"})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	ids, err := s.List(ctx)
//	g, err := s.Get(ctx, ids[0])
//
// A missing graph is reported as a NOT_FOUND error from pkg/errors.
package store

import (
	"context"
	"fmt"

	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
)

// Store is the interface for graph sources.
type Store interface {
	// List returns the identifiers of all graphs in ascending order.
	List(ctx context.Context) ([]int, error)

	// Get returns one graph. Missing IDs yield a NOT_FOUND error.
	Get(ctx context.Context, id int) (graph.Graph, error)

	// Close releases connections held by the backend.
	Close() error
}

// Writer is implemented by backends that accept new graphs.
type Writer interface {
	Put(ctx context.Context, id int, g graph.Graph) error
}

// Backend names a store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendDir    Backend = "dir"
	BackendRedis  Backend = "redis"
	BackendMongo  Backend = "mongo"
)

// Config selects and parameterizes a backend.
type Config struct {
	Backend   Backend
	Dir       string
	RedisAddr string
	MongoURI  string
	MongoDB   string
}

// SupportedBackends returns the names accepted by New.
func SupportedBackends() []string {
	return []string{
		string(BackendMemory),
		string(BackendDir),
		string(BackendRedis),
		string(BackendMongo),
	}
}

// New creates the store described by cfg.
// Network backends are pinged before New returns.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendDir:
		return NewDirStore(cfg.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisAddr)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Backend)
	}
}

func notFound(id int) error {
	return cverr.New(cverr.ErrCodeNotFound, "graph %d not found", id)
}
