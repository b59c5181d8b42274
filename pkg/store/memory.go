package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/columnview/pkg/graph"
)

// MemoryStore keeps graphs in a map.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[int]graph.Graph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[int]graph.Graph)}
}

func (s *MemoryStore) List(ctx context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.graphs)), nil
}

func (s *MemoryStore) Get(ctx context.Context, id int) (graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[id]
	if !ok {
		return graph.Graph{}, notFound(id)
	}
	return g.Clone(), nil
}

// Put stores a copy of g under id, replacing any previous graph.
func (s *MemoryStore) Put(ctx context.Context, id int, g graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[id] = g.Clone()
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var (
	_ Store  = (*MemoryStore)(nil)
	_ Writer = (*MemoryStore)(nil)
)
