package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
)

// DirStore serves graphs from files named <id>.json, <id>.yaml or <id>.yml.
// Files whose stem is not a graph ID are ignored.
type DirStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewDirStore creates a store over baseDir, creating the directory if needed.
func NewDirStore(baseDir string) (*DirStore, error) {
	if baseDir == "" {
		return nil, cverr.New(cverr.ErrCodeInvalidInput, "graph directory cannot be empty")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create graph dir: %w", err)
	}
	return &DirStore{baseDir: baseDir}, nil
}

var dirExtensions = []string{".json", ".yaml", ".yml"}

func (s *DirStore) List(ctx context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, cverr.Wrap(cverr.ErrCodeUnavailable, err, "read graph dir")
	}

	var ids []int
	for _, entry := range entries {
		if entry.IsDir() || !graph.IsGraphFile(entry.Name()) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		id, err := cverr.ValidateGraphID(stem)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

func (s *DirStore) Get(ctx context.Context, id int) (graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ext := range dirExtensions {
		path := s.graphPath(id, ext)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		g, err := graph.ReadGraphFile(path)
		if err != nil {
			return graph.Graph{}, cverr.Wrap(cverr.ErrCodeUnavailable, err, "read graph %d", id)
		}
		return g, nil
	}
	return graph.Graph{}, notFound(id)
}

// Put writes g as <id>.json.
func (s *DirStore) Put(ctx context.Context, id int, g graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return graph.WriteGraphFile(g, s.graphPath(id, ".json"))
}

func (s *DirStore) Close() error { return nil }

// Path returns the directory the store reads from.
func (s *DirStore) Path() string { return s.baseDir }

func (s *DirStore) graphPath(id int, ext string) string {
	return filepath.Join(s.baseDir, strconv.Itoa(id)+ext)
}

var (
	_ Store  = (*DirStore)(nil)
	_ Writer = (*DirStore)(nil)
)
