package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/columnview/pkg/client"
	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/store"
)

// sourceOpts selects where graphs-, view- and serve-style commands read from.
type sourceOpts struct {
	local   bool   // use the configured store instead of the API
	backend string // overrides store.backend
	dir     string // overrides store.dir
	apiURL  string // overrides api_url
}

// openSource returns the graph source described by opts and the config.
// Graph files given as args take precedence over everything else.
func (c *CLI) openSource(ctx context.Context, opts sourceOpts, files []string) (store.Store, error) {
	if len(files) > 0 {
		ms, err := loadFiles(ctx, files)
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	if opts.local || opts.backend != "" || opts.dir != "" {
		return c.openStore(ctx, opts)
	}
	url := opts.apiURL
	if url == "" {
		url = c.cfg().APIURL
	}
	cl, err := client.New(url, c.Logger)
	if err != nil {
		return nil, err
	}
	return cl, nil
}

func (c *CLI) openStore(ctx context.Context, opts sourceOpts) (store.Store, error) {
	sc := c.cfg().StoreConfig()
	if opts.backend != "" {
		sc.Backend = store.Backend(opts.backend)
	}
	if opts.dir != "" {
		sc.Dir = opts.dir
		if opts.backend == "" {
			sc.Backend = store.BackendDir
		}
	}
	s, err := store.New(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", sc.Backend, err)
	}
	c.Logger.Debug("opened store", "backend", sc.Backend)
	return s, nil
}

// loadFiles reads graph files into a memory store. A file named <n>.json
// gets ID n; others are numbered after the highest such ID.
func loadFiles(ctx context.Context, paths []string) (*store.MemoryStore, error) {
	s := store.NewMemoryStore()
	type pending struct {
		path string
		g    graph.Graph
	}
	var unnamed []pending
	next := 1

	for _, path := range paths {
		g, err := graph.ReadGraphFile(path)
		if err != nil {
			return nil, fmt.Errorf("load graph %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		id, err := cverr.ValidateGraphID(stem)
		if err != nil {
			unnamed = append(unnamed, pending{path, g})
			continue
		}
		if err := s.Put(ctx, id, g); err != nil {
			return nil, err
		}
		next = max(next, id+1)
	}
	for _, p := range unnamed {
		if err := s.Put(ctx, next, p.g); err != nil {
			return nil, err
		}
		next++
	}
	return s, nil
}

// seedStore copies every graph file in dir into w, keyed by file stem.
func seedStore(ctx context.Context, w store.Writer, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read seed dir: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !graph.IsGraphFile(e.Name()) {
			continue
		}
		id, err := cverr.ValidateGraphID(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if err != nil {
			continue
		}
		g, err := graph.ReadGraphFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, fmt.Errorf("seed %s: %w", e.Name(), err)
		}
		if err := w.Put(ctx, id, g); err != nil {
			return n, fmt.Errorf("seed %s: %w", e.Name(), err)
		}
		n++
	}
	return n, nil
}
