package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/columnview/internal/config"
	"github.com/matzehuels/columnview/pkg/cache"
)

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"one", "two", "three"} {
		if err := fc.Set(context.Background(), key, []byte("{}"), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearDir(dir)
	if err != nil {
		t.Fatalf("clearDir: %v", err)
	}
	if n != 3 {
		t.Errorf("clearDir() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("%d entries left after clear", len(entries))
	}
}

func TestClearDir_Missing(t *testing.T) {
	n, err := clearDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil || n != 0 {
		t.Errorf("clearDir(missing) = %d, %v, want 0, nil", n, err)
	}
}

func TestCacheDir(t *testing.T) {
	c := &CLI{config: &config.Config{Cache: config.Cache{Backend: config.CacheFile, Dir: "/tmp/cv"}}}
	if got := c.cacheDir(); got != "/tmp/cv" {
		t.Errorf("cacheDir() = %q, want /tmp/cv", got)
	}
	c.config.Cache.Backend = config.CacheRedis
	if got := c.cacheDir(); got != "" {
		t.Errorf("cacheDir() for redis = %q, want empty", got)
	}
}
