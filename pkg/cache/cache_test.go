package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit %v err %v, want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get(k) = %q hit %v err %v, want v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v err %v, want clean miss", hit, err)
	}
}

func TestFileCacheKeyMismatch(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "a", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Plant a's envelope at b's path to simulate a shard collision.
	raw, err := os.ReadFile(c.path("a"))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path("b")), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("b"), raw, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("Get(b) served a's entry")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"one", "two", "three"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "README" {
		t.Errorf("entries after Clear = %v, want only README", entries)
	}
	if _, hit, _ := c.Get(ctx, "one"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestFileCacheClear_MissingRoot(t *testing.T) {
	c := &FileCache{dir: filepath.Join(t.TempDir(), "absent")}
	if n, err := c.Clear(); err != nil || n != 0 {
		t.Errorf("Clear(missing) = %d, %v, want 0, nil", n, err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.LayeringKey("abc"); got != "layering:abc" {
		t.Errorf("LayeringKey = %q, want layering:abc", got)
	}

	rk1 := k.RenderKey("abc", "svg")
	rk2 := k.RenderKey("abc", "dot")
	if rk1 == rk2 {
		t.Error("different render formats should produce different keys")
	}
	if !strings.HasPrefix(rk1, "render:") {
		t.Errorf("RenderKey = %q, want render: prefix", rk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "columnview:")

	if got := scoped.LayeringKey("abc"); got != "columnview:layering:abc" {
		t.Errorf("ScopedKeyer LayeringKey = %q", got)
	}
	if got := scoped.RenderKey("abc", "svg"); !strings.HasPrefix(got, "columnview:render:") {
		t.Errorf("ScopedKeyer RenderKey should be prefixed: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if got := scoped.LayeringKey("h"); got != "prefix:layering:h" {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("COLUMNVIEW_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("COLUMNVIEW_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, addr)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := "columnview:test:" + Hash([]byte(t.Name()))
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get before Set = hit %v err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, key); !hit || err != nil || string(data) != "v" {
		t.Errorf("Get = %q hit %v err %v", data, hit, err)
	}
}
