package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// entryExt marks files owned by a FileCache; Clear leaves anything else alone.
const entryExt = ".entry"

// FileCache stores one JSON envelope per key under dir, sharded by the
// first two hex digits of the key hash. Writes go through a temp file and
// rename so concurrent CLI runs never observe a torn entry.
type FileCache struct {
	dir string
}

// NewFileCache opens (and creates) a file cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// envelope is the on-disk form of an entry.
type envelope struct {
	Key     string    `json:"key"`
	Payload []byte    `json:"payload"`
	Expires time.Time `json:"expires,omitzero"`
}

func (e envelope) expired(now time.Time) bool {
	return !e.Expires.IsZero() && now.After(e.Expires)
}

// Dir returns the cache root.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the payload stored under key. Unreadable, expired or
// colliding entries are removed and reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	var e envelope
	if json.Unmarshal(raw, &e) != nil || e.Key != key || e.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Payload, true, nil
}

// Set stores data under key. A ttl of 0 never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := envelope{Key: key, Payload: data}
	if ttl > 0 {
		e.Expires = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	shard := filepath.Dir(path)
	if err := os.MkdirAll(shard, 0o755); err != nil {
		return fmt.Errorf("create cache shard: %w", err)
	}
	tmp, err := os.CreateTemp(shard, ".tmp-*")
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// Delete removes key. A missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes every entry and the emptied shard directories, returning
// the number of entries removed. A missing root counts as empty.
func (c *FileCache) Clear() (int, error) {
	removed := 0
	var shards []string
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if path == c.dir {
			return nil
		}
		if d.IsDir() {
			shards = append(shards, path)
			return nil
		}
		if filepath.Ext(path) == entryExt && os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	for i := len(shards) - 1; i >= 0; i-- {
		_ = os.Remove(shards[i])
	}
	return removed, err
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+entryExt)
}

var _ Cache = (*FileCache)(nil)
