package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/store"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	isolate(t)
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
	if !strings.HasSuffix(cfg.Cache.Dir, appName) {
		t.Errorf("Cache.Dir = %q, want it under %s", cfg.Cache.Dir, appName)
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
listen = "127.0.0.1:9000"

[store]
backend = "dir"
dir = "/srv/graphs"

[cache]
backend = "none"

[log]
level = "debug"
`)
	cfg, err := load(path, noEnv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if got := cfg.StoreConfig(); got.Backend != store.BackendDir || got.Dir != "/srv/graphs" {
		t.Errorf("StoreConfig() = %+v", got)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("APIURL = %q, want the default", cfg.APIURL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "listen = \":9000\"\n")
	cfg, err := load(path, envMap(map[string]string{
		"COLUMNVIEW_LISTEN":           ":7000",
		"COLUMNVIEW_STORE_BACKEND":    "redis",
		"COLUMNVIEW_STORE_REDIS_ADDR": "localhost:6379",
		"COLUMNVIEW_LOG_LEVEL":        "",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":7000" {
		t.Errorf("Listen = %q, want :7000", cfg.Listen)
	}
	if cfg.Store.RedisAddr != "localhost:6379" {
		t.Errorf("Store.RedisAddr = %q", cfg.Store.RedisAddr)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("empty env var should not override: Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoad_DefaultPath(t *testing.T) {
	isolate(t)
	if _, err := load("", noEnv); err != nil {
		t.Fatalf("missing default config should be ignored: %v", err)
	}

	p, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("listen = \":8181\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := load("", noEnv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != ":8181" {
		t.Errorf("Listen = %q, want :8181 from the default path", cfg.Listen)
	}
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantMsg string
	}{
		{"Syntax", "listen = ", nil, "parse config"},
		{"UnknownKey", "lisen = \":1\"\n", nil, "unknown keys lisen"},
		{"BadBackend", "[store]\nbackend = \"sqlite\"\n", nil, "store.backend"},
		{"DirMissing", "[store]\nbackend = \"dir\"\n", nil, "store.dir: required"},
		{"MongoMissing", "", map[string]string{"COLUMNVIEW_STORE_BACKEND": "mongo"}, "store.mongo_uri: required"},
		{"BadListen", "listen = \"nope\"\n", nil, "listen"},
		{"BadLevel", "[log]\nlevel = \"loud\"\n", nil, "log.level"},
		{"BadURL", "api_url = \"not a url\"\n", nil, "api_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(writeConfig(t, tt.content), envMap(tt.env))
			if err == nil {
				t.Fatal("load() error = nil")
			}
			if !cverr.Is(err, cverr.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want INVALID_INPUT", cverr.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := load(filepath.Join(t.TempDir(), "absent.toml"), noEnv); err == nil {
		t.Error("load() of a missing explicit file should fail")
	}
}

func TestOpenCache(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Cache.Backend = CacheNone
	c, err := cfg.OpenCache(t.Context())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer c.Close()

	cfg.Cache = Cache{Backend: CacheFile, Dir: t.TempDir()}
	fc, err := cfg.OpenCache(t.Context())
	if err != nil {
		t.Fatalf("OpenCache(file): %v", err)
	}
	fc.Close()
}

func TestLogLevel_Fallback(t *testing.T) {
	cfg := &Config{Log: Log{Level: "verbose"}}
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("LogLevel() = %v, want info", cfg.LogLevel())
	}
}
