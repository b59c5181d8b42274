// Package config loads columnview settings.
//
// Settings are layered, later sources winning:
//
//  1. built-in defaults ([Default]);
//  2. a TOML file (--config, or $XDG_CONFIG_HOME/columnview/config.toml if it exists);
//  3. COLUMNVIEW_* environment variables;
//  4. command-line flags, applied by the CLI after Load returns.
//
// The result is checked with validator struct tags before use.
//
//	listen = ":8080"
//	api_url = "http://localhost:8080"
//
//	[store]
//	backend = "dir"
//	dir = "./graphs"
//
//	[cache]
//	backend = "file"
//
//	[log]
//	level = "info"
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/columnview/pkg/cache"
	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/store"
)

const appName = "columnview"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the full application configuration.
type Config struct {
	Listen string `toml:"listen" validate:"required,hostname_port"`
	APIURL string `toml:"api_url" validate:"omitempty,url"`
	Store  Store  `toml:"store"`
	Cache  Cache  `toml:"cache"`
	Log    Log    `toml:"log"`
}

// Store selects the graph source used by `serve` and local `view`.
type Store struct {
	Backend   string `toml:"backend" validate:"oneof=memory dir redis mongo"`
	Dir       string `toml:"dir" validate:"required_if=Backend dir"`
	RedisAddr string `toml:"redis_addr" validate:"required_if=Backend redis"`
	MongoURI  string `toml:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDB   string `toml:"mongo_db"`
}

// Cache selects where layerings and renders are memoised.
type Cache struct {
	Backend   string `toml:"backend" validate:"oneof=none file redis"`
	Dir       string `toml:"dir" validate:"required_if=Backend file"`
	RedisAddr string `toml:"redis_addr" validate:"required_if=Backend redis"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration: an in-memory store, a file
// cache under the user cache directory and info logging.
func Default() *Config {
	cfg := &Config{
		Listen: ":8080",
		APIURL: "http://localhost:8080",
		Store:  Store{Backend: string(store.BackendMemory)},
		Cache:  Cache{Backend: CacheFile},
		Log:    Log{Level: "info"},
	}
	if dir, err := DefaultCacheDir(); err == nil {
		cfg.Cache.Dir = dir
	} else {
		cfg.Cache.Backend = CacheNone
	}
	return cfg
}

// Load builds a configuration from defaults, the file at path and the
// environment. An empty path loads [DefaultPath] when that file exists.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	cfg.applyEnv(lookup)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return cverr.Wrap(cverr.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cverr.New(cverr.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// envBindings maps environment variables to the fields they override.
func (c *Config) envBindings() map[string]*string {
	return map[string]*string{
		"COLUMNVIEW_LISTEN":           &c.Listen,
		"COLUMNVIEW_API_URL":          &c.APIURL,
		"COLUMNVIEW_STORE_BACKEND":    &c.Store.Backend,
		"COLUMNVIEW_STORE_DIR":        &c.Store.Dir,
		"COLUMNVIEW_STORE_REDIS_ADDR": &c.Store.RedisAddr,
		"COLUMNVIEW_STORE_MONGO_URI":  &c.Store.MongoURI,
		"COLUMNVIEW_STORE_MONGO_DB":   &c.Store.MongoDB,
		"COLUMNVIEW_CACHE_BACKEND":    &c.Cache.Backend,
		"COLUMNVIEW_CACHE_DIR":        &c.Cache.Dir,
		"COLUMNVIEW_CACHE_REDIS_ADDR": &c.Cache.RedisAddr,
		"COLUMNVIEW_LOG_LEVEL":        &c.Log.Level,
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	for name, field := range c.envBindings() {
		if v, ok := lookup(name); ok && v != "" {
			*field = v
		}
	}
}

var validate = newValidator()

// newValidator reports fields by their TOML names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
	})
	return v
}

// Validate checks the configuration and reports the first problem found.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return cverr.Wrap(cverr.ErrCodeInvalidInput, err, "invalid config")
	}
	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required", "required_if":
		return cverr.New(cverr.ErrCodeInvalidInput, "config %s: required", field)
	case "oneof":
		return cverr.New(cverr.ErrCodeInvalidInput, "config %s: %q is not one of %s", field, e.Value(), e.Param())
	default:
		return cverr.New(cverr.ErrCodeInvalidInput, "config %s: %q is not a valid %s", field, e.Value(), e.Tag())
	}
}

// StoreConfig converts the store section for store.New.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend:   store.Backend(c.Store.Backend),
		Dir:       c.Store.Dir,
		RedisAddr: c.Store.RedisAddr,
		MongoURI:  c.Store.MongoURI,
		MongoDB:   c.Store.MongoDB,
	}
}

// OpenCache creates the configured cache.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case CacheFile:
		fc, err := cache.NewFileCache(c.Cache.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case CacheRedis:
		return cache.NewRedisCache(ctx, c.Cache.RedisAddr)
	default:
		return cache.NewNullCache(), nil
	}
}

// LogLevel returns the configured level; unknown values fall back to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// DefaultPath returns $XDG_CONFIG_HOME/columnview/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// DefaultCacheDir returns the cache directory using the XDG layout
// (~/.cache/columnview/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
