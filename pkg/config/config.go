// Package config loads jsonscope settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/jsonscope/config.toml (falling back to
// ~/.config/jsonscope/config.toml) unless a path is given explicitly. Every
// key is optional; missing keys keep the values from [Default]. A handful of
// deployment settings can also be overridden from the environment with
// JSONSCOPE_* variables, which take precedence over the file.
//
//	[cache]
//	backend = "redis"
//	ttl = "24h"
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	apperr "github.com/matzehuels/jsonscope/pkg/errors"
)

const appName = "jsonscope"

// Backend names.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config is the full application configuration.
type Config struct {
	Cache   CacheConfig   `toml:"cache"`
	Redis   RedisConfig   `toml:"redis"`
	Store   StoreConfig   `toml:"store"`
	Mongo   MongoConfig   `toml:"mongo"`
	Server  ServerConfig  `toml:"server"`
	Diagram DiagramConfig `toml:"diagram"`
	Parse   ParseConfig   `toml:"parse"`
	Watch   WatchConfig   `toml:"watch"`
	Fetch   FetchConfig   `toml:"fetch"`
}

// CacheConfig selects where diagrams and rendered images are cached.
type CacheConfig struct {
	Backend string   `toml:"backend"` // none, file or redis
	Dir     string   `toml:"dir"`     // file backend; empty means the XDG cache dir
	TTL     Duration `toml:"ttl"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// StoreConfig selects where saved documents live.
type StoreConfig struct {
	Backend string `toml:"backend"` // file or mongo
	Dir     string `toml:"dir"`
}

// MongoConfig configures the mongo document store.
type MongoConfig struct {
	URI        string   `toml:"uri"`
	Database   string   `toml:"database"`
	Collection string   `toml:"collection"`
	Timeout    Duration `toml:"timeout"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// DiagramConfig holds diagram defaults.
type DiagramConfig struct {
	Theme  string `toml:"theme"`
	Format string `toml:"format"`
}

// ParseConfig holds parser limits.
type ParseConfig struct {
	MaxDepth int `toml:"max_depth"`
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// FetchConfig configures downloading documents from http(s) URLs.
type FetchConfig struct {
	Timeout  Duration `toml:"timeout"`
	MaxBytes int64    `toml:"max_bytes"`
	Attempts int      `toml:"attempts"`
}

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{Backend: BackendFile, TTL: Duration{7 * 24 * time.Hour}},
		Redis: RedisConfig{Addr: "localhost:6379", Prefix: appName + ":"},
		Store: StoreConfig{Backend: BackendFile},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   appName,
			Collection: "documents",
			Timeout:    Duration{10 * time.Second},
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			MaxBodyBytes:    10 << 20,
		},
		Diagram: DiagramConfig{Theme: "light", Format: "mermaid"},
		Parse:   ParseConfig{MaxDepth: 10000},
		Watch:   WatchConfig{Debounce: Duration{200 * time.Millisecond}},
		Fetch:   FetchConfig{Timeout: Duration{30 * time.Second}, MaxBytes: 10 << 20, Attempts: 3},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path on top of [Default] and applies
// environment overrides. An empty path means [Path]; a missing default file
// is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, fmt.Errorf("locate config: %w", err)
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case errors.Is(err, fs.ErrNotExist):
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "config file %s not found", path)
	case err != nil:
		return nil, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "parse %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, apperr.New(apperr.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode parses TOML from r on top of [Default] without touching the
// environment.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// applyEnv overrides deployment settings from JSONSCOPE_* variables.
func (c *Config) applyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"JSONSCOPE_CACHE_BACKEND":  &c.Cache.Backend,
		"JSONSCOPE_REDIS_ADDR":     &c.Redis.Addr,
		"JSONSCOPE_REDIS_PASSWORD": &c.Redis.Password,
		"JSONSCOPE_STORE_BACKEND":  &c.Store.Backend,
		"JSONSCOPE_MONGO_URI":      &c.Mongo.URI,
		"JSONSCOPE_SERVER_ADDR":    &c.Server.Addr,
		"JSONSCOPE_THEME":          &c.Diagram.Theme,
	}
	for name, dst := range strs {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}
	if v := getenv("JSONSCOPE_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "JSONSCOPE_REDIS_DB")
		}
		c.Redis.DB = db
	}
	return nil
}

// Validate checks backend names and limits.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis:
	default:
		return apperr.New(apperr.ErrCodeInvalidConfig, "cache.backend %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case BackendFile, BackendMongo:
	default:
		return apperr.New(apperr.ErrCodeInvalidConfig, "store.backend %q (must be one of: file, mongo)", c.Store.Backend)
	}
	if c.Store.Backend == BackendMongo {
		if err := apperr.ValidateMongoURI(c.Mongo.URI); err != nil {
			return err
		}
	}
	if err := apperr.ValidateTheme(c.Diagram.Theme); err != nil {
		return err
	}
	if err := apperr.ValidateFormat(c.Diagram.Format, apperr.DiagramFormats); err != nil {
		return err
	}
	if c.Parse.MaxDepth < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "parse.max_depth must not be negative")
	}
	if c.Fetch.MaxBytes < 0 || c.Fetch.Attempts < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "fetch limits must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// CacheDir returns the file cache directory: the configured one, or
// $XDG_CACHE_HOME/jsonscope (~/.cache/jsonscope).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
