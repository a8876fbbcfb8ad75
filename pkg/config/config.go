// Package config loads relabel's TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/relabel/config.toml (falling back to
// ~/.config/relabel/config.toml). Every key is optional; missing keys keep
// the values from [Default]. An example:
//
//	[analysis]
//	orderers = ["natural", "bfs-last", "cm-first", "cm-last", "rcm-last"]
//	bounds = ["edges", "degree", "spectral"]
//	format = "text"
//
//	[spectral]
//	max_vertices = 2000
//
//	[dissection]
//	leaf_size = 8
//
//	[morton]
//	bits = 10
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/relabel/pkg/errors"
)

const appName = "relabel"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the whole configuration file.
type Config struct {
	Analysis   Analysis   `toml:"analysis"`
	Spectral   Spectral   `toml:"spectral"`
	Dissection Dissection `toml:"dissection"`
	Morton     Morton     `toml:"morton"`
	Cache      Cache      `toml:"cache"`
	Server     Server     `toml:"server"`
}

// Analysis selects what a report contains. Empty lists mean every
// registered plugin.
type Analysis struct {
	Orderers []string `toml:"orderers"`
	Bounds   []string `toml:"bounds"`
	Format   string   `toml:"format"`
}

type Spectral struct {
	MaxVertices int `toml:"max_vertices"`
}

type Dissection struct {
	LeafSize int `toml:"leaf_size"`
}

type Morton struct {
	Bits int `toml:"bits"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// Server configures `relabel serve`.
type Server struct {
	Addr          string   `toml:"addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	Timeout       Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a Go duration string ("90s", "7d"
// is not accepted).
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Analysis:   Analysis{Format: "text"},
		Spectral:   Spectral{MaxVertices: 2000},
		Dissection: Dissection{LeafSize: 8},
		Morton:     Morton{Bits: 10},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{7 * 24 * time.Hour},
		},
		Server: Server{
			Addr:          ":8080",
			MongoDatabase: appName,
			Timeout:       Duration{2 * time.Minute},
		},
	}
}

// Load reads the file at path on top of the defaults. An empty path means
// DefaultPath; a missing default file is not an error, a missing explicit
// one is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			if explicit {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

// Decode parses TOML from r on top of the defaults and validates it.
// Unknown keys are rejected so typos do not pass silently.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

// Validate checks value ranges and plugin names.
func (c *Config) Validate() error {
	for _, name := range slices.Concat(c.Analysis.Orderers, c.Analysis.Bounds) {
		if err := errors.ValidateName(name); err != nil {
			return err
		}
	}
	switch {
	case c.Spectral.MaxVertices < 0:
		return errors.New(errors.ErrCodeInvalidInput, "spectral.max_vertices must not be negative")
	case c.Dissection.LeafSize < 1:
		return errors.New(errors.ErrCodeInvalidInput, "dissection.leaf_size must be at least 1")
	case c.Morton.Bits < 1 || c.Morton.Bits > 21:
		return errors.New(errors.ErrCodeInvalidInput, "morton.bits must be in [1,21]")
	case c.Cache.TTL.Duration < 0:
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	return nil
}

// CacheDir returns the file cache directory: cache.dir if set, otherwise
// $XDG_CACHE_HOME/relabel or ~/.cache/relabel.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// DefaultPath returns the configuration file location.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the XDG cache directory for relabel.
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
