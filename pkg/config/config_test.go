package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/relabel/pkg/errors"
)

func TestDecode(t *testing.T) {
	input := `
[analysis]
orderers = ["cm-first", "rcm-last"]
bounds = ["edges"]

[spectral]
max_vertices = 50

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "1h30m"

[server]
mongo_uri = "mongodb://db:27017"
`
	cfg, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(cfg.Analysis.Orderers) != 2 || cfg.Analysis.Orderers[1] != "rcm-last" {
		t.Errorf("Orderers = %v", cfg.Analysis.Orderers)
	}
	if cfg.Spectral.MaxVertices != 50 {
		t.Errorf("MaxVertices = %d", cfg.Spectral.MaxVertices)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("TTL = %v", cfg.Cache.TTL)
	}
	// Untouched keys keep their defaults.
	if cfg.Dissection.LeafSize != 8 || cfg.Server.Addr != ":8080" || cfg.Analysis.Format != "text" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"syntax", "[analysis\n", errors.ErrCodeInvalidFormat},
		{"unknown key", "[analysis]\nordrers = []\n", errors.ErrCodeInvalidFormat},
		{"bad duration", "[cache]\nttl = \"7 days\"\n", errors.ErrCodeInvalidFormat},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"redis without addr", "[cache]\nbackend = \"redis\"\nredis_addr = \"\"\n", errors.ErrCodeInvalidInput},
		{"leaf size", "[dissection]\nleaf_size = 0\n", errors.ErrCodeInvalidInput},
		{"morton bits", "[morton]\nbits = 30\n", errors.ErrCodeInvalidInput},
		{"bad orderer name", "[analysis]\norderers = [\"cm first\"]\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode(Default())): %v", err)
	}
	if back.Cache.TTL != Default().Cache.TTL || back.Morton.Bits != 10 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// A missing default file gives the defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load default: %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}

	path := filepath.Join(dir, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("Backend = %q, want none", cfg.Cache.Backend)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file: %v", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("[cache]\nbackend = 3\n"), 0o644)
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad file: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/custom-config", appName, "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path, err = DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName, "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := DefaultCacheDir()
	if err != nil {
		t.Fatalf("DefaultCacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if expected := filepath.Join(home, ".cache", appName); dir != expected {
		t.Errorf("DefaultCacheDir() = %q, want %q", dir, expected)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, _ = DefaultCacheDir()
	if expected := filepath.Join("/tmp/custom-cache", appName); dir != expected {
		t.Errorf("DefaultCacheDir() = %q, want %q", dir, expected)
	}

	cfg := Default()
	cfg.Cache.Dir = "/srv/relabel"
	if dir, _ := cfg.CacheDir(); dir != "/srv/relabel" {
		t.Errorf("CacheDir() = %q, want the configured dir", dir)
	}
}
