// Package cli implements the relabel command-line interface.
//
// # Commands
//
//   - analyze: compare every orderer on a graph against the lower bounds
//   - reorder: relabel a graph with one orderer and write it back out
//   - visualize: draw a graph as DOT or SVG
//   - plugins: list the registered orderers and bounds
//   - serve: run the HTTP API
//   - cache, config, completion: housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging through the
// shared charmbracelet logger.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relabel/pkg/buildinfo"
	"github.com/matzehuels/relabel/pkg/cache"
	"github.com/matzehuels/relabel/pkg/config"
	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
	graphio "github.com/matzehuels/relabel/pkg/io"
	"github.com/matzehuels/relabel/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "relabel"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the default configuration file location.
	ConfigPath string

	config *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Relabel reorders graph vertices for locality",
		Long:          `Relabel renumbers the vertices of large sparse graphs so that neighbours get nearby labels, and measures how good a numbering is against lower bounds on the linear arrangement cost.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.Config()
			return err
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/relabel/config.toml)")

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.reorderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.pluginsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Config loads the configuration once and returns it.
func (c *CLI) Config() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	ch, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(ch, nil, c.Logger)
	runner.TTL = cfg.Cache.TTL.Duration
	return runner, nil
}

// newCache builds the configured cache backend. A file cache that cannot
// locate its directory falls back to no caching.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the configuration file.
func (c *CLI) pipelineOptions() pipeline.Options {
	opts := pipeline.Options{Logger: c.Logger}
	if cfg, err := c.Config(); err == nil {
		opts.Orderers = cfg.Analysis.Orderers
		opts.Bounds = cfg.Analysis.Bounds
		opts.MaxSpectralVertices = cfg.Spectral.MaxVertices
		opts.LeafSize = cfg.Dissection.LeafSize
		opts.MortonBits = cfg.Morton.Bits
	}
	return opts
}

// parseList splits a comma-separated flag value, dropping empty entries.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadGraph reads a graph file, or standard input when path is "-".
func loadGraph(path string, coords bool) (*csr.Graph, error) {
	opts := graphio.Options{Coordinates: coords}
	if path == "-" {
		return graphio.ReadGraph(os.Stdin, opts)
	}
	if err := errors.ValidatePath(path, false); err != nil {
		return nil, err
	}
	return graphio.ReadGraphFile(path, opts)
}
