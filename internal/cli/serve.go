package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relabel/internal/server"
	"github.com/matzehuels/relabel/pkg/buildinfo"
	"github.com/matzehuels/relabel/pkg/observability"
	"github.com/matzehuels/relabel/pkg/store"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes analyze, reorder and render over HTTP.

Reports produced by /v1/analyze are archived in MongoDB when server.mongo_uri
is configured, otherwise in memory for the life of the process. The cache
backend is shared with the CLI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the runner, report store and hooks, then serves until ctx
// is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.Config()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close(context.WithoutCancel(ctx))

	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := server.New(runner, st, c.Logger, server.Config{
		Timeout:  cfg.Server.Timeout.Duration,
		Defaults: c.pipelineOptions(),
	})
	c.Logger.Info("starting relabel server", "version", buildinfo.Short(), "cache", cfg.Cache.Backend)
	return srv.ListenAndServe(ctx, addr)
}

// newStore opens the configured report archive.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	if cfg.Server.MongoURI == "" {
		c.Logger.Warn("no mongo_uri configured; reports are kept in memory")
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:      cfg.Server.MongoURI,
		Database: cfg.Server.MongoDatabase,
	})
}
