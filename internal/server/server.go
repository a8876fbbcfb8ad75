// Package server exposes the relabel pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz             liveness probe
//	POST   /v1/analyze          analyse a graph and archive the report
//	POST   /v1/reorder          relabel a graph with one orderer
//	POST   /v1/render           draw a graph as DOT or SVG
//	GET    /v1/plugins          list orderers and bounds
//	GET    /v1/reports          list archived reports, newest first
//	GET    /v1/reports/{id}     fetch one report
//	DELETE /v1/reports/{id}     remove one report
//
// Graphs travel as the JSON document of pkg/io. Errors are JSON objects with
// the error code and a user-facing message.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/relabel/pkg/buildinfo"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/observability"
	"github.com/matzehuels/relabel/pkg/pipeline"
	"github.com/matzehuels/relabel/pkg/store"
)

const (
	// DefaultTimeout bounds the handling of a single request.
	DefaultTimeout = 2 * time.Minute

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes = 64 << 20

	shutdownTimeout = 10 * time.Second
)

// Config holds the server settings.
type Config struct {
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// Defaults seeds the pipeline options of every request. Fields set in a
	// request override it.
	Defaults pipeline.Options
}

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	router   chi.Router
}

// New creates a server backed by runner and st.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	s := &Server{
		runner:   runner,
		store:    st,
		logger:   logger.WithPrefix("http"),
		defaults: cfg.Defaults,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(cfg.Timeout))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.analyze)
		r.Post("/reorder", s.reorder)
		r.Post("/render", s.render)
		r.Get("/plugins", s.plugins)
		r.Get("/reports", s.listReports)
		r.Get("/reports/{id}", s.getReport)
		r.Delete("/reports/{id}", s.deleteReport)
	})
	s.router = r
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen on %s", addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "serve")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}

// observe reports every request to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Short()})
}
