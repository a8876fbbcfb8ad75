package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/relabel/pkg/errors"
	graphio "github.com/matzehuels/relabel/pkg/io"
	"github.com/matzehuels/relabel/pkg/ordering"
	"github.com/matzehuels/relabel/pkg/pipeline"
	"github.com/matzehuels/relabel/pkg/report"
)

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Graph   graphio.Document `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// AnalyzeResponse is returned by POST /v1/analyze.
type AnalyzeResponse struct {
	Report *report.Report `json:"report"`
	Cached bool           `json:"cached"`
}

// ReorderRequest is the body of POST /v1/reorder.
type ReorderRequest struct {
	Graph   graphio.Document `json:"graph"`
	Orderer string           `json:"orderer,omitempty"`
	Options pipeline.Options `json:"options"`
}

// ReorderResponse is returned by POST /v1/reorder.
type ReorderResponse struct {
	Graph       graphio.Document `json:"graph"`
	Orderer     string           `json:"orderer"`
	Permutation []int            `json:"permutation"` // old label of each new label
	CostBefore  int              `json:"cost_before"`
	CostAfter   int              `json:"cost_after"`
	Cached      bool             `json:"cached"`
}

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Graph   graphio.Document `json:"graph"`
	Orderer string           `json:"orderer,omitempty"`
	Format  string           `json:"format,omitempty"`
	Options pipeline.Options `json:"options"`
}

// PluginsResponse is returned by GET /v1/plugins.
type PluginsResponse struct {
	Orderers []string `json:"orderers"`
	Bounds   []string `json:"bounds"`
}

var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG: "image/svg+xml",
}

// options merges the request options over the server defaults. A request may
// lower max_spectral_vertices but not raise it above the server's limit.
func (s *Server) options(req pipeline.Options) (pipeline.Options, error) {
	opts := s.defaults
	limit := s.defaults.MaxSpectralVertices
	if limit <= 0 {
		limit = ordering.DefaultMaxSpectralVertices
	}
	if req.MaxSpectralVertices > limit {
		return opts, errors.New(errors.ErrCodeInvalidInput,
			"max_spectral_vertices %d exceeds the server limit of %d", req.MaxSpectralVertices, limit)
	}
	if len(req.Orderers) > 0 {
		opts.Orderers = req.Orderers
	}
	if len(req.Bounds) > 0 {
		opts.Bounds = req.Bounds
	}
	if req.MaxSpectralVertices != 0 {
		opts.MaxSpectralVertices = req.MaxSpectralVertices
	}
	if req.LeafSize != 0 {
		opts.LeafSize = req.LeafSize
	}
	if req.MortonBits != 0 {
		opts.MortonBits = req.MortonBits
	}
	if req.Layout != "" {
		opts.Layout = req.Layout
	}
	opts.Name = req.Name
	opts.Refresh = req.Refresh
	opts.Formats = req.Formats
	opts.Detailed = req.Detailed
	opts.Pin = req.Pin
	opts.Logger = s.logger
	return opts, nil
}

// POST /v1/analyze
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := req.Graph.Graph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.options(req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rep, hit, err := s.runner.AnalyzeWithCacheInfo(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.store.Save(r.Context(), rep); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{Report: rep, Cached: hit})
}

// POST /v1/reorder
func (s *Server) reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := req.Graph.Graph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.options(req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Reorder(r.Context(), g, req.Orderer, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReorderResponse{
		Graph:       graphio.NewDocument(res.Graph),
		Orderer:     res.Orderer,
		Permutation: res.Permutation.NewToOld(),
		CostBefore:  res.CostBefore,
		CostAfter:   res.CostAfter,
		Cached:      res.CacheHit,
	})
}

// POST /v1/render
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := req.Graph.Graph()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.options(req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	if req.Orderer != "" {
		res, err := s.runner.Reorder(r.Context(), g, req.Orderer, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		g = res.Graph
	}
	artifacts, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// GET /v1/plugins
func (s *Server) plugins(w http.ResponseWriter, r *http.Request) {
	opts, _ := s.options(pipeline.Options{})
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}
	reg := s.runner.Registry
	if reg == nil {
		reg = ordering.DefaultRegistry(opts.RegistryOptions())
	}
	writeJSON(w, http.StatusOK, PluginsResponse{Orderers: reg.Names(), Bounds: reg.BounderNames()})
}

// GET /v1/reports
func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}
	reports, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if reports == nil {
		reports = []*report.Report{}
	}
	writeJSON(w, http.StatusOK, reports)
}

// GET /v1/reports/{id}
func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// DELETE /v1/reports/{id}
func (s *Server) deleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
