// Package pipeline runs relabel's analyse → reorder → render stages for the
// CLI and the HTTP server.
//
// Both entry points go through a [Runner] so caching, logging and plugin
// selection behave the same everywhere.
//
// # Stages
//
//  1. Analyze: run every selected bound and orderer on a graph and collect
//     the costs in a [report.Report]
//  2. Reorder: relabel a graph with one orderer
//  3. Render: draw a graph as DOT or SVG
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	rep, err := runner.Analyze(ctx, g, pipeline.Options{
//	    Orderers: []string{"natural", "cm-first", "rcm-last"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	best, _ := rep.Best()
//
//	res, err := runner.Reorder(ctx, g, best.Name, pipeline.Options{})
package pipeline

import (
	"io"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relabel/pkg/cache"
	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/ordering"
	"github.com/matzehuels/relabel/pkg/perm"
	"github.com/matzehuels/relabel/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultOrderer is used by Reorder when no orderer is named.
	DefaultOrderer = "rcm-last"

	// DefaultLayout is the Graphviz engine used by Render.
	DefaultLayout = nodelink.LayoutNeato
)

// Format constants for rendered outputs.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Analysis options
	Name     string   `json:"name,omitempty"`
	Orderers []string `json:"orderers,omitempty"` // empty means every registered orderer
	Bounds   []string `json:"bounds,omitempty"`   // empty means every registered bound
	Refresh  bool     `json:"refresh,omitempty"`  // ignore cached results

	// Plugin options
	MaxSpectralVertices int `json:"max_spectral_vertices,omitempty"`
	LeafSize            int `json:"leaf_size,omitempty"`
	MortonBits          int `json:"morton_bits,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Layout   string   `json:"layout,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Pin      bool     `json:"pin,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger `json:"-"`
	Workers int         `json:"-"` // concurrent plugins; defaults to GOMAXPROCS

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result of Reorder.
type Result struct {
	// Graph is the relabelled graph, with coordinates carried over.
	Graph *csr.Graph

	// Orderer names the orderer that produced Permutation.
	Orderer string

	// Permutation maps between the input and output labels.
	Permutation perm.Permutation

	// CostBefore and CostAfter are the arrangement costs of the input and
	// output numbering.
	CostBefore int
	CostAfter  int

	// CacheHit reports whether the permutation came from the cache.
	CacheHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks names and ranges and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	for _, name := range slices.Concat(o.Orderers, o.Bounds) {
		if err := errors.ValidateName(name); err != nil {
			return err
		}
	}

	if o.MaxSpectralVertices == 0 {
		o.MaxSpectralVertices = ordering.DefaultMaxSpectralVertices
	}
	if o.LeafSize == 0 {
		o.LeafSize = ordering.DefaultLeafSize
	}
	if o.MortonBits == 0 {
		o.MortonBits = ordering.DefaultMortonBits
	}
	switch {
	case o.MaxSpectralVertices < 0:
		return errors.New(errors.ErrCodeInvalidInput, "max_spectral_vertices must not be negative")
	case o.LeafSize < 0:
		return errors.New(errors.ErrCodeInvalidInput, "leaf_size must not be negative")
	case o.MortonBits < 0 || o.MortonBits > 21:
		return errors.New(errors.ErrCodeInvalidInput, "morton_bits must be in [1,21]")
	}

	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return nodelink.ValidateLayout(o.Layout)
}

// RegistryOptions returns the plugin settings for ordering.DefaultRegistry.
func (o *Options) RegistryOptions() ordering.Options {
	return ordering.Options{
		MaxSpectralVertices: o.MaxSpectralVertices,
		LeafSize:            o.LeafSize,
		MortonBits:          o.MortonBits,
	}
}

// KeyOpts returns cache key options for the given plugin selection.
func (o *Options) KeyOpts(orderers, bounds []string) cache.ReportKeyOpts {
	return cache.ReportKeyOpts{
		Orderers:            orderers,
		Bounds:              bounds,
		MaxSpectralVertices: o.MaxSpectralVertices,
		LeafSize:            o.LeafSize,
		MortonBits:          o.MortonBits,
	}
}
