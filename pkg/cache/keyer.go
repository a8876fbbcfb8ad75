package cache

import (
	"slices"
)

// ReportKeyOpts are the analysis options that change a report.
type ReportKeyOpts struct {
	Orderers []string `json:"orderers"`
	Bounds   []string `json:"bounds"`
	// Plugin settings that change results.
	MaxSpectralVertices int `json:"max_spectral_vertices,omitempty"`
	LeafSize            int `json:"leaf_size,omitempty"`
	MortonBits          int `json:"morton_bits,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ReportKey addresses a full analysis report for a graph.
	ReportKey(graphHash string, opts ReportKeyOpts) string
	// OrderingKey addresses the permutation one orderer produced for a graph.
	OrderingKey(graphHash, orderer string, opts ReportKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ReportKey ignores the order of names so that "cm-first,bfs-last" and
// "bfs-last,cm-first" share an entry.
func (DefaultKeyer) ReportKey(graphHash string, opts ReportKeyOpts) string {
	o := opts
	o.Orderers = sortedCopy(opts.Orderers)
	o.Bounds = sortedCopy(opts.Bounds)
	return hashKey("report", graphHash, o)
}

// OrderingKey only includes the plugin settings; the orderer list does not
// affect a single permutation.
func (DefaultKeyer) OrderingKey(graphHash, orderer string, opts ReportKeyOpts) string {
	return hashKey("ordering", graphHash, orderer, opts.MaxSpectralVertices, opts.LeafSize, opts.MortonBits)
}

func sortedCopy(s []string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}
