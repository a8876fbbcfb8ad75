package csr

import (
	"iter"
	"math"
	"slices"

	"github.com/matzehuels/relabel/pkg/errors"
)

// Point is a position in 3-D space.
type Point [3]float64

// Graph is an immutable undirected graph in compressed adjacency form.
//
// The zero value is not usable - use New or FromAdjacency.
// Graph is safe for concurrent reads.
type Graph struct {
	off    []int
	adj    []int
	coords []Point
}

// New validates offsets and adjacency and returns a Graph that owns copies
// of both.
//
// offsets must have length n+1 with n >= 1, start at 0, never decrease, and
// end at len(adjacency). Every adjacency entry must lie in [0,n). Violations
// are reported as INVALID_GRAPH.
func New(offsets, adjacency []int) (*Graph, error) {
	if err := validate(offsets, adjacency); err != nil {
		return nil, err
	}
	return &Graph{off: slices.Clone(offsets), adj: slices.Clone(adjacency)}, nil
}

// Build returns a Graph that takes ownership of off and adj without copying.
// It is meant for transformations that have just allocated both arrays; the
// caller must not touch them afterwards. The arrays are still validated.
func Build(off, adj []int) (*Graph, error) {
	if err := validate(off, adj); err != nil {
		return nil, err
	}
	return &Graph{off: off, adj: adj}, nil
}

// FromAdjacency builds a Graph from per-vertex neighbour lists.
// lists[u] is copied verbatim, so for an undirected graph each edge must
// appear in both endpoints' lists.
func FromAdjacency(lists [][]int) (*Graph, error) {
	off := make([]int, len(lists)+1)
	for u, nbrs := range lists {
		off[u+1] = off[u] + len(nbrs)
	}
	adj := make([]int, 0, off[len(lists)])
	for _, nbrs := range lists {
		adj = append(adj, nbrs...)
	}
	return Build(off, adj)
}

func validate(offsets, adjacency []int) error {
	if len(offsets) < 2 {
		return errors.New(errors.ErrCodeInvalidGraph, "need at least one vertex, got %d offsets", len(offsets))
	}
	n := len(offsets) - 1
	if offsets[0] != 0 {
		return errors.New(errors.ErrCodeInvalidGraph, "offsets[0] = %d, want 0", offsets[0])
	}
	for u := 0; u < n; u++ {
		if offsets[u+1] < offsets[u] {
			return errors.New(errors.ErrCodeInvalidGraph, "offsets decrease at vertex %d (%d > %d)", u, offsets[u], offsets[u+1])
		}
	}
	if offsets[n] != len(adjacency) {
		return errors.New(errors.ErrCodeInvalidGraph, "offsets[%d] = %d but adjacency has %d entries", n, offsets[n], len(adjacency))
	}
	for e, v := range adjacency {
		if v < 0 || v >= n {
			return errors.New(errors.ErrCodeInvalidGraph, "adjacency[%d] = %d out of range [0,%d)", e, v, n)
		}
	}
	return nil
}

// WithCoordinates returns a copy of g carrying the given vertex positions.
// coords must have exactly one finite point per vertex.
func (g *Graph) WithCoordinates(coords []Point) (*Graph, error) {
	if len(coords) != g.VertexCount() {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "got %d coordinates for %d vertices", len(coords), g.VertexCount())
	}
	for u, p := range coords {
		for _, x := range p {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "vertex %d has non-finite coordinate %v", u, p)
			}
		}
	}
	return &Graph{off: g.off, adj: g.adj, coords: slices.Clone(coords)}, nil
}

// VertexCount returns n.
func (g *Graph) VertexCount() int { return len(g.off) - 1 }

// EdgeCount returns the number of undirected edges, half the adjacency length.
func (g *Graph) EdgeCount() int { return len(g.adj) / 2 }

// Degree returns the number of adjacency entries of u.
// It panics if u is out of range.
func (g *Graph) Degree(u int) int { return g.off[u+1] - g.off[u] }

// Neighbors returns the neighbours of u in adjacency order.
// The sequence can be ranged over any number of times.
func (g *Graph) Neighbors(u int) iter.Seq[int] {
	nbrs := g.NeighborSlice(u)
	return func(yield func(int) bool) {
		for _, v := range nbrs {
			if !yield(v) {
				return
			}
		}
	}
}

// NeighborSlice returns the adjacency slice of u.
// The returned slice shares storage with g and must not be modified.
func (g *Graph) NeighborSlice(u int) []int {
	return g.adj[g.off[u]:g.off[u+1]:g.off[u+1]]
}

// Offsets returns a copy of the offsets array (length n+1).
func (g *Graph) Offsets() []int { return slices.Clone(g.off) }

// Adjacency returns a copy of the flattened adjacency array.
func (g *Graph) Adjacency() []int { return slices.Clone(g.adj) }

// HasCoordinates reports whether g carries vertex positions.
func (g *Graph) HasCoordinates() bool { return g.coords != nil }

// Coordinates returns a copy of the vertex positions, or nil if g has none.
func (g *Graph) Coordinates() []Point {
	if g.coords == nil {
		return nil
	}
	return slices.Clone(g.coords)
}

// MaxDegree returns the largest vertex degree.
func (g *Graph) MaxDegree() int {
	best := 0
	for u := range g.VertexCount() {
		best = max(best, g.Degree(u))
	}
	return best
}

// Equal reports whether g and h have identical offsets and adjacency.
// Coordinates are not compared.
func (g *Graph) Equal(h *Graph) bool {
	return slices.Equal(g.off, h.off) && slices.Equal(g.adj, h.adj)
}
