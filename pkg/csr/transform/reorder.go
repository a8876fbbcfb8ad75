package transform

import (
	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/perm"
)

// Reorder returns a copy of g relabelled so that new vertex i is old vertex
// newToOld[i].
//
// The result has the same vertex count, edge count and edge multiset as g;
// only labels change, and each vertex keeps its neighbours in their original
// relative order. Coordinates are dropped. Returns INVALID_PERMUTATION if
// newToOld is not a bijection on 0..n-1.
func Reorder(g *csr.Graph, newToOld []int) (*csr.Graph, error) {
	n := g.VertexCount()
	if len(newToOld) != n {
		return nil, errors.New(errors.ErrCodeInvalidPermutation,
			"permutation has %d entries for %d vertices", len(newToOld), n)
	}
	oldToNew, err := perm.Invert(newToOld)
	if err != nil {
		return nil, err
	}

	off := make([]int, n+1)
	for i, old := range newToOld {
		off[i+1] = off[i] + g.Degree(old)
	}
	adj := make([]int, off[n])
	for i, old := range newToOld {
		dst := adj[off[i]:off[i+1]]
		for j, k := range g.NeighborSlice(old) {
			dst[j] = oldToNew[k]
		}
	}
	return csr.Build(off, adj)
}

// ReorderBy is Reorder for an already validated permutation.
func ReorderBy(g *csr.Graph, p perm.Permutation) (*csr.Graph, error) {
	return Reorder(g, p.NewToOld())
}

// PermuteCoordinates returns coords rearranged so that entry i is the
// position of old vertex newToOld[i]. Use it alongside Reorder when
// positions must follow their vertices.
func PermuteCoordinates(coords []csr.Point, newToOld []int) ([]csr.Point, error) {
	if len(coords) != len(newToOld) {
		return nil, errors.New(errors.ErrCodeInvalidPermutation,
			"permutation has %d entries for %d coordinates", len(newToOld), len(coords))
	}
	if err := perm.Validate(newToOld); err != nil {
		return nil, err
	}
	out := make([]csr.Point, len(coords))
	for i, old := range newToOld {
		out[i] = coords[old]
	}
	return out, nil
}

// ReorderWithCoordinates relabels g and, if g has coordinates, carries them
// over with the same permutation.
func ReorderWithCoordinates(g *csr.Graph, newToOld []int) (*csr.Graph, error) {
	h, err := Reorder(g, newToOld)
	if err != nil || !g.HasCoordinates() {
		return h, err
	}
	coords, err := PermuteCoordinates(g.Coordinates(), newToOld)
	if err != nil {
		return nil, err
	}
	return h.WithCoordinates(coords)
}
