package ordering

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/perm"
)

// DefaultMaxSpectralVertices caps the dense eigendecomposition. The
// Laplacian is stored as an n x n matrix, so memory grows quadratically.
const DefaultMaxSpectralVertices = 2000

// spectralEps absorbs rounding in the eigenvalue before rounding the bound up.
const spectralEps = 1e-6

// Spectral bounds the arrangement cost from below by
// lambda2 * (n^2 - 1) / 6, where lambda2 is the second smallest eigenvalue
// of the graph Laplacian (Juvan and Mohar). The bound is exact for complete
// graphs.
type Spectral struct {
	// MaxVertices makes the bound unavailable for larger graphs.
	// Zero means DefaultMaxSpectralVertices.
	MaxVertices int
}

func (Spectral) Name() string { return "spectral" }

func (s Spectral) Available(g *csr.Graph) error {
	return spectralAvailable(g, s.MaxVertices)
}

func (Spectral) Bound(g *csr.Graph) (int, error) {
	n := g.VertexCount()
	if n < 2 {
		return 0, nil
	}
	vals, _, err := laplacianEigen(g, false)
	if err != nil {
		return 0, err
	}
	lambda2 := max(vals[1], 0)
	lb := math.Ceil(lambda2*float64(n*n-1)/6 - spectralEps)
	return int(lb), nil
}

// Fiedler sorts vertices by their component of the Fiedler vector (the
// eigenvector of lambda2), which places strongly connected vertices next to
// each other.
type Fiedler struct {
	// MaxVertices makes the orderer unavailable for larger graphs.
	// Zero means DefaultMaxSpectralVertices.
	MaxVertices int
}

func (Fiedler) Name() string { return "fiedler" }

func (f Fiedler) Available(g *csr.Graph) error {
	return spectralAvailable(g, f.MaxVertices)
}

func (Fiedler) Order(g *csr.Graph) ([]int, error) {
	n := g.VertexCount()
	if n < 3 {
		return perm.Identity(n), nil
	}
	_, vecs, err := laplacianEigen(g, true)
	if err != nil {
		return nil, err
	}
	fiedler := make([]float64, n)
	for i := range n {
		fiedler[i] = vecs.At(i, 1)
	}
	// Eigenvectors are only defined up to sign; pin it so vertex 0 sorts
	// towards the front.
	if fiedler[0] > 0 {
		for i := range fiedler {
			fiedler[i] = -fiedler[i]
		}
	}

	out := perm.Identity(n)
	slices.SortStableFunc(out, func(a, b int) int {
		return cmp.Compare(fiedler[a], fiedler[b])
	})
	return out, nil
}

func spectralAvailable(g *csr.Graph, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxSpectralVertices
	}
	if n := g.VertexCount(); n > limit {
		return errors.New(errors.ErrCodeOrdererUnavailable,
			"spectral methods limited to %d vertices, graph has %d", limit, n)
	}
	return nil
}

// laplacianEigen decomposes L = D - A. Eigenvalues come back in ascending
// order. Self-loops are ignored; parallel edges add weight.
func laplacianEigen(g *csr.Graph, vectors bool) ([]float64, *mat.Dense, error) {
	n := g.VertexCount()
	lap := mat.NewSymDense(n, nil)
	for u := range n {
		for _, v := range g.NeighborSlice(u) {
			if v == u {
				continue
			}
			lap.SetSym(u, u, lap.At(u, u)+1)
			if v > u {
				lap.SetSym(u, v, lap.At(u, v)-1)
			}
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(lap, vectors); !ok {
		return nil, nil, errors.New(errors.ErrCodeOrdererFailed, "eigendecomposition did not converge")
	}
	vals := es.Values(nil)
	if !vectors {
		return vals, nil, nil
	}
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	return vals, &vecs, nil
}
