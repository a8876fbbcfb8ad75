package ordering

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/perm"
)

// DefaultMortonBits is the per-axis resolution of the Morton grid.
const DefaultMortonBits = 10

// maxMortonBits keeps three interleaved axes inside a uint64.
const maxMortonBits = 21

// Morton orders vertices along a 3-D Z-order curve through their
// coordinates. Vertices that are close in space end up close in the
// numbering, whatever the edges look like. Graphs without coordinates are
// out of scope.
type Morton struct {
	// Bits is the number of grid bits per axis, at most 21.
	// Zero means DefaultMortonBits.
	Bits int
}

func (Morton) Name() string { return "morton" }

func (Morton) Available(g *csr.Graph) error {
	if !g.HasCoordinates() {
		return errors.New(errors.ErrCodeOrdererUnavailable, "morton ordering needs vertex coordinates")
	}
	return nil
}

func (o Morton) Order(g *csr.Graph) ([]int, error) {
	if err := o.Available(g); err != nil {
		return nil, err
	}
	bits := o.Bits
	if bits <= 0 {
		bits = DefaultMortonBits
	}
	if bits > maxMortonBits {
		return nil, errors.New(errors.ErrCodeInvalidInput, "morton bits %d exceeds %d", bits, maxMortonBits)
	}

	coords := g.Coordinates()
	var lo, hi csr.Point
	for axis := range 3 {
		lo[axis], hi[axis] = math.Inf(1), math.Inf(-1)
	}
	for _, p := range coords {
		for axis := range 3 {
			lo[axis] = min(lo[axis], p[axis])
			hi[axis] = max(hi[axis], p[axis])
		}
	}

	cells := float64(uint64(1)<<bits - 1)
	codes := make([]uint64, len(coords))
	for u, p := range coords {
		var cell [3]uint64
		for axis := range 3 {
			if span := hi[axis] - lo[axis]; span > 0 {
				cell[axis] = uint64(math.Round((p[axis] - lo[axis]) / span * cells))
			}
		}
		codes[u] = interleave(cell, bits)
	}

	out := perm.Identity(len(coords))
	slices.SortStableFunc(out, func(a, b int) int {
		return cmp.Compare(codes[a], codes[b])
	})
	return out, nil
}

// interleave builds a Morton code with x in the lowest bit of each triple.
func interleave(cell [3]uint64, bits int) uint64 {
	var code uint64
	for b := range bits {
		for axis := range 3 {
			code |= (cell[axis] >> b & 1) << (3*b + axis)
		}
	}
	return code
}
