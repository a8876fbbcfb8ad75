package perm

import (
	"iter"
	"slices"

	"github.com/matzehuels/relabel/pkg/errors"
)

// Identity returns the sequence [0, 1, 2, ..., n-1].
// For n <= 0, Identity returns an empty slice.
func Identity(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Validate reports INVALID_PERMUTATION unless p is a bijection on 0..len(p)-1.
func Validate(p []int) error {
	seen := make([]bool, len(p))
	for i, v := range p {
		if v < 0 || v >= len(p) {
			return errors.New(errors.ErrCodeInvalidPermutation, "entry %d = %d out of range [0,%d)", i, v, len(p))
		}
		if seen[v] {
			return errors.New(errors.ErrCodeInvalidPermutation, "value %d appears more than once", v)
		}
		seen[v] = true
	}
	return nil
}

// Invert returns the inverse of p: inv[p[i]] = i for every i.
// It fails with INVALID_PERMUTATION if p is not a bijection.
func Invert(p []int) ([]int, error) {
	inv := make([]int, len(p))
	for i := range inv {
		inv[i] = -1
	}
	for i, v := range p {
		if v < 0 || v >= len(p) {
			return nil, errors.New(errors.ErrCodeInvalidPermutation, "entry %d = %d out of range [0,%d)", i, v, len(p))
		}
		if inv[v] != -1 {
			return nil, errors.New(errors.ErrCodeInvalidPermutation, "value %d appears more than once", v)
		}
		inv[v] = i
	}
	return inv, nil
}

// Permutation is a validated relabeling that keeps both directions.
//
// The zero value is the empty permutation. Permutation values are immutable;
// the slices returned by NewToOld and OldToNew must not be modified.
type Permutation struct {
	newToOld []int
	oldToNew []int
}

// New builds a Permutation from the new-to-old direction. The input is copied.
func New(newToOld []int) (Permutation, error) {
	oldToNew, err := Invert(newToOld)
	if err != nil {
		return Permutation{}, err
	}
	return Permutation{newToOld: slices.Clone(newToOld), oldToNew: oldToNew}, nil
}

// FromOldToNew builds a Permutation from the old-to-new direction.
func FromOldToNew(oldToNew []int) (Permutation, error) {
	newToOld, err := Invert(oldToNew)
	if err != nil {
		return Permutation{}, err
	}
	return Permutation{newToOld: newToOld, oldToNew: slices.Clone(oldToNew)}, nil
}

// IdentityOf returns the permutation that leaves n vertices in place.
func IdentityOf(n int) Permutation {
	return Permutation{newToOld: Identity(n), oldToNew: Identity(n)}
}

// Len returns the number of relabelled vertices.
func (p Permutation) Len() int { return len(p.newToOld) }

// NewToOld returns the old index at each new position. Read-only.
func (p Permutation) NewToOld() []int { return p.newToOld }

// OldToNew returns the new position of each old index. Read-only.
func (p Permutation) OldToNew() []int { return p.oldToNew }

// Inverse swaps the two directions.
func (p Permutation) Inverse() Permutation {
	return Permutation{newToOld: p.oldToNew, oldToNew: p.newToOld}
}

// Then returns the relabeling that applies p first and q second, so that
// position i of the result holds p.NewToOld()[q.NewToOld()[i]].
func (p Permutation) Then(q Permutation) (Permutation, error) {
	if p.Len() != q.Len() {
		return Permutation{}, errors.New(errors.ErrCodeInvalidPermutation, "cannot compose permutations of length %d and %d", p.Len(), q.Len())
	}
	out := make([]int, p.Len())
	for i, j := range q.newToOld {
		out[i] = p.newToOld[j]
	}
	return New(out)
}

// Factorial returns n!, or 1 for n <= 1.
// 21! already overflows int64.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// All yields every permutation of [0, 1, ..., n-1] exactly once, using
// Heap's algorithm. Each yielded slice is a fresh allocation.
//
// For n <= 0 it yields a single empty permutation. The sequence has
// Factorial(n) elements; keep n small.
func All(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		p := Identity(n)
		if !yield(slices.Clone(p)) {
			return
		}
		state := make([]int, len(p))
		for i := 0; i < len(p); {
			if state[i] < i {
				if i%2 == 0 {
					p[0], p[i] = p[i], p[0]
				} else {
					p[state[i]], p[i] = p[i], p[state[i]]
				}
				if !yield(slices.Clone(p)) {
					return
				}
				state[i]++
				i = 0
			} else {
				state[i] = 0
				i++
			}
		}
	}
}
