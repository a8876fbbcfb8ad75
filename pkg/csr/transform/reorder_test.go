package transform

import (
	"slices"
	"testing"

	"github.com/matzehuels/relabel/internal/testgraph"
	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/perm"
)

// edgeSet maps each undirected edge of g, relabelled through oldToNew, to its
// multiplicity.
func edgeSet(g *csr.Graph, oldToNew []int) map[[2]int]int {
	out := map[[2]int]int{}
	for u := range g.VertexCount() {
		for v := range g.Neighbors(u) {
			a, b := u, v
			if oldToNew != nil {
				a, b = oldToNew[u], oldToNew[v]
			}
			if a > b {
				a, b = b, a
			}
			out[[2]int{a, b}]++
		}
	}
	return out
}

func equalEdgeSets(a, b map[[2]int]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func TestReorderPreservesTopology(t *testing.T) {
	graphs := map[string]*csr.Graph{
		"path":     testgraph.Path(5),
		"star":     testgraph.Star(5),
		"cycle":    testgraph.Cycle(5),
		"complete": testgraph.Complete(4),
	}

	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			for p := range perm.All(g.VertexCount()) {
				h, err := Reorder(g, p)
				if err != nil {
					t.Fatalf("Reorder(%v): %v", p, err)
				}
				if h.VertexCount() != g.VertexCount() || h.EdgeCount() != g.EdgeCount() {
					t.Fatalf("Reorder(%v) changed counts", p)
				}
				oldToNew, _ := perm.Invert(p)
				for i, old := range p {
					if h.Degree(i) != g.Degree(old) {
						t.Fatalf("Reorder(%v): degree of new %d = %d, want %d", p, i, h.Degree(i), g.Degree(old))
					}
				}
				if !equalEdgeSets(edgeSet(h, nil), edgeSet(g, oldToNew)) {
					t.Fatalf("Reorder(%v) changed the edge multiset", p)
				}
			}
		})
	}
}

func TestReorderIsInvertible(t *testing.T) {
	g := testgraph.Scrambled(4, 5)
	for _, p := range [][]int{
		perm.Identity(20),
		{19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
		{3, 7, 1, 0, 2, 5, 4, 6, 9, 8, 11, 10, 13, 12, 15, 14, 17, 16, 19, 18},
	} {
		h, err := Reorder(g, p)
		if err != nil {
			t.Fatalf("Reorder: %v", err)
		}
		inv, _ := perm.Invert(p)
		back, err := Reorder(h, inv)
		if err != nil {
			t.Fatalf("Reorder back: %v", err)
		}
		if !back.Equal(g) {
			t.Errorf("Reorder(Reorder(g, %v), inverse) != g", p)
		}
	}
}

func TestReorderIdentityIsCopy(t *testing.T) {
	g := testgraph.Grid(3, 3)
	h, err := Reorder(g, perm.Identity(9))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(h.Offsets(), g.Offsets()) || !slices.Equal(h.Adjacency(), g.Adjacency()) {
		t.Error("identity reorder should reproduce arrays")
	}
	if h.HasCoordinates() {
		t.Error("Reorder must not carry coordinates")
	}
}

func TestReorderRejectsBadPermutation(t *testing.T) {
	g := testgraph.Path(3)
	for _, p := range [][]int{{0, 1}, {0, 1, 1}, {0, 1, 3}, {0, 1, 2, 3}} {
		if _, err := Reorder(g, p); !errors.Is(err, errors.ErrCodeInvalidPermutation) {
			t.Errorf("Reorder(%v): got %v, want INVALID_PERMUTATION", p, err)
		}
	}
}

func TestPermuteCoordinates(t *testing.T) {
	g := testgraph.Grid(1, 3)
	p := []int{2, 0, 1}
	got, err := PermuteCoordinates(g.Coordinates(), p)
	if err != nil {
		t.Fatal(err)
	}
	want := []csr.Point{{2, 0, 0}, {0, 0, 0}, {1, 0, 0}}
	if !slices.Equal(got, want) {
		t.Errorf("PermuteCoordinates = %v, want %v", got, want)
	}

	if _, err := PermuteCoordinates(g.Coordinates(), []int{0, 1}); !errors.Is(err, errors.ErrCodeInvalidPermutation) {
		t.Errorf("length mismatch: got %v", err)
	}
}

func TestReorderWithCoordinates(t *testing.T) {
	g := testgraph.Grid(2, 2)
	p := []int{3, 2, 1, 0}
	h, err := ReorderWithCoordinates(g, p)
	if err != nil {
		t.Fatal(err)
	}
	if !h.HasCoordinates() {
		t.Fatal("coordinates should be carried")
	}
	coords := h.Coordinates()
	orig := g.Coordinates()
	for i, old := range p {
		if coords[i] != orig[old] {
			t.Errorf("coords[%d] = %v, want %v", i, coords[i], orig[old])
		}
	}

	// Graphs without coordinates pass through untouched.
	plain, err := ReorderWithCoordinates(testgraph.Path(4), p)
	if err != nil || plain.HasCoordinates() {
		t.Errorf("plain graph: err=%v coords=%v", err, plain.HasCoordinates())
	}
}
