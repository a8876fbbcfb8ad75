package csr

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/relabel/pkg/errors"
)

func TestNew(t *testing.T) {
	// Path 0-1-2
	g, err := New([]int{0, 1, 3, 4}, []int{1, 0, 2, 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := g.VertexCount(); got != 3 {
		t.Errorf("VertexCount() = %d, want 3", got)
	}
	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got)
	}
	for u, want := range []int{1, 2, 1} {
		if got := g.Degree(u); got != want {
			t.Errorf("Degree(%d) = %d, want %d", u, got, want)
		}
	}
	if got := g.NeighborSlice(1); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("NeighborSlice(1) = %v, want [0 2]", got)
	}
	if g.HasCoordinates() {
		t.Error("graph without coordinates reports HasCoordinates")
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		off  []int
		adj  []int
	}{
		{"no offsets", nil, nil},
		{"zero vertices", []int{0}, nil},
		{"nonzero first offset", []int{1, 2}, []int{0, 0}},
		{"decreasing offsets", []int{0, 2, 1, 2}, []int{1, 2}},
		{"length mismatch", []int{0, 1, 2}, []int{1}},
		{"adjacency too high", []int{0, 1, 2}, []int{1, 2}},
		{"negative adjacency", []int{0, 1, 2}, []int{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.off, tt.adj)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidGraph) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidGraph)
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	off := []int{0, 1, 2}
	adj := []int{1, 0}
	g, err := New(off, adj)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	adj[0] = 0
	off[1] = 2
	if got := g.NeighborSlice(0); !slices.Equal(got, []int{1}) {
		t.Errorf("graph changed after caller mutated input: %v", got)
	}

	cp := g.Adjacency()
	cp[0] = 7
	if g.NeighborSlice(0)[0] != 1 {
		t.Error("Adjacency() must return a copy")
	}
}

func TestSingleVertex(t *testing.T) {
	g, err := New([]int{0, 0}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.VertexCount() != 1 || g.EdgeCount() != 0 || g.Degree(0) != 0 {
		t.Errorf("unexpected single-vertex graph: n=%d m=%d", g.VertexCount(), g.EdgeCount())
	}
}

func TestFromAdjacency(t *testing.T) {
	g, err := FromAdjacency([][]int{{1, 2}, {0}, {0}})
	if err != nil {
		t.Fatalf("FromAdjacency: %v", err)
	}
	if got := g.Offsets(); !slices.Equal(got, []int{0, 2, 3, 4}) {
		t.Errorf("Offsets() = %v", got)
	}
	if got := g.Adjacency(); !slices.Equal(got, []int{1, 2, 0, 0}) {
		t.Errorf("Adjacency() = %v", got)
	}
	if got := g.MaxDegree(); got != 2 {
		t.Errorf("MaxDegree() = %d, want 2", got)
	}

	if _, err := FromAdjacency(nil); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("empty adjacency should be INVALID_GRAPH, got %v", err)
	}
	if _, err := FromAdjacency([][]int{{3}}); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("out-of-range neighbour should be INVALID_GRAPH, got %v", err)
	}
}

func TestNeighborsRestartable(t *testing.T) {
	g, _ := FromAdjacency([][]int{{1, 2, 3}, {0}, {0}, {0}})
	seq := g.Neighbors(0)

	var first, second []int
	for v := range seq {
		first = append(first, v)
	}
	for v := range seq {
		second = append(second, v)
	}
	if !slices.Equal(first, []int{1, 2, 3}) || !slices.Equal(first, second) {
		t.Errorf("Neighbors not restartable: %v then %v", first, second)
	}

	// Early break must be honoured.
	var got []int
	for v := range seq {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	if !slices.Equal(got, []int{1, 2}) {
		t.Errorf("early break: got %v", got)
	}
}

func TestWithCoordinates(t *testing.T) {
	g, _ := FromAdjacency([][]int{{1}, {0}})

	withCoords, err := g.WithCoordinates([]Point{{0, 0, 0}, {1, 2, 3}})
	if err != nil {
		t.Fatalf("WithCoordinates: %v", err)
	}
	if !withCoords.HasCoordinates() {
		t.Error("HasCoordinates() = false")
	}
	if g.HasCoordinates() {
		t.Error("WithCoordinates must not modify the receiver")
	}
	if got := withCoords.Coordinates()[1]; got != (Point{1, 2, 3}) {
		t.Errorf("Coordinates()[1] = %v", got)
	}
	if !withCoords.Equal(g) {
		t.Error("coordinates must not change topology")
	}

	if _, err := g.WithCoordinates([]Point{{0, 0, 0}}); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("short coordinates should be INVALID_GRAPH, got %v", err)
	}
	if _, err := g.WithCoordinates([]Point{{0, 0, 0}, {math.NaN(), 0, 0}}); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("NaN coordinate should be INVALID_GRAPH, got %v", err)
	}
}
