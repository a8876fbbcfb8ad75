// Package testgraph builds small well-known graphs for tests.
package testgraph

import (
	"github.com/matzehuels/relabel/pkg/csr"
)

// FromEdges builds an undirected graph on n vertices. Each pair is added to
// both endpoints' lists in the order given.
func FromEdges(n int, edges [][2]int) *csr.Graph {
	lists := make([][]int, n)
	for _, e := range edges {
		lists[e[0]] = append(lists[e[0]], e[1])
		lists[e[1]] = append(lists[e[1]], e[0])
	}
	g, err := csr.FromAdjacency(lists)
	if err != nil {
		panic(err)
	}
	return g
}

// Path returns 0-1-2-...-(n-1).
func Path(n int) *csr.Graph {
	var edges [][2]int
	for i := 0; i+1 < n; i++ {
		edges = append(edges, [2]int{i, i + 1})
	}
	return FromEdges(n, edges)
}

// Star returns a star with centre 0 and leaves 1..n-1.
func Star(n int) *csr.Graph {
	var edges [][2]int
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{0, i})
	}
	return FromEdges(n, edges)
}

// Cycle returns the cycle 0-1-...-(n-1)-0.
func Cycle(n int) *csr.Graph {
	var edges [][2]int
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, (i + 1) % n})
	}
	return FromEdges(n, edges)
}

// Complete returns K_n.
func Complete(n int) *csr.Graph {
	var edges [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return FromEdges(n, edges)
}

// Grid returns a rows x cols grid numbered row-major, with coordinates
// (col, row, 0) attached.
func Grid(rows, cols int) *csr.Graph {
	var edges [][2]int
	coords := make([]csr.Point, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			u := r*cols + c
			if c+1 < cols {
				edges = append(edges, [2]int{u, u + 1})
			}
			if r+1 < rows {
				edges = append(edges, [2]int{u, u + cols})
			}
			coords = append(coords, csr.Point{float64(c), float64(r), 0})
		}
	}
	g, err := FromEdges(rows*cols, edges).WithCoordinates(coords)
	if err != nil {
		panic(err)
	}
	return g
}

// Scrambled returns a grid whose labels were shuffled by a fixed
// permutation, so orderers have something to improve on.
func Scrambled(rows, cols int) *csr.Graph {
	n := rows * cols
	label := make([]int, n)
	step := 7
	for gcd(step, n) != 1 {
		step++
	}
	for u := range label {
		label[u] = (u * step) % n
	}
	var edges [][2]int
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			u := r*cols + c
			if c+1 < cols {
				edges = append(edges, [2]int{label[u], label[u+1]})
			}
			if r+1 < rows {
				edges = append(edges, [2]int{label[u], label[u+cols]})
			}
		}
	}
	return FromEdges(n, edges)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Disconnected returns two disjoint edges: 0-1 and 2-3.
func Disconnected() *csr.Graph {
	return FromEdges(4, [][2]int{{0, 1}, {2, 3}})
}
