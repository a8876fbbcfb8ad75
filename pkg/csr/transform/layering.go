package transform

import (
	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
)

// unvisited marks a vertex the search has not reached yet.
const unvisited = -1

// Layers is the result of a breadth-first search.
type Layers struct {
	// Start is the vertex the search began at.
	Start int
	// Order lists every vertex once, in the order it was discovered.
	// Order[0] == Start.
	Order []int
	// Layer holds each vertex's distance from Start.
	Layer []int
}

// Depth returns the number of distinct layers (eccentricity of Start + 1).
func (l *Layers) Depth() int {
	if len(l.Order) == 0 {
		return 0
	}
	return l.Layer[l.Order[len(l.Order)-1]] + 1
}

// Layering runs a breadth-first search of g from start.
//
// Unmarked neighbours of each dequeued vertex are visited in adjacency order
// and assigned the dequeued vertex's layer plus one. Returns INVALID_INPUT if
// start is out of range and DISCONNECTED_GRAPH if some vertex is unreachable.
func Layering(g *csr.Graph, start int) (*Layers, error) {
	n := g.VertexCount()
	if err := errors.ValidateVertex(start, n); err != nil {
		return nil, err
	}

	layer := make([]int, n)
	for i := range layer {
		layer[i] = unvisited
	}
	queue := make([]int, 0, n)

	layer[start] = 0
	queue = append(queue, start)
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, v := range g.NeighborSlice(u) {
			if layer[v] == unvisited {
				layer[v] = layer[u] + 1
				queue = append(queue, v)
			}
		}
	}

	if len(queue) != n {
		return nil, errors.New(errors.ErrCodeDisconnectedGraph,
			"search from vertex %d reached %d of %d vertices", start, len(queue), n)
	}
	return &Layers{Start: start, Order: queue, Layer: layer}, nil
}
