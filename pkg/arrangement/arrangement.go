// Package arrangement scores vertex numberings by their linear arrangement
// cost and computes closed-form lower bounds on that cost.
//
// The linear arrangement cost of a numbering is the sum, over every
// undirected edge {u, v}, of |u - v|. A numbering that keeps neighbours close
// together has a low cost, which in practice means better memory locality
// when the graph is traversed in label order.
//
// Both bounds here are cheap (linear in the size of the graph) and hold for
// every numbering of the graph, so cost / bound is a useful quality ratio:
//
//	la := arrangement.Cost(g)
//	lb := max(arrangement.EdgesBound(g), arrangement.DegreeBound(g))
//	fmt.Printf("%.2fx of lower bound\n", float64(la)/float64(lb))
package arrangement

import (
	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
)

// Cost returns the linear arrangement cost of g under its current numbering.
// Each undirected edge appears twice in the adjacency array and is counted
// once, from its higher-numbered endpoint. Self-loops contribute nothing.
func Cost(g *csr.Graph) int {
	la := 0
	for u := range g.VertexCount() {
		for _, v := range g.NeighborSlice(u) {
			if v < u {
				la += u - v
			}
		}
	}
	return la
}

// CostUnder returns the cost g would have after relabelling by newToOld,
// without building the reordered graph. It equals
// Cost(transform.Reorder(g, newToOld)).
func CostUnder(g *csr.Graph, newToOld []int) (int, error) {
	n := g.VertexCount()
	if len(newToOld) != n {
		return 0, errors.New(errors.ErrCodeInvalidPermutation,
			"permutation has %d entries for %d vertices", len(newToOld), n)
	}
	pos := make([]int, n)
	for i := range pos {
		pos[i] = -1
	}
	for i, old := range newToOld {
		if old < 0 || old >= n {
			return 0, errors.New(errors.ErrCodeInvalidPermutation, "entry %d = %d out of range [0,%d)", i, old, n)
		}
		if pos[old] >= 0 {
			return 0, errors.New(errors.ErrCodeInvalidPermutation, "value %d appears more than once", old)
		}
		pos[old] = i
	}

	la := 0
	for u := range n {
		for _, v := range g.NeighborSlice(u) {
			if d := pos[u] - pos[v]; d > 0 {
				la += d
			}
		}
	}
	return la, nil
}

// EdgesBound packs the m edges into the shortest possible spans. A numbering
// has n-1 pairs at distance 1, n-2 at distance 2 and so on; filling the
// cheapest slots first gives a cost no numbering can beat.
func EdgesBound(g *csr.Graph) int {
	n := g.VertexCount()
	m := g.EdgeCount()
	lb := 0
	for i := 1; m > 0; i++ {
		take := min(n-i, m)
		if take <= 0 {
			// More edges than vertex pairs: only possible with parallel
			// edges or self-loops. Nothing cheaper is left to count.
			break
		}
		m -= take
		lb += i * take
	}
	return lb
}

// DegreeBound sums, over every vertex, the cheapest way to place its d
// neighbours on both sides of it (1, 1, 2, 2, 3, 3, ...), then halves the
// total because every edge was counted from both ends.
func DegreeBound(g *csr.Graph) int {
	lb := 0
	for u := range g.VertexCount() {
		lb += vertexBound(g.Degree(u))
	}
	return lb / 2
}

func vertexBound(d int) int {
	if d%2 == 0 {
		return d*d/4 + d/2
	}
	return (d + 1) * (d + 1) / 4
}

// LowerBound is the larger of EdgesBound and DegreeBound.
func LowerBound(g *csr.Graph) int {
	return max(EdgesBound(g), DegreeBound(g))
}

// Ratio returns cost / bound, or 0 when the bound is 0.
func Ratio(cost, bound int) float64 {
	if bound <= 0 {
		return 0
	}
	return float64(cost) / float64(bound)
}
