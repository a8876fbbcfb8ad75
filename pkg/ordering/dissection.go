package ordering

import (
	"github.com/matzehuels/relabel/pkg/csr"
)

// DefaultLeafSize is the subgraph size below which NestedDissection stops
// splitting.
const DefaultLeafSize = 8

// NestedDissection recursively splits the graph at the middle level of a
// breadth-first search from a pseudo-peripheral vertex. The two halves are
// numbered first, one after the other, and the separator level last. Pieces
// no larger than LeafSize are numbered in breadth-first order.
//
// The input does not need to be connected; each component is dissected on
// its own.
type NestedDissection struct {
	// LeafSize is the largest piece numbered without further splitting.
	// Zero means DefaultLeafSize.
	LeafSize int
}

func (NestedDissection) Name() string { return "nd" }

func (o NestedDissection) Order(g *csr.Graph) ([]int, error) {
	n := g.VertexCount()
	leaf := o.LeafSize
	if leaf <= 0 {
		leaf = DefaultLeafSize
	}
	d := &dissector{
		g:     g,
		leaf:  leaf,
		mark:  make([]int, n),
		layer: make([]int, n),
		out:   make([]int, 0, n),
	}
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	d.dissect(all)
	return d.out, nil
}

// dissector carries scratch state for one NestedDissection run. mark[u] ==
// stamp means u belongs to the piece currently being searched.
type dissector struct {
	g     *csr.Graph
	leaf  int
	mark  []int
	stamp int
	layer []int
	out   []int
}

func (d *dissector) dissect(piece []int) {
	if len(piece) == 0 {
		return
	}
	comps := d.components(piece)
	if len(comps) > 1 {
		for _, c := range comps {
			d.dissect(c)
		}
		return
	}

	order := comps[0]
	if len(piece) <= d.leaf {
		d.out = append(d.out, order...)
		return
	}

	// Two sweeps find a vertex far from the rest of the piece.
	order = d.bfs(piece, order[len(order)-1])
	depth := d.layer[order[len(order)-1]] + 1
	if depth < 3 {
		d.out = append(d.out, order...)
		return
	}

	mid := depth / 2
	var left, right, sep []int
	for _, u := range order {
		switch l := d.layer[u]; {
		case l < mid:
			left = append(left, u)
		case l > mid:
			right = append(right, u)
		default:
			sep = append(sep, u)
		}
	}
	d.dissect(left)
	d.dissect(right)
	d.out = append(d.out, sep...)
}

// components splits piece into connected pieces, each in breadth-first
// order from its first member.
func (d *dissector) components(piece []int) [][]int {
	d.enter(piece)
	var comps [][]int
	seen := 0
	for _, u := range piece {
		if d.layer[u] >= 0 {
			continue
		}
		c := d.search(u)
		comps = append(comps, c)
		seen += len(c)
		if seen == len(piece) {
			break
		}
	}
	return comps
}

// bfs searches piece from start and leaves each member's level in d.layer.
func (d *dissector) bfs(piece []int, start int) []int {
	d.enter(piece)
	return d.search(start)
}

func (d *dissector) enter(piece []int) {
	d.stamp++
	for _, u := range piece {
		d.mark[u] = d.stamp
		d.layer[u] = -1
	}
}

func (d *dissector) search(start int) []int {
	queue := []int{start}
	d.layer[start] = 0
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, v := range d.g.NeighborSlice(u) {
			if d.mark[v] == d.stamp && d.layer[v] < 0 {
				d.layer[v] = d.layer[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return queue
}
