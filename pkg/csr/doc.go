// Package csr provides the compressed adjacency graph used throughout relabel.
//
// A [Graph] stores an undirected, simple graph on vertices 0..n-1 as two
// parallel arrays: offsets of length n+1 and a flattened adjacency array.
// The neighbours of u are adjacency[offsets[u]:offsets[u+1]], and every
// undirected edge is stored twice, once per endpoint.
//
// # Construction
//
// Graphs are validated once at construction and are immutable afterwards:
//
//	g, err := csr.New([]int{0, 1, 3, 4}, []int{1, 0, 2, 1})
//	if err != nil {
//	    // errors.Is(err, errors.ErrCodeInvalidGraph)
//	}
//
// [FromAdjacency] builds the same structure from adjacency lists, and
// [Graph.WithCoordinates] attaches optional 3-D positions for geometric
// orderers.
//
// # Ownership
//
// New copies its inputs, and accessors that return slices either return
// copies ([Graph.Offsets], [Graph.Adjacency]) or are documented read-only
// views ([Graph.NeighborSlice]). Transformations in pkg/csr/transform always
// allocate a new Graph, so a relabelled graph never aliases its source.
//
// # Connectivity
//
// Construction does not check connectivity. Algorithms that need every
// vertex reachable from a start vertex (BFS layering and everything built on
// it) detect a disconnected graph themselves and fail with
// DISCONNECTED_GRAPH.
package csr
