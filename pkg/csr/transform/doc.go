// Package transform provides the traversals and relabelings that operate on a
// [csr.Graph].
//
// # Overview
//
// Two operations live here, and every orderer in pkg/ordering is built from
// them:
//
//   - [Layering] runs a breadth-first search from a start vertex and records
//     the visitation order and each vertex's distance (layer)
//   - [Reorder] applies a relabeling to a graph and returns a new graph with
//     identical topology
//
// Neither operation mutates its input, so both can run concurrently on a
// shared source graph.
//
// # Layering
//
// [Layering] uses a first-in-first-out frontier. Neighbours are discovered in
// adjacency order, so for a fixed graph and start vertex the result is
// reproducible bit for bit:
//
//	layers, err := transform.Layering(g, 0)
//	// layers.Order[0] == 0, layers.Layer[0] == 0
//
// The graph must be connected. If the search finishes before visiting every
// vertex, Layering returns DISCONNECTED_GRAPH and no partial result.
//
// # Reorder
//
// [Reorder] takes newToOld (position i holds old vertex newToOld[i]), inverts
// it, copies degrees in the new order to build offsets, and translates every
// neighbour through oldToNew. Per-vertex neighbour order is preserved, so
// reordering by p and then by its inverse reproduces the original arrays
// exactly:
//
//	h, _ := transform.Reorder(g, p)
//	back, _ := transform.Reorder(h, inverse(p))
//	back.Equal(g) // true
//
// Coordinates are not carried over; use [PermuteCoordinates] with the same
// permutation when positions must follow their vertices.
//
// # Performance
//
// Both operations run in O(n + m) time and allocate O(n + m) memory.
package transform
