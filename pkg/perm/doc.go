// Package perm provides bijective relabelings of vertex indices.
//
// # Overview
//
// A relabeling of n vertices has two directions that must always agree:
//
//   - newToOld[i] is the old index of the vertex now at position i
//   - oldToNew[v] is the new position of old vertex v
//
// so that oldToNew[newToOld[i]] == i for every i. Orderers produce newToOld
// (the vertices listed in their new order); the reorder engine needs
// oldToNew to translate neighbour lists. [Invert] converts one into the other
// in O(n), and [Permutation] carries both.
//
// # Validation
//
// Every entry point that accepts a raw slice checks that it is a bijection on
// 0..n-1 and reports INVALID_PERMUTATION otherwise:
//
//	oldToNew, err := perm.Invert([]int{2, 0, 1})   // [1 2 0]
//	_, err = perm.Invert([]int{0, 0, 1})            // duplicate 0
//
// # Enumeration
//
// [All] streams every permutation of 0..n-1 using Heap's algorithm. It exists
// for exhaustive checks on tiny graphs (n <= 8 or so); [Factorial] gives the
// number of values it yields.
//
//	for p := range perm.All(4) {
//	    // 24 distinct permutations
//	}
package perm
