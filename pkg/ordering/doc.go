// Package ordering computes vertex relabelings that lower the linear
// arrangement cost of a graph.
//
// # Overview
//
// Every orderer returns a newToOld permutation: position i of the result
// holds the old label of the vertex that becomes vertex i. Pass it to
// [transform.Reorder] to build the relabelled graph, or to
// [arrangement.CostUnder] to score it without building anything.
//
// # Built-in Orderers
//
//   - [BFS]: breadth-first visitation order from a start vertex
//   - [CuthillMcKee]: BFS layering, then within each layer sort by degree and
//     discovery index
//
// Both take a [Start] selector so that the same orderer can be evaluated from
// the first and the last vertex independently:
//
//	cm := ordering.CuthillMcKee{Start: ordering.StartLast}
//	newToOld, err := cm.Order(g)
//
// # Plugins
//
// Further orderers and bounds are plugins behind the [Orderer] and [Bounder]
// interfaces. A plugin that cannot serve a given graph (too large, no
// coordinates) implements [Capability] and reports ORDERER_UNAVAILABLE from
// Available; callers skip it instead of failing. Runtime failures come back
// as ORDERER_FAILED and callers move on to the next plugin.
//
//   - [Spectral]: Juvan-Mohar bound from the algebraic connectivity
//   - [Fiedler]: sort by the Fiedler vector
//   - [NestedDissection]: recursive level-set separators, separators last
//   - [Morton]: Z-order curve over vertex coordinates
//
// [Registry] maps names to orderers and bounders so the CLI, the config file
// and the HTTP API can all refer to them by name.
//
// # Determinism
//
// All orderers here are deterministic: the same graph and configuration give
// the same permutation. None of them mutate the input graph.
package ordering
