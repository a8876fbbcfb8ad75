// Package pkg provides the core libraries for relabel, a graph relabeling
// engine.
//
// # Overview
//
// Relabel renumbers the vertices of large sparse graphs so that neighbours get
// nearby labels, and measures how good a numbering is by its linear
// arrangement cost. The pkg directory is organized into these areas:
//
//  1. [csr], [perm], [arrangement] - Graph structure, permutations and cost
//  2. [ordering] - Orderer and bound plugins (BFS, Cuthill-McKee, spectral, ...)
//  3. [pipeline] - Orchestration (analyze, order, reorder, render)
//  4. [cache], [store], [config] - Infrastructure
//  5. [io], [report], [render] - Formats and output
//
// # Architecture
//
// The typical data flow:
//
//	graph file (text CSR or JSON)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [pipeline] package (run orderers and bounds concurrently)
//	         ↓
//	    [report] package (costs against lower bounds)
//	         ↓
//	    text/JSON/YAML report, relabelled graph, DOT/SVG drawing
//
// # Quick Start
//
//	g, err := io.ReadGraphFile("mesh.txt", io.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
//	rep, err := runner.Analyze(ctx, g, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	best, _ := rep.Best()
//	res, err := runner.Reorder(ctx, g, best.Name, pipeline.Options{})
package pkg
