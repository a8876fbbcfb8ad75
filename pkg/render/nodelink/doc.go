// Package nodelink draws graphs as node-link diagrams so a numbering can be
// inspected by eye.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.LayoutNeato)
//
// # Edge colours
//
// Each edge is coloured by its span |u-v| relative to n-1, the longest
// possible span. Short edges are dark, long ones red, so a good ordering
// shows as a mostly dark picture.
//
// # Coordinates
//
// When the graph carries coordinates and Options.Pin is set, vertices are
// pinned at their (x, y) position; use the neato layout so Graphviz keeps
// them.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
