package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/relabel/pkg/csr"
	"github.com/matzehuels/relabel/pkg/errors"
)

// Graphviz layout engines.
const (
	LayoutDot   = "dot"
	LayoutNeato = "neato"
	LayoutCirco = "circo"
	LayoutFdp   = "fdp"
)

var layouts = map[string]graphviz.Layout{
	LayoutDot:   graphviz.DOT,
	LayoutNeato: graphviz.NEATO,
	LayoutCirco: graphviz.CIRCO,
	LayoutFdp:   graphviz.FDP,
}

// ValidateLayout checks that layout names a supported engine.
func ValidateLayout(layout string) error {
	if _, ok := layouts[layout]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid layout: %q (must be one of: dot, neato, circo, fdp)", layout)
	}
	return nil
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the degree to each vertex label.
	Detailed bool
	// Pin places vertices at their coordinates when the graph has them.
	Pin bool
	// Scale multiplies coordinates before pinning. Zero means 1.
	Scale float64
}

// Span colour thresholds as a fraction of the longest possible span.
const (
	shortSpan  = 0.1
	mediumSpan = 0.3
)

// EdgeColor returns the colour of an edge with the given span in a graph of
// n vertices. Edges between consecutive labels are always black.
func EdgeColor(span, n int) string {
	if span <= 1 || n < 2 {
		return "black"
	}
	switch ratio := float64(span) / float64(n-1); {
	case ratio <= shortSpan:
		return "black"
	case ratio <= mediumSpan:
		return "steelblue"
	default:
		return "firebrick"
	}
}

// ToDOT converts g to an undirected Graphviz graph. Vertices are named by
// their label and each edge is emitted once.
func ToDOT(g *csr.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=1.5];\n")
	buf.WriteString("\n")

	n := g.VertexCount()
	pin := opts.Pin && g.HasCoordinates()
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	var coords []csr.Point
	if pin {
		coords = g.Coordinates()
	}

	for u := range n {
		label := strconv.Itoa(u)
		if opts.Detailed {
			label = fmt.Sprintf("%d\\nd=%d", u, g.Degree(u))
		}
		fmt.Fprintf(&buf, "  %d [label=\"%s\"", u, label)
		if pin {
			fmt.Fprintf(&buf, ", pos=\"%g,%g!\"", coords[u][0]*scale, coords[u][1]*scale)
		}
		buf.WriteString("];\n")
	}

	buf.WriteString("\n")
	for u := range n {
		for v := range g.Neighbors(u) {
			if v <= u {
				continue
			}
			fmt.Fprintf(&buf, "  %d -- %d [color=%s];\n", u, v, EdgeColor(v-u, n))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph with the named engine and renders it to SVG.
func RenderSVG(ctx context.Context, dot, layout string) ([]byte, error) {
	engine, ok := layouts[layout]
	if !ok {
		return nil, ValidateLayout(layout)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	gv.SetLayout(engine)
	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
