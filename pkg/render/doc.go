// Package render turns graphs into pictures.
//
// The [nodelink] subpackage writes Graphviz DOT and renders it to SVG with
// edges coloured by span, so the effect of a relabeling is visible at a
// glance.
package render
