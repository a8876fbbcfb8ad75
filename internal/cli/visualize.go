package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/pipeline"
)

// visualizeCommand creates the visualize command for drawing a graph.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		orderer    string
		coords     bool
		noCache    bool
	)
	opts := pipeline.Options{Layout: pipeline.DefaultLayout}

	cmd := &cobra.Command{
		Use:   "visualize [graph]",
		Short: "Draw a graph as DOT or SVG",
		Long: `Visualize draws a graph as a node-link diagram. Edges are coloured by
how far apart their endpoints are in the numbering, so long edges stand out.

With --orderer the graph is relabelled first, which makes it easy to compare
a numbering before and after. With --pin the vertex coordinates fix the
drawing (requires --coords and the neato or fdp layout).

A single format without -o goes to stdout. Multiple formats need -o, whose
extension is replaced per format.`,
		Example: `  relabel visualize -f svg -o mesh.svg mesh.txt
  relabel visualize --orderer rcm-last -f dot,svg -o mesh.rcm mesh.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			if len(opts.Formats) > 1 && output == "" {
				return errors.New(errors.ErrCodeInvalidInput, "multiple formats need --output")
			}
			return c.runVisualize(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], orderer, output, coords, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.Layout, "layout", opts.Layout, "graphviz layout: dot, neato, circo, fdp")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "label vertices with their degree")
	cmd.Flags().BoolVar(&opts.Pin, "pin", false, "fix vertices at their coordinates")
	cmd.Flags().StringVar(&orderer, "orderer", "", "relabel with this orderer before drawing")
	cmd.Flags().BoolVar(&coords, "coords", false, "read vertex coordinates after the adjacency")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads, optionally relabels, and renders the graph.
func (c *CLI) runVisualize(ctx context.Context, stdout, stderr io.Writer, input, orderer, output string, coords, noCache bool, opts pipeline.Options) error {
	g, err := loadGraph(input, coords)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if orderer != "" {
		res, err := runner.Reorder(ctx, g, orderer, c.pipelineOptions())
		if err != nil {
			return err
		}
		g = res.Graph
		printDetail(stderr, "relabelled with %s: cost %d -> %d", orderer, res.CostBefore, res.CostAfter)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d vertices...", g.VertexCount()))
	spinner.Start()
	opts.Logger = c.Logger
	artifacts, err := runner.Render(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return err
	}
	spinner.Stop()

	if output == "" {
		_, err := stdout.Write(artifacts[opts.Formats[0]])
		return err
	}

	base := basePath(output)
	for _, format := range opts.Formats {
		path := output
		if len(opts.Formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		printFile(stderr, path)
	}
	printSuccess(stderr, "Rendered %s", strings.Join(opts.Formats, ", "))
	return nil
}

// parseFormats splits the --format flag, defaulting to svg.
func parseFormats(s string) []string {
	formats := parseList(s)
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return slices.Compact(formats)
}

// basePath strips a known format extension from the output path.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
