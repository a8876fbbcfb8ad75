package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relabel/pkg/errors"
	"github.com/matzehuels/relabel/pkg/pipeline"
	"github.com/matzehuels/relabel/pkg/report"
)

// formatTable is the coloured terminal output of analyze.
const formatTable = "table"

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		orderersStr string
		boundsStr   string
		format      string
		output      string
		coords      bool
		noCache     bool
		refresh     bool
		name        string
	)

	cmd := &cobra.Command{
		Use:   "analyze [graph]",
		Short: "Compare orderers on a graph against lower bounds",
		Long: `Analyze runs every selected orderer on a graph and reports the linear
arrangement cost of each numbering, together with lower bounds on the
cost of any numbering.

The graph is read in the text CSR format, or as JSON when the file ends in
.json. Use "-" to read from standard input. Reports are cached, keyed by the
graph contents and the plugin settings.`,
		Example: `  relabel analyze mesh.txt
  relabel analyze --orderers natural,rcm-last --format json mesh.txt
  relabel analyze --coords --format yaml -o report.yaml mesh.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = formatTable
				if cfg, err := c.Config(); err == nil && cfg.Analysis.Format != "" {
					format = cfg.Analysis.Format
				}
			}
			if format != formatTable {
				if err := report.ValidateFormat(format); err != nil {
					return err
				}
			}

			opts := c.pipelineOptions()
			if orderersStr != "" {
				opts.Orderers = parseList(orderersStr)
			}
			if boundsStr != "" {
				opts.Bounds = parseList(boundsStr)
			}
			opts.Name = name
			opts.Refresh = refresh
			return c.runAnalyze(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], coords, noCache, format, output, opts)
		},
	}

	cmd.Flags().StringVar(&orderersStr, "orderers", "", "orderers to compare (comma-separated, default all)")
	cmd.Flags().StringVar(&boundsStr, "bounds", "", "lower bounds to compute (comma-separated, default all)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, text, json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&coords, "coords", false, "read vertex coordinates after the adjacency")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached report exists")
	cmd.Flags().StringVar(&name, "name", "", "name recorded in the report (default the file name)")

	return cmd
}

// runAnalyze loads the graph, runs the analysis and writes the report.
func (c *CLI) runAnalyze(ctx context.Context, stdout, stderr io.Writer, input string, coords, noCache bool, format, output string, opts pipeline.Options) error {
	g, err := loadGraph(input, coords)
	if err != nil {
		return err
	}
	if opts.Name == "" && input != "-" {
		opts.Name = input
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %d vertices...", g.VertexCount()))
	spinner.Start()
	rep, hit, err := runner.AnalyzeWithCacheInfo(ctx, g, opts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			printWarning(stderr, "Analysis cancelled")
		}
		return err
	}
	prog.done("analysis complete", "orderings", len(rep.Orderings), "cached", hit)

	w := stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", output)
		}
		defer f.Close()
		w = f
	}

	if format == formatTable {
		printStats(stderr, rep.Vertices, rep.Edges, hit)
		if rep.Name != "" {
			fmt.Fprintln(w, StyleTitle.Render(rep.Name))
		}
		fmt.Fprintln(w, reportTable(rep))
		if best, ok := rep.Best(); ok {
			printSuccess(stderr, "Best: %s (cost %d)", best.Name, best.Cost)
			printNextStep(stderr, "Relabel with it", fmt.Sprintf("%s reorder --orderer %s %s", appName, best.Name, input))
		}
	} else if err := rep.Encode(w, format); err != nil {
		return err
	}

	if output != "" {
		printSuccess(stderr, "Wrote report")
		printFile(stderr, output)
	}
	return nil
}
