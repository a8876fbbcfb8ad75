package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relabel/pkg/errors"
	graphio "github.com/matzehuels/relabel/pkg/io"
	"github.com/matzehuels/relabel/pkg/pipeline"
)

// reorderCommand creates the reorder command.
func (c *CLI) reorderCommand() *cobra.Command {
	var (
		orderer  string
		output   string
		permPath string
		coords   bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "reorder [graph]",
		Short: "Relabel a graph with one orderer",
		Long: `Reorder computes a numbering with the chosen orderer and writes the
relabelled graph. Coordinates, when read with --coords, follow their
vertices. The output format follows the extension of -o (.json or text);
without -o the text format goes to stdout.

--perm writes the permutation, one old label per line in new-label order.`,
		Example: `  relabel reorder -o mesh.rcm.txt mesh.txt
  relabel reorder --orderer nd --perm mesh.perm mesh.txt > mesh.nd.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReorder(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], orderer, output, permPath, coords, noCache)
		},
	}

	cmd.Flags().StringVar(&orderer, "orderer", pipeline.DefaultOrderer, "orderer to apply")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output graph file (default stdout)")
	cmd.Flags().StringVar(&permPath, "perm", "", "write the permutation to this file")
	cmd.Flags().BoolVar(&coords, "coords", false, "read vertex coordinates after the adjacency")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runReorder relabels the graph and writes the result.
func (c *CLI) runReorder(ctx context.Context, stdout, stderr io.Writer, input, orderer, output, permPath string, coords, noCache bool) error {
	g, err := loadGraph(input, coords)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Reorder(ctx, g, orderer, c.pipelineOptions())
	if err != nil {
		return err
	}

	if output == "" {
		if err := graphio.WriteGraph(stdout, res.Graph); err != nil {
			return err
		}
		if res.Graph.HasCoordinates() {
			if err := graphio.WriteCoordinates(stdout, res.Graph); err != nil {
				return err
			}
		}
	} else if err := graphio.WriteGraphFile(output, res.Graph); err != nil {
		return err
	}

	if permPath != "" {
		if err := writePermutation(permPath, res.Permutation.NewToOld()); err != nil {
			return err
		}
	}

	printSuccess(stderr, "Relabelled with %s", res.Orderer)
	printKeyValue(stderr, "cost before", strconv.Itoa(res.CostBefore))
	printKeyValue(stderr, "cost after", strconv.Itoa(res.CostAfter))
	if res.CacheHit {
		printDetail(stderr, "permutation from cache")
	}
	for _, path := range []string{output, permPath} {
		if path != "" {
			printFile(stderr, path)
		}
	}
	return nil
}

// writePermutation writes one label per line.
func writePermutation(path string, labels []int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	for _, v := range labels {
		if _, err := fmt.Fprintln(f, v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
	}
	return nil
}
