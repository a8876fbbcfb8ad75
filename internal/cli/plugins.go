package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/relabel/pkg/ordering"
)

// pluginsCommand lists the registered orderers and bounds.
func (c *CLI) pluginsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the available orderers and lower bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			printPlugins(cmd.OutOrStdout(), ordering.DefaultRegistry(opts.RegistryOptions()))
			return nil
		},
	}
}

// printPlugins renders one table row per plugin.
func printPlugins(w io.Writer, reg *ordering.Registry) {
	var rows [][]string
	for _, name := range reg.Names() {
		rows = append(rows, []string{name, "orderer"})
	}
	for _, name := range reg.BounderNames() {
		rows = append(rows, []string{name, "bound"})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return StyleValue
			default:
				return StyleDim
			}
		})
	fmt.Fprintln(w, t.Render())
}
