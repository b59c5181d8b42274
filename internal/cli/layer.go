package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/pipeline"
)

// layerCommand prints the column layering of a graph file.
func (c *CLI) layerCommand() *cobra.Command {
	var (
		asJSON  bool
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layer [graph-file]",
		Short: "Print the column layering of a graph",
		Long: `Compute the column layering of a graph file (.json, .yaml or .yml).

Column 0 holds the roots; every edge points to a later column. Use --json for
the machine-readable view with node names and connector segments.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayer(cmd.Context(), args[0], asJSON, output, noCache)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON view to a file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layering cache")

	return cmd
}

func (c *CLI) runLayer(ctx context.Context, input string, asJSON bool, output string, noCache bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Layout(ctx, g)
	if err != nil {
		return fmt.Errorf("layer %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Layered %d nodes", res.Stats.NodeCount))

	view := pipeline.View(0, res)

	switch {
	case output != "":
		if err := graph.WriteViewFile(view, output); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printSuccess("Layering written")
		printFile(output)
	case asJSON:
		data, err := graph.MarshalView(view)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	default:
		printColumns(view)
	}
	printStats(res.Stats, res.CacheHit)
	return nil
}

// printColumns prints one line per column with the node names in order.
func printColumns(v graph.View) {
	if len(v.Columns) == 0 {
		printInfo("Empty graph")
		return
	}
	for i, col := range v.Columns {
		names := make([]string, len(col))
		for j, id := range col {
			names[j] = v.Name(id)
		}
		printKeyValue(fmt.Sprintf("column %d", i), strings.Join(names, ", "))
	}
}
