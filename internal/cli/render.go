package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/pipeline"
)

// fileExtensions maps output formats to default file extensions.
var fileExtensions = map[string]string{
	pipeline.FormatColumns:  ".svg",
	pipeline.FormatGraphviz: ".graphviz.svg",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatPNG:      ".png",
	pipeline.FormatPDF:      ".pdf",
	pipeline.FormatJSON:     ".view.json",
}

// renderCommand paints a graph file.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph-file]",
		Short: "Render a graph as a column diagram",
		Long: `Render a graph file in one of the supported formats:

  columns   column grid with connector lines (SVG, default)
  graphviz  node-link diagram with one rank per column (SVG, via Graphviz)
  dot       Graphviz source
  png, pdf  column grid rasterized by rsvg-convert
  json      view with columns, names and segments

Use -o - to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], format, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatColumns, "output format: columns, graphviz, dot, png, pdf, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input> with a format extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, format, output string, noCache bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Layout(ctx, g)
	if err != nil {
		return fmt.Errorf("layer %s: %w", input, err)
	}

	var data []byte
	err = withSpinner(ctx, "Rendering "+format+"...", func() error {
		data, err = runner.Render(ctx, 0, res, format)
		return err
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if output == "" {
		output = outputPath(input, format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Rendered %s", format)
	printFile(output)
	printStats(res.Stats, res.CacheHit)
	if format == pipeline.FormatDOT {
		printNewline()
		printNextStep("Render with Graphviz", "dot -Tsvg "+output)
	}
	return nil
}

// outputPath derives the default output file from the input path.
func outputPath(input, format string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + fileExtensions[format]
}
