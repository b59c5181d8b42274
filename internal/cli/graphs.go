package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cverr "github.com/matzehuels/columnview/pkg/errors"
)

// graphsCommand lists the graphs a source offers.
func (c *CLI) graphsCommand() *cobra.Command {
	var (
		details bool
		src     sourceOpts
	)

	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "List available graphs",
		Long: `List the graph IDs offered by a columnview server (api_url), or by the
configured store with --local.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraphs(cmd.Context(), src, details)
		},
	}

	cmd.Flags().BoolVarP(&details, "details", "d", false, "fetch each graph and show its size")
	addSourceFlags(cmd, &src)

	return cmd
}

func addSourceFlags(cmd *cobra.Command, src *sourceOpts) {
	cmd.Flags().StringVar(&src.apiURL, "api-url", "", "columnview server URL (default from config)")
	cmd.Flags().BoolVar(&src.local, "local", false, "read from the configured store instead of a server")
	cmd.Flags().StringVar(&src.backend, "store", "", "store backend: memory, dir, redis, mongo (implies --local)")
	cmd.Flags().StringVar(&src.dir, "dir", "", "graph directory (implies --local --store dir)")
}

func (c *CLI) runGraphs(ctx context.Context, src sourceOpts, details bool) error {
	st, err := c.openSource(ctx, src, nil)
	if err != nil {
		return err
	}
	defer st.Close()

	var ids []int
	err = withSpinner(ctx, "Fetching graphs...", func() error {
		ids, err = st.List(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", cverr.MsgUnavailable, err)
	}

	if len(ids) == 0 {
		printInfo("No graphs available")
		return nil
	}
	for _, id := range ids {
		if !details {
			fmt.Println(StyleNumber.Render(strconv.Itoa(id)))
			continue
		}
		g, err := st.Get(ctx, id)
		if err != nil {
			printKeyValue(strconv.Itoa(id), StyleError.Render(cverr.MsgUnavailable))
			continue
		}
		printKeyValue(strconv.Itoa(id), fmt.Sprintf("%d nodes, %d edges", len(g.Nodes), len(g.Edges)))
	}
	return nil
}
