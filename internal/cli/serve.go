package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/columnview/internal/server"
	"github.com/matzehuels/columnview/pkg/metrics"
	"github.com/matzehuels/columnview/pkg/store"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		seed    string
		noCache bool
		src     sourceOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve graphs and their column layouts over HTTP",
		Long: `Serve graphs from the configured store over HTTP.

Endpoints: /api/graphs, /api/graphs/{id}, /api/graphs/{id}/layering,
/api/graphs/{id}/svg?format=..., /health and /metrics.

--seed copies <id>.json/.yaml files from a directory into a writable store
(memory, redis or mongo) before serving.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src.local = true
			return c.runServe(cmd.Context(), listen, seed, noCache, src)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&src.backend, "store", "", "store backend: memory, dir, redis, mongo")
	cmd.Flags().StringVar(&src.dir, "dir", "", "graph directory (implies --store dir)")
	cmd.Flags().StringVar(&seed, "seed", "", "directory of graph files to load into the store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layering cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen, seed string, noCache bool, src sourceOpts) error {
	logger := loggerFromContext(ctx)
	if listen == "" {
		listen = c.cfg().Listen
	}

	st, err := c.openStore(ctx, src)
	if err != nil {
		return err
	}
	defer st.Close()

	if seed != "" {
		w, ok := st.(store.Writer)
		if !ok {
			return fmt.Errorf("--seed needs a writable store, not %T", st)
		}
		n, err := seedStore(ctx, w, seed)
		if err != nil {
			return err
		}
		logger.Info("seeded store", "graphs", n, "dir", seed)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	reg := metrics.NewRegistry()
	reg.Install()

	return server.New(st, runner, reg, logger).ListenAndServe(ctx, listen)
}
