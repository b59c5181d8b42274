// Package cli implements the columnview command-line interface.
//
// # Commands
//
//   - serve: run the HTTP API over a graph store
//   - layer: print the column layering of a graph file
//   - render: paint a graph file as SVG, PNG, PDF, DOT or JSON
//   - graphs: list the graphs a server offers
//   - view: browse graphs and swap nodes within a column interactively
//   - cache: inspect or clear the layering cache
//
// # Configuration
//
// Settings come from the TOML file named by --config (see internal/config),
// COLUMNVIEW_* environment variables and per-command flags, in that order.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/columnview/internal/config"
	"github.com/matzehuels/columnview/pkg/buildinfo"
	"github.com/matzehuels/columnview/pkg/cache"
	"github.com/matzehuels/columnview/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	config     *config.Config
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "columnview",
		Short: "Columnview lays out DAGs as columns you can rearrange",
		Long: `Columnview places every node of a directed acyclic graph in a column by
breadth-first leveling from its roots, draws the edges as straight lines
between columns, and lets you swap nodes within a column.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/columnview/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.layerCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.graphsCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	c.SetLogLevel(cfg.LogLevel())
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// cfg returns the loaded configuration, or defaults when setup has not run.
func (c *CLI) cfg() *config.Config {
	if c.config == nil {
		c.config = config.Default()
	}
	return c.config
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	ch, err := c.cfg().OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "error", err)
		ch = cache.NewNullCache()
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}
