package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/columnview/pkg/session"
)

// viewCommand opens the interactive column board.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		noCache bool
		src     sourceOpts
	)

	cmd := &cobra.Command{
		Use:   "view [graph-file...]",
		Short: "Browse graphs and swap nodes within a column",
		Long: `Open an interactive board of column layouts.

Graphs come from the files given as arguments, the configured store
(--local) or a columnview server (default). Pick a graph on the left, then
move the cursor with the arrow keys, press space to pick a node up, move onto
another node of the same column and press enter to swap them. Esc cancels.
Swaps are not saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), src, args, noCache)
		},
	}

	addSourceFlags(cmd, &src)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layering cache")

	return cmd
}

func (c *CLI) runView(ctx context.Context, src sourceOpts, files []string, noCache bool) error {
	st, err := c.openSource(ctx, src, files)
	if err != nil {
		return err
	}
	defer st.Close()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	// The board owns the terminal; only debug runs keep logging.
	logger := c.Logger
	if !c.verbose {
		logger = log.New(io.Discard)
	}
	runner.Logger = logger
	sess := session.New(st, runner, logger)
	loggerFromContext(ctx).Debug("starting view", "session", sess.ID)

	_, err = tea.NewProgram(newBoardModel(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
