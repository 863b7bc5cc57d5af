package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sqve/cradar/internal/logger"
	"github.com/sqve/cradar/internal/report"
	"github.com/sqve/cradar/internal/watch"
)

// NewWatchCmd creates the watch command: the filesystem-driven live
// watcher, streaming a fresh ConflictReport snapshot after every quiesced
// burst of working-tree mutations until interrupted.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream conflict reports as the working trees change",
		Long: `Watches every working tree's filesystem path and re-runs the pairwise
conflict engine after each debounced burst of mutations, writing one
newline-delimited JSON ConflictReport document per run to standard output
for an external dashboard to consume. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd.OutOrStdout())
		},
	}
	return cmd
}

func runWatch(ctx context.Context, out io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := resolveRepository(ctx)
	if err != nil {
		return err
	}
	printWarnings(r.warnings)

	observer, err := watch.New(r.repo, r.worktrees)
	if err != nil {
		return err
	}

	sink := report.NewJSONSink(out)

	runErr := make(chan error, 1)
	go func() { runErr <- observer.Run(ctx, r.worktrees) }()

	for conflictReport := range observer.Reports() {
		if err := sink.EmitReport(conflictReport); err != nil {
			logger.Warn("failed to emit watch report", "error", err)
		}
	}

	return <-runErr
}
