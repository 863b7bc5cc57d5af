package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/sqve/cradar/internal/report"
)

// NewStatusCmd creates the status command: a synchronous, one-shot snapshot
// of every pairwise conflict prediction across the repository's working trees.
func NewStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Predict merge conflicts between every pair of checked-out working trees",
		Long: `Enumerates every working tree attached to the current repository, locates
the merge base for each pair, and reports which pairs would conflict on an
in-memory three-way merge. Never writes to the repository or any working
directory.`,
		Args: cobra.NoArgs,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), cmd.OutOrStdout(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the ConflictReport as JSON")
	return cmd
}

func runStatus(ctx context.Context, out io.Writer, jsonOutput bool) error {
	r, err := resolveRepository(ctx)
	if err != nil {
		return err
	}
	printWarnings(r.warnings)

	conflictReport, err := computeReport(ctx, r)
	if err != nil {
		return err
	}

	return sinkFor(out, jsonOutput).EmitReport(conflictReport)
}

func sinkFor(out io.Writer, jsonOutput bool) report.Sink {
	if jsonOutput {
		return report.NewJSONSink(out)
	}
	return report.NewHumanSink(out)
}
