package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqve/cradar/internal/engine"
	"github.com/sqve/cradar/internal/report"
)

// NewCheckCmd creates the check command: the single-file predicate used by
// pre-write hooks to ask "will editing this file conflict with a sibling?"
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Report whether a single file conflicts with any sibling working tree",
		Long: `Locates the working tree that owns the given path, then checks every other
working tree for an overlapping conflict or an uncommitted edit to the same
file. If no file is given, one path is read from standard input.

Exit code 0 means the file is clear, 2 means at least one sibling conflicts
or has an active edit, 1 means the check itself could not be completed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runCheck(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args)
			if err != nil {
				return err
			}
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
	}
	return cmd
}

// runCheck performs the single-file predicate and returns the exit code
// spec'd for the check command (0 clean, 2 conflict/active-change) without
// exiting the process, so it can be exercised directly in tests; only the
// cobra RunE wrapper above calls os.Exit.
func runCheck(ctx context.Context, in io.Reader, out io.Writer, args []string) (int, error) {
	path, err := checkTarget(in, args)
	if err != nil {
		return 0, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolving %s: %w", path, err)
	}

	r, err := resolveRepository(ctx)
	if err != nil {
		return 0, err
	}
	printWarnings(r.warnings)

	singleFileReport, err := engine.CheckFile(ctx, r.repo, r.worktrees, absPath)
	if err != nil {
		return 0, err
	}

	if err := report.NewJSONSink(out).EmitSingleFileReport(singleFileReport); err != nil {
		return 0, err
	}

	return singleFileReport.ExitCode(), nil
}

func checkTarget(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading file path from standard input: %w", err)
		}
		return "", fmt.Errorf("no file given and standard input was empty")
	}

	path := strings.TrimSpace(scanner.Text())
	if path == "" {
		return "", fmt.Errorf("no file given and standard input was empty")
	}
	return path, nil
}
