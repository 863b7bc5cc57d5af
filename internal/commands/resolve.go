// Package commands wires cobra command definitions for cradar's CLI
// surface (status, check, watch) onto the vcs/engine/watch/report packages.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sqve/cradar/internal/engine"
	"github.com/sqve/cradar/internal/vcs"
)

// resolved bundles the state every command needs after opening the
// repository and inspecting its working trees: the repository handle, the
// ordered working-tree set, and any non-fatal probe warnings to surface.
type resolved struct {
	repo      *vcs.Repository
	worktrees vcs.WorkingTreeSet
	warnings  []vcs.Warning
}

// resolveRepository runs the doctor-style preflight (git on PATH, version
// new enough) then opens the repository containing the current directory
// and inspects its working trees. Failing any of these is an operational
// error, not a data-shape one, so callers translate it straight to exit 1.
func resolveRepository(ctx context.Context) (*resolved, error) {
	if err := vcs.CheckGitVersion(ctx); err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	repo, err := vcs.Open(ctx, cwd)
	if err != nil {
		return nil, err
	}

	raw, listWarnings, err := repo.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	set, inspectWarnings := vcs.InspectAll(ctx, raw)
	if len(set) == 0 {
		return nil, fmt.Errorf("no working trees could be inspected")
	}

	warnings := append(listWarnings, inspectWarnings...)
	return &resolved{repo: repo, worktrees: set, warnings: warnings}, nil
}

func printWarnings(warnings []vcs.Warning) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}
}

func computeReport(ctx context.Context, r *resolved) (*engine.ConflictReport, error) {
	return engine.Compute(ctx, r.repo, r.worktrees)
}
