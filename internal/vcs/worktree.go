package vcs

import (
	"context"
	"sort"
	"strings"

	"github.com/sqve/cradar/internal/errors"
	"github.com/sqve/cradar/internal/logger"
)

// Inspect resolves the remaining fields of a WorkingTree discovered by
// ListWorktrees: HeadCommit is already known from the porcelain listing, so
// this fills in Status by diffing the working directory against the index.
// It never writes to the worktree.
func Inspect(ctx context.Context, wt WorkingTree) (WorkingTree, error) {
	if wt.HeadCommit.Empty() {
		return WorkingTree{}, errors.ErrNoCommits(wt.ID, nil)
	}

	dirty, err := isDirty(ctx, wt.Path)
	if err != nil {
		return WorkingTree{}, errors.ErrIoFailure("status "+wt.ID, err)
	}

	wt.Status = StatusClean
	if dirty {
		wt.Status = StatusDirty
	}
	return wt, nil
}

// InspectAll resolves every entry of trees, excluding (with a logged,
// non-fatal warning) any whose head does not resolve, and returns the
// deterministically ordered WorkingTreeSet: primary first, then linked
// trees sorted by id.
func InspectAll(ctx context.Context, trees []WorkingTree) (WorkingTreeSet, []Warning) {
	var primary *WorkingTree
	var linked []WorkingTree
	var warnings []Warning

	for _, wt := range trees {
		inspected, err := Inspect(ctx, wt)
		if err != nil {
			warnings = append(warnings, Warning{Subject: wt.ID, Err: err})
			logger.Warn("excluding worktree with unresolvable head", "id", wt.ID, "error", err)
			continue
		}
		if inspected.ID == "main" {
			primary = &inspected
			continue
		}
		linked = append(linked, inspected)
	}

	sort.Slice(linked, func(i, j int) bool { return linked[i].ID < linked[j].ID })

	var set WorkingTreeSet
	if primary != nil {
		set = append(set, *primary)
	}
	set = append(set, linked...)
	return set, warnings
}

// isDirty reports whether the worktree's working directory differs from
// its index or head, via `git status --porcelain`.
func isDirty(ctx context.Context, path string) (bool, error) {
	out, err := StatusPorcelainForPath(ctx, path, "")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// StatusPorcelainForPath returns the trimmed `git status --porcelain`
// output for dir, restricted to relPath when non-empty. Used both for
// whole-tree dirtiness and for the Single-File Predicate's
// has_active_changes check on one path.
func StatusPorcelainForPath(ctx context.Context, dir, relPath string) (string, error) {
	args := []string{"status", "--porcelain"}
	if relPath != "" {
		args = append(args, "--", relPath)
	}
	out, err := run(ctx, dir, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
