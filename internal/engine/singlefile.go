package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sqve/cradar/internal/errors"
	"github.com/sqve/cradar/internal/vcs"
)

// CheckFile runs the single-file predicate: it locates the working tree
// owning the absolute path absPath, translates it to a repository-relative
// path, and reports per-sibling whether a three-way merge against that
// sibling would conflict on the file, and whether the sibling's working
// directory already has uncommitted edits to it. Siblings showing neither
// are left out of the report.
func CheckFile(ctx context.Context, repo *vcs.Repository, worktrees vcs.WorkingTreeSet, absPath string) (*SingleFileReport, error) {
	owner, relPath, err := ownerAndRelPath(worktrees, absPath)
	if err != nil {
		return nil, err
	}

	report := &SingleFileReport{
		File:            relPath,
		CurrentWorktree: owner.ID,
		CurrentBranch:   owner.Branch,
	}

	for _, sibling := range worktrees {
		if sibling.ID == owner.ID {
			continue
		}

		a, b := owner, sibling
		if a.ID > b.ID {
			a, b = b, a
		}
		pair := computePair(ctx, repo, a, b)

		hasConflict := pair.Status == StatusConflict && containsPath(pair.ConflictingPaths, relPath)
		if pair.Status == StatusErrored {
			return nil, pair.Err
		}

		hasActiveChanges, err := pathHasActiveChanges(ctx, sibling.Path, relPath)
		if err != nil {
			return nil, err
		}
		if !hasConflict && !hasActiveChanges {
			continue
		}

		report.Conflicts = append(report.Conflicts, SiblingConflict{
			Worktree:         sibling.ID,
			Branch:           sibling.Branch,
			HasMergeConflict: hasConflict,
			HasActiveChanges: hasActiveChanges,
		})
	}

	return report, nil
}

// ExitCode implements the check command's exit-code contract: 0 when no
// sibling shows a conflict or active change for the file, 2 otherwise.
// Operational errors are signaled by CheckFile returning an error instead
// (exit 1), not through this function.
func (r *SingleFileReport) ExitCode() int {
	for _, c := range r.Conflicts {
		if c.HasMergeConflict || c.HasActiveChanges {
			return 2
		}
	}
	return 0
}

func ownerAndRelPath(worktrees vcs.WorkingTreeSet, absPath string) (vcs.WorkingTree, string, error) {
	abs, err := filepath.Abs(absPath)
	if err != nil {
		return vcs.WorkingTree{}, "", errors.ErrIoFailure("resolve path", err)
	}

	var best vcs.WorkingTree
	bestLen := -1
	for _, wt := range worktrees {
		root := filepath.Clean(wt.Path)
		if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
			continue
		}
		if len(root) > bestLen {
			best = wt
			bestLen = len(root)
		}
	}
	if bestLen == -1 {
		return vcs.WorkingTree{}, "", errors.ErrIoFailure("resolve path",
			fmt.Errorf("%s is not inside any known working tree", abs))
	}

	rel, err := filepath.Rel(best.Path, abs)
	if err != nil {
		return vcs.WorkingTree{}, "", errors.ErrIoFailure("resolve path", err)
	}
	return best, filepath.ToSlash(rel), nil
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}
	return false
}

// pathHasActiveChanges reports whether path has an uncommitted modification
// in the worktree rooted at dir, via `git status --porcelain -- <path>`.
func pathHasActiveChanges(ctx context.Context, dir, path string) (bool, error) {
	out, err := vcs.StatusPorcelainForPath(ctx, dir, path)
	if err != nil {
		return false, err
	}
	return out != "", nil
}
