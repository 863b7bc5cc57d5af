package vcs

import (
	"context"
)

// MergeBase returns the best common ancestor of a and b, resolved by
// `git merge-base`, which also governs criss-cross tie-breaking: the
// Merger in merge.go is handed this exact commit, so oracle and merger
// never disagree on which ancestor was used.
//
// Returns ("", false, nil) when the commits share no history — the pair
// is UNRELATED, not an error.
func MergeBase(ctx context.Context, repoDir string, a, b CommitID) (CommitID, bool, error) {
	out, exitCode, err := runRaw(ctx, repoDir, "merge-base", a.String(), b.String())
	if err != nil {
		return "", false, err
	}
	switch exitCode {
	case 0:
		return CommitID(trimOut(out)), true, nil
	case 1:
		return "", false, nil
	default:
		return "", false, gitExitError("merge-base", exitCode, out)
	}
}
