package vcs

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"

	"github.com/sqve/cradar/internal/errors"
)

// MergeResult is the structured outcome of a three-way tree merge: the
// written result tree and every path the merge could not reconcile
// automatically. Messages carries any informational text git attached
// (e.g. rename-detection notes); it is diagnostic only.
type MergeResult struct {
	TreeID           TreeID
	ConflictingPaths []string
	Messages         []string
}

// Merge performs an in-memory three-way merge of commits a and b against
// their merge base, wrapping `git merge-tree --write-tree`. It never
// touches the index or any working directory, and never re-implements the
// textual merge itself: conflict verdicts come straight from git, so
// cradar's results are exactly as correct as the reference tool's.
//
// labels.Current/labels.Other name the two sides in the MergeFailure error
// returned when the merge fails; the modern write-tree porcelain does not
// expose custom marker text the way the deprecated `-L` form of the old
// recursive merge did.
func Merge(ctx context.Context, repoDir string, base, a, b CommitID, labels Labels) (*MergeResult, error) {
	args := []string{
		"merge-tree",
		"--write-tree",
		"--name-only",
		"-z",
	}
	if !base.Empty() {
		args = append(args, "--merge-base="+base.String())
	}
	args = append(args, a.String(), b.String())

	out, exitCode, err := runRaw(ctx, repoDir, args...)
	if err != nil {
		return nil, errors.ErrMergeFailure(labels.Current, labels.Other, err)
	}

	// Exit code 0: merge succeeded cleanly. Exit code 1: merge completed
	// with conflicts, result tree still written. Anything else: real failure.
	if exitCode != 0 && exitCode != 1 {
		return nil, errors.ErrMergeFailure(labels.Current, labels.Other,
			gitExitError("merge-tree", exitCode, out))
	}

	return parseMergeTreeOutput(out)
}

// parseMergeTreeOutput decodes the NUL-delimited `--write-tree --name-only -z`
// stream: a tree oid, then conflicted paths, then free-text messages, each
// section terminated by an empty token.
func parseMergeTreeOutput(out []byte) (*MergeResult, error) {
	fields := strings.Split(string(out), "\x00")
	if len(fields) == 0 || fields[0] == "" {
		return nil, errors.ErrMergeFailure("", "", stderrors.New("malformed merge-tree output: missing tree oid"))
	}

	result := &MergeResult{TreeID: TreeID(fields[0])}
	fields = fields[1:]

	i := 0
	for i < len(fields) && fields[i] != "" {
		result.ConflictingPaths = append(result.ConflictingPaths, toForwardSlash(fields[i]))
		i++
	}
	i++ // skip section-terminating empty token

	for i < len(fields) {
		if fields[i] != "" {
			result.Messages = append(result.Messages, fields[i])
		}
		i++
	}

	sort.Strings(result.ConflictingPaths)
	result.ConflictingPaths = dedupSorted(result.ConflictingPaths)

	return result, nil
}

func toForwardSlash(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

func dedupSorted(paths []string) []string {
	if len(paths) < 2 {
		return paths
	}
	out := paths[:1]
	for _, p := range paths[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
