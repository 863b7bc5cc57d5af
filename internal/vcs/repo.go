package vcs

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sqve/cradar/internal/errors"
	"github.com/sqve/cradar/internal/fs"
	"github.com/sqve/cradar/internal/logger"
)

// Repository is a handle on a single local source-control repository,
// opened at (or above) a caller-supplied path. Every vcs.* call against it
// is read-only.
type Repository struct {
	// CommonDir is the shared git directory (`git rev-parse --git-common-dir`),
	// the object database every worktree attached to this repository reads from.
	CommonDir string
	// root is the path the repository was opened at; used as cmd.Dir for
	// probe-level commands before any worktree is known.
	root string
}

// Root returns the path the repository was opened at. Any worktree's path
// would do equally well as cmd.Dir for a git command against the shared
// object database; Root is just the one guaranteed to exist at open time.
func (r *Repository) Root() string { return r.root }

// Warning is a non-fatal condition surfaced during a probe or inspection
// that excludes something from the result without aborting it.
type Warning struct {
	Subject string
	Err     error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Subject, w.Err)
}

// Open locates the repository containing path (walking up to the nearest
// ancestor that is a worktree root, mirroring how `git` itself resolves its
// working directory) and returns a handle to it. Returns ErrNotARepository
// if no repository is found.
func Open(ctx context.Context, path string) (*Repository, error) {
	root, err := fs.FindWorktreeRoot(path)
	if err != nil {
		return nil, errors.ErrNotARepository(path)
	}

	commonDir, err := run(ctx, root, "rev-parse", "--git-common-dir")
	if err != nil {
		return nil, errors.ErrNotARepository(path)
	}
	if !filepath.IsAbs(commonDir) {
		commonDir = filepath.Join(root, commonDir)
	}
	commonDir = filepath.Clean(commonDir)

	return &Repository{CommonDir: commonDir, root: root}, nil
}

// ListWorktrees enumerates the repository's primary and linked working
// trees via `git worktree list --porcelain`. Stale linked-worktree
// metadata (the record exists but the directory is gone) is skipped and
// reported as a non-fatal Warning rather than aborting the probe.
func (r *Repository) ListWorktrees(ctx context.Context) ([]WorkingTree, []Warning, error) {
	out, err := run(ctx, r.root, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, nil, err
	}

	type rawEntry struct {
		path     string
		head     string
		branch   string
		detached bool
	}

	var raw []rawEntry
	var cur *rawEntry
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "worktree "):
			raw = append(raw, rawEntry{path: filepath.FromSlash(strings.TrimPrefix(line, "worktree "))})
			cur = &raw[len(raw)-1]
		case strings.HasPrefix(line, "HEAD ") && cur != nil:
			cur.head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch ") && cur != nil:
			cur.branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "detached" && cur != nil:
			cur.detached = true
		}
	}

	if len(raw) == 0 {
		return nil, nil, errors.ErrNotARepository(r.root)
	}

	var trees []WorkingTree
	var warnings []Warning
	for i, e := range raw {
		if !fs.DirectoryExists(e.path) {
			warnings = append(warnings, Warning{
				Subject: e.path,
				Err:     fmt.Errorf("linked worktree directory no longer exists"),
			})
			logger.Warn("skipping stale worktree", "path", e.path)
			continue
		}

		id := "main"
		if i != 0 {
			id = filepath.Base(e.path)
		}

		branch := Detached
		if !e.detached && e.branch != "" {
			branch = BranchName(e.branch)
		}

		trees = append(trees, WorkingTree{
			ID:         id,
			Path:       e.path,
			Branch:     branch,
			HeadCommit: CommitID(e.head),
		})
	}

	if len(trees) == 0 {
		return nil, warnings, errors.ErrNotARepository(r.root)
	}

	return trees, warnings, nil
}
