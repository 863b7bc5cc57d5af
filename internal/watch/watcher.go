// Package watch implements the change observer: a filesystem-driven live
// watcher that re-runs the pairwise conflict engine on mutation events,
// debounced and with cancellation of superseded recomputes.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sqve/cradar/internal/config"
	"github.com/sqve/cradar/internal/engine"
	"github.com/sqve/cradar/internal/errors"
	"github.com/sqve/cradar/internal/logger"
	"github.com/sqve/cradar/internal/vcs"
)

// ignoreNames are directory basenames never watched and never treated as a
// trigger event: the repository metadata directory plus the conventional
// ignore patterns.
var ignoreNames = map[string]bool{
	".git":         true,
	"node_modules": true,
	".DS_Store":    true,
}

// Observer watches every working tree's filesystem path and streams
// debounced, cancellable recomputes of the pairwise conflict engine.
type Observer struct {
	repo     *vcs.Repository
	watcher  *fsnotify.Watcher
	reports  chan *engine.ConflictReport
	debounce time.Duration
}

// New builds an Observer over worktrees' paths, registering a recursive
// fsnotify watch on each (subdirectories under the repository metadata
// directory and conventional ignore patterns are skipped). A worktree that
// fails to register is logged and excluded; it does not abort construction.
func New(repo *vcs.Repository, worktrees vcs.WorkingTreeSet) (*Observer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.ErrIoFailure("watch registration", err)
	}

	for _, wt := range worktrees {
		if err := addRecursive(w, wt.Path); err != nil {
			logger.Warn("failed to register filesystem watch", "worktree", wt.ID, "error", err)
		}
	}

	return &Observer{
		repo:     repo,
		watcher:  w,
		reports:  make(chan *engine.ConflictReport),
		debounce: config.DebounceInterval(),
	}, nil
}

// Reports returns the cold stream of ConflictReport snapshots. Each value
// is a complete recompute, never a diff.
func (o *Observer) Reports() <-chan *engine.ConflictReport {
	return o.reports
}

// Run ingests filesystem events and schedules recomputes until ctx is
// cancelled, then closes the report stream. A burst of events within one
// debounce window produces at most one recompute; a recompute already in
// flight is cancelled the moment a new event arrives, and the worker waits
// for that cancellation to land before starting the next one, so exactly
// one recompute ever executes at a time.
func (o *Observer) Run(ctx context.Context, worktrees vcs.WorkingTreeSet) error {
	defer close(o.reports)
	defer o.watcher.Close()

	timer := time.NewTimer(o.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	var pending bool
	cancelCurrent := func() {}
	recomputeDone := make(chan struct{}, 1)
	recomputeDone <- struct{}{}

	for {
		select {
		case <-ctx.Done():
			cancelCurrent()
			return nil

		case event, ok := <-o.watcher.Events:
			if !ok {
				return nil
			}
			if ignoredEvent(event) {
				continue
			}
			cancelCurrent()
			pending = true
			resetTimer(timer, o.debounce)

		case err, ok := <-o.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("filesystem watch error", "error", err)

		case <-timer.C:
			if !pending {
				continue
			}
			select {
			case <-recomputeDone:
			case <-ctx.Done():
				return nil
			}
			pending = false

			recomputeCtx, cancel := context.WithCancel(ctx)
			cancelCurrent = cancel
			go func() {
				defer func() { recomputeDone <- struct{}{} }()
				o.recompute(recomputeCtx, worktrees)
			}()
		}
	}
}

func (o *Observer) recompute(ctx context.Context, worktrees vcs.WorkingTreeSet) {
	report, err := engine.Compute(ctx, o.repo, worktrees)
	if err != nil {
		if ctx.Err() != nil {
			return // superseded by a newer event; not a real failure
		}
		logger.Warn("watch recompute failed", "error", err)
		return
	}

	select {
	case o.reports <- report:
	case <-ctx.Done():
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // best-effort: skip entries we can't stat, don't abort the walk
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignoreNames[d.Name()] {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

func ignoredEvent(event fsnotify.Event) bool {
	return ignoredEventPath(event.Name)
}

func ignoredEventPath(name string) bool {
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if ignoreNames[part] {
			return true
		}
	}
	return false
}
