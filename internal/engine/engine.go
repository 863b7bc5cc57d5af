package engine

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sqve/cradar/internal/vcs"
)

// Compute builds a ConflictReport for an already-inspected working tree
// set, resolving every unordered pair's merge base and three-way merge
// concurrently against the shared, read-only object database. The only
// shared resource across goroutines is the repository's git process pool,
// which is safe for concurrent reads; results are re-sorted afterward so
// the report's ordering never depends on which pair finished first.
func Compute(ctx context.Context, repo *vcs.Repository, worktrees vcs.WorkingTreeSet) (*ConflictReport, error) {
	combos := combinations(worktrees)
	pairs := make([]ConflictPair, len(combos))

	g, gctx := errgroup.WithContext(ctx)
	for i, combo := range combos {
		i, combo := i, combo
		g.Go(func() error {
			pairs[i] = computePair(gctx, repo, combo[0], combo[1])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortPairs(pairs)

	return &ConflictReport{Worktrees: worktrees, Pairs: pairs}, nil
}

func sortPairs(pairs []ConflictPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].WtAID != pairs[j].WtAID {
			return pairs[i].WtAID < pairs[j].WtAID
		}
		return pairs[i].WtBID < pairs[j].WtBID
	})
}

// combinations returns every unordered pair of distinct working trees,
// oriented with the lexicographically smaller id first.
func combinations(worktrees vcs.WorkingTreeSet) [][2]vcs.WorkingTree {
	var out [][2]vcs.WorkingTree
	for i := 0; i < len(worktrees); i++ {
		for j := i + 1; j < len(worktrees); j++ {
			a, b := worktrees[i], worktrees[j]
			if a.ID > b.ID {
				a, b = b, a
			}
			out = append(out, [2]vcs.WorkingTree{a, b})
		}
	}
	return out
}

// computePair resolves one oriented pair (a.ID < b.ID). It never returns an
// error: a merge failure becomes a StatusErrored entry so that one bad pair
// doesn't abort the rest of the report, per the engine's error policy.
func computePair(ctx context.Context, repo *vcs.Repository, a, b vcs.WorkingTree) ConflictPair {
	pair := ConflictPair{WtAID: a.ID, WtBID: b.ID}

	base, ok, err := vcs.MergeBase(ctx, repo.Root(), a.HeadCommit, b.HeadCommit)
	if err != nil {
		pair.Status = StatusErrored
		pair.Err = err
		return pair
	}
	if !ok {
		pair.Status = StatusUnrelated
		return pair
	}
	pair.BaseCommit = base

	labels := vcs.Labels{Ancestor: "base", Current: string(a.Branch), Other: string(b.Branch)}
	result, err := vcs.Merge(ctx, repo.Root(), base, a.HeadCommit, b.HeadCommit, labels)
	if err != nil {
		pair.Status = StatusErrored
		pair.Err = err
		return pair
	}

	pair.ConflictingPaths = result.ConflictingPaths
	if len(result.ConflictingPaths) > 0 {
		pair.Status = StatusConflict
	} else {
		pair.Status = StatusClean
	}
	return pair
}
