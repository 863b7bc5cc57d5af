// Package engine implements the pairwise conflict engine: the orchestrator
// that composes the repository probe, working-tree inspector, merge-base
// oracle, and three-way tree merger over every pair of a repository's
// working trees, plus the single-file specialization used by pre-write
// hooks.
package engine

import "github.com/sqve/cradar/internal/vcs"

// PairStatus classifies how a pair of working trees relates.
type PairStatus string

const (
	// StatusConflict means the three-way merge found at least one
	// conflicting path.
	StatusConflict PairStatus = "CONFLICT"
	// StatusClean means the merge resolved with no conflicts.
	StatusClean PairStatus = "CLEAN"
	// StatusUnrelated means the pair shares no common ancestor.
	StatusUnrelated PairStatus = "UNRELATED"
	// StatusErrored means the merge step itself failed; the pair is
	// reported rather than aborting the whole run.
	StatusErrored PairStatus = "ERRORED"
)

// ConflictPair is the engine's per-pair verdict for two working trees drawn
// from the same WorkingTreeSet, always oriented wt_a_id < wt_b_id.
type ConflictPair struct {
	WtAID            string
	WtBID            string
	BaseCommit       vcs.CommitID // empty when Status is StatusUnrelated
	ConflictingPaths []string
	Status           PairStatus
	Err              error // set only when Status is StatusErrored
}

// ConflictReport is the full pairwise result for one repository snapshot:
// the WorkingTreeSet it was computed from, plus one ConflictPair per
// unordered pair of distinct working trees.
type ConflictReport struct {
	Worktrees vcs.WorkingTreeSet
	Pairs     []ConflictPair
}

// SiblingConflict is one sibling's verdict for a single queried file.
type SiblingConflict struct {
	Worktree          string
	Branch            vcs.BranchName
	HasMergeConflict  bool
	HasActiveChanges  bool
}

// SingleFileReport is the result of the single-file predicate: whether one
// file, as seen from its owning working tree, would conflict against each
// sibling. Conflicts lists only the siblings that show a merge conflict or
// active changes for the file.
type SingleFileReport struct {
	File            string
	CurrentWorktree string
	CurrentBranch   vcs.BranchName
	Conflicts       []SiblingConflict
}
