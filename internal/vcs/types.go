package vcs

// BranchName is a git branch short name. A distinct type keeps it from being
// confused with a commit id or a filesystem path at call sites.
type BranchName string

func (b BranchName) String() string { return string(b) }

// Detached is the sentinel branch name reported for a worktree whose head
// does not resolve to a branch ref.
const Detached BranchName = "DETACHED"

// CommitID is a git object id, hex-encoded (40 chars for SHA-1, 64 for
// SHA-256 repositories). The package never interprets its bytes directly;
// it is always handed back to git verbatim.
type CommitID string

func (c CommitID) String() string { return string(c) }

// Empty reports whether no commit id is present, the representation used
// for an absent merge base.
func (c CommitID) Empty() bool { return c == "" }

// TreeID is a git tree object id.
type TreeID string

func (t TreeID) String() string { return string(t) }

// RepoPath is an absolute path to a repository's common git directory
// (what `git rev-parse --git-common-dir` reports), shared by the primary
// worktree and every linked worktree.
type RepoPath string

func (p RepoPath) String() string { return string(p) }

// Status classifies a working tree's cleanliness versus its index and head.
type Status string

const (
	StatusClean Status = "clean"
	StatusDirty Status = "dirty"
)

// WorkingTree is one checked-out working directory attached to a repository.
// The primary worktree always has ID "main"; linked worktrees use the
// basename of their on-disk path.
type WorkingTree struct {
	ID         string
	Path       string
	Branch     BranchName
	HeadCommit CommitID
	Status     Status
}

// WorkingTreeSet is the deterministic, ordered snapshot of a repository's
// working trees: the primary tree first, then linked trees sorted by ID.
type WorkingTreeSet []WorkingTree

// ByID returns the worktree with the given id, or false if none matches.
func (s WorkingTreeSet) ByID(id string) (WorkingTree, bool) {
	for _, wt := range s {
		if wt.ID == id {
			return wt, true
		}
	}
	return WorkingTree{}, false
}

// Labels names the three sides of a three-way merge for conflict-marker
// purposes. Only current/other are ever orientation-specific; ancestor is
// always the literal base label.
type Labels struct {
	Ancestor string
	Current  string
	Other    string
}
