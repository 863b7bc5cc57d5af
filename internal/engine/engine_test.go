package engine

import (
	"context"
	"testing"
)

func TestComputePairCount(t *testing.T) {
	dir, head := initRepo(t)
	addWorktree(t, dir, "feat-a", head.String())
	addWorktree(t, dir, "feat-b", head.String())

	repo, worktrees := openWorktrees(t, dir)
	report, err := Compute(context.Background(), repo, worktrees)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	n := len(worktrees)
	want := n * (n - 1) / 2
	if len(report.Pairs) != want {
		t.Fatalf("expected %d pairs for %d worktrees, got %d", want, n, len(report.Pairs))
	}
}

func TestComputeOrdersPairsLexicographically(t *testing.T) {
	dir, head := initRepo(t)
	addWorktree(t, dir, "zzz", head.String())
	addWorktree(t, dir, "aaa", head.String())

	repo, worktrees := openWorktrees(t, dir)
	report, err := Compute(context.Background(), repo, worktrees)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	for i := 1; i < len(report.Pairs); i++ {
		prev, cur := report.Pairs[i-1], report.Pairs[i]
		if prev.WtAID > cur.WtAID || (prev.WtAID == cur.WtAID && prev.WtBID > cur.WtBID) {
			t.Fatalf("pairs not lexicographically ordered: %+v before %+v", prev, cur)
		}
	}
	for _, p := range report.Pairs {
		if p.WtAID >= p.WtBID {
			t.Errorf("pair not canonically oriented: %+v", p)
		}
	}
}

func TestComputeDetectsCleanPair(t *testing.T) {
	dir, head := initRepo(t)
	pathA, _ := addWorktree(t, dir, "feat-a", head.String())
	writeFile(t, pathA, "a.txt", "a\n")
	commitAll(t, pathA, "add a")

	repo, worktrees := openWorktrees(t, dir)
	report, err := Compute(context.Background(), repo, worktrees)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(report.Pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(report.Pairs))
	}
	if report.Pairs[0].Status != StatusClean {
		t.Errorf("expected clean pair, got %s", report.Pairs[0].Status)
	}
}

func TestComputeDetectsConflict(t *testing.T) {
	dir, head := initRepo(t)
	writeFile(t, dir, "shared.txt", "one\ntwo\nthree\n")
	head = commitAll(t, dir, "seed")

	pathA, _ := addWorktree(t, dir, "feat-a", head.String())
	writeFile(t, pathA, "shared.txt", "one\nA\nthree\n")
	commitAll(t, pathA, "edit a")

	pathB, _ := addWorktree(t, dir, "feat-b", head.String())
	writeFile(t, pathB, "shared.txt", "one\nB\nthree\n")
	commitAll(t, pathB, "edit b")

	repo, worktrees := openWorktrees(t, dir)
	report, err := Compute(context.Background(), repo, worktrees)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	var found bool
	for _, p := range report.Pairs {
		if p.WtAID == "feat-a" && p.WtBID == "feat-b" {
			found = true
			if p.Status != StatusConflict {
				t.Errorf("expected conflict status, got %s", p.Status)
			}
			if len(p.ConflictingPaths) != 1 || p.ConflictingPaths[0] != "shared.txt" {
				t.Errorf("expected conflict on shared.txt, got %v", p.ConflictingPaths)
			}
		}
	}
	if !found {
		t.Fatal("expected a feat-a/feat-b pair in the report")
	}
}

func TestComputeNeverEmitsSelfPair(t *testing.T) {
	dir, head := initRepo(t)
	addWorktree(t, dir, "feat-a", head.String())

	repo, worktrees := openWorktrees(t, dir)
	report, err := Compute(context.Background(), repo, worktrees)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	for _, p := range report.Pairs {
		if p.WtAID == p.WtBID {
			t.Fatalf("engine emitted a self pair: %+v", p)
		}
	}
}
