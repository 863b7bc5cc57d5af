package watch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sqve/cradar/internal/vcs"
)

func initRepo(t *testing.T) (dir string, head vcs.CommitID) {
	t.Helper()
	dir = t.TempDir()
	runGit(t, dir, "init", "--initial-branch=main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test")

	writeFile(t, dir, "README.md", "hello\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial")

	return dir, vcs.CommitID(runGit(t, dir, "rev-parse", "HEAD"))
}

func addWorktree(t *testing.T, repoDir, name, base string) (path string, head vcs.CommitID) {
	t.Helper()
	path = filepath.Join(filepath.Dir(repoDir), name)
	runGit(t, repoDir, "worktree", "add", "-b", name, path, base)
	return path, vcs.CommitID(runGit(t, path, "rev-parse", "HEAD"))
}

func writeFile(t *testing.T, dir, relPath, content string) {
	t.Helper()
	full := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", relPath, err)
	}
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return trimmed(out)
}

func trimmed(b []byte) string {
	s := string(b)
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func openWorktrees(t *testing.T, dir string) (*vcs.Repository, vcs.WorkingTreeSet) {
	t.Helper()
	ctx := context.Background()
	repo, err := vcs.Open(ctx, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	raw, warnings, err := repo.ListWorktrees(ctx)
	if err != nil {
		t.Fatalf("ListWorktrees: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	set, warnings := vcs.InspectAll(ctx, raw)
	if len(warnings) != 0 {
		t.Fatalf("unexpected inspect warnings: %v", warnings)
	}
	return repo, set
}
