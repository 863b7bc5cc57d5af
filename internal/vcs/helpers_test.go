package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a repository with one commit on its default branch and
// returns the working directory and that commit's id.
func initRepo(t *testing.T) (dir string, head CommitID) {
	t.Helper()
	dir = t.TempDir()
	runGit(t, dir, "init", "--initial-branch=main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test")

	writeFile(t, dir, "README.md", "hello\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "initial")

	return dir, CommitID(runGit(t, dir, "rev-parse", "HEAD"))
}

// addWorktree attaches a linked worktree at <repoDir>/../<name> on a new
// branch checked out from base, and returns its path and head commit.
func addWorktree(t *testing.T, repoDir, name, base string) (path string, head CommitID) {
	t.Helper()
	path = filepath.Join(filepath.Dir(repoDir), name)
	runGit(t, repoDir, "worktree", "add", "-b", name, path, base)
	return path, CommitID(runGit(t, path, "rev-parse", "HEAD"))
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

func commitAll(t *testing.T, dir, message string) CommitID {
	t.Helper()
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", message)
	return CommitID(runGit(t, dir, "rev-parse", "HEAD"))
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return trimOut(out)
}
