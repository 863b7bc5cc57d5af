// Package fs provides small filesystem helpers shared across cradar's packages.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirGit is the permission used for directories the build tooling and
	// test fixtures create (e.g. bin/, coverage/); it matches what git
	// itself uses.
	DirGit = 0o755

	// MaxDirectoryIterations bounds upward directory walks (repository root
	// discovery, worktree root discovery) against symlink loops.
	MaxDirectoryIterations = 256
)

// Common git filesystem paths.
const (
	GitDir = ".git"
)

// CradarConfig is the project-local config file name, checked in the
// primary working tree before the user config directory.
const CradarConfig = ".cradar.toml"

// PathExists reports whether path exists, regardless of type.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists reports whether path exists and is a directory.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FindWorktreeRoot walks up from startPath to find the nearest ancestor
// holding a .git entry (a directory for the primary worktree, a gitfile for
// a linked one). Returns an error if none is found within
// MaxDirectoryIterations, guarding against symlink loops.
func FindWorktreeRoot(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}

	dir := absPath
	for i := 0; i < MaxDirectoryIterations; i++ {
		if PathExists(filepath.Join(dir, GitDir)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a git working tree: %s", startPath)
		}
		dir = parent
	}
	return "", fmt.Errorf("exceeded maximum directory depth (%d): possible symlink loop", MaxDirectoryIterations)
}
