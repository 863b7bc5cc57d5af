package vcs

import (
	"context"
	"testing"
)

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2.38", "2.38", 0},
		{"2.38.1", "2.38", 1},
		{"2.37", "2.38", -1},
		{"2.40.0", "2.38", 1},
		{"3.0", "2.38", 1},
	}
	for _, c := range cases {
		if got := compareVersions(c.a, c.b); sign(got) != sign(c.want) {
			t.Errorf("compareVersions(%q, %q) = %d, want sign %d", c.a, c.b, got, c.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestParseGitVersion(t *testing.T) {
	v, err := parseGitVersion("git version 2.43.0")
	if err != nil {
		t.Fatalf("parseGitVersion: %v", err)
	}
	if v != "2.43.0" {
		t.Errorf("expected 2.43.0, got %q", v)
	}

	if _, err := parseGitVersion("not git output"); err == nil {
		t.Error("expected error for unrecognized output")
	}
}

func TestCheckGitVersionPassesForInstalledGit(t *testing.T) {
	if err := CheckGitVersion(context.Background()); err != nil {
		t.Fatalf("CheckGitVersion: %v", err)
	}
}
