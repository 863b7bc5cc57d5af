package vcs

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"context"

	"github.com/sqve/cradar/internal/errors"
	"github.com/sqve/cradar/internal/logger"
)

// ErrGitTooOld is returned when the git binary on PATH predates MinGitVersion.
var ErrGitTooOld = stderrors.New("git version too old")

// CheckGitVersion runs `git version` and fails with ErrGitTooOld if it
// predates MinGitVersion, the lowest version whose `merge-tree --write-tree`
// accepts --merge-base and whose porcelain output this package's parser
// understands.
func CheckGitVersion(ctx context.Context) error {
	out, err := run(ctx, "", "version")
	if err != nil {
		return errors.ErrIoFailure("git version", err)
	}

	version, err := parseGitVersion(out)
	if err != nil {
		logger.Warn("could not parse git version output", "output", out, "error", err)
		return nil
	}

	if compareVersions(version, MinGitVersion) < 0 {
		return errors.ErrIoFailure("git version",
			fmt.Errorf("%w: found %s, need %s+", ErrGitTooOld, version, MinGitVersion))
	}
	return nil
}

func parseGitVersion(out string) (string, error) {
	fields := strings.Fields(out)
	for i, f := range fields {
		if f == "version" && i+1 < len(fields) {
			return fields[i+1], nil
		}
	}
	return "", fmt.Errorf("unrecognized git version output: %q", out)
}

// compareVersions compares dotted version strings numerically component by
// component, returning -1, 0, or 1. A component that does not parse as a
// number (e.g. the "windows" of a distro's "2.45.1.windows.1") counts as 0;
// the components after it are still compared.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var av, bv int
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}
