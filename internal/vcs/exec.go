package vcs

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sqve/cradar/internal/config"
	"github.com/sqve/cradar/internal/errors"
	"github.com/sqve/cradar/internal/logger"
)

// MinGitVersion is the lowest git version whose `merge-tree --write-tree`
// accepts the --merge-base option Merge passes (added in git 2.40) and whose
// porcelain output this package's parser understands.
const MinGitVersion = "2.40"

// command builds an exec.Cmd for git rooted at dir, honoring the configured
// timeout. The returned cancel must be deferred by the caller even when no
// timeout is configured.
func command(ctx context.Context, dir string, arg ...string) (*exec.Cmd, context.CancelFunc) {
	cancel := func() {}
	if timeout := config.GitTimeout(); timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	}
	cmd := exec.CommandContext(ctx, "git", arg...)
	cmd.Dir = dir
	return cmd, cancel
}

// run executes a git command, capturing stdout; stderr is folded into the
// returned error. git's own streams are never connected to the host
// process; the command and its result go to the logger, a failure at error
// level.
func run(ctx context.Context, dir string, arg ...string) (string, error) {
	logger.GitCommand("git", arg)
	cmd, cancel := command(ctx, dir, arg...)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	logger.GitResult(strings.Join(arg, " "), err == nil, strings.TrimSpace(stdout.String()))
	if err != nil {
		return "", wrapExecError(arg[0], err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// runRaw is like run but returns the untrimmed byte stream and the process's
// exit code instead of folding a non-zero exit into an error; callers that
// need to distinguish "no conflicts" (exit 0) from "conflicts" (exit 1) from
// "real failure" (anything else, e.g. exit 128) use this.
func runRaw(ctx context.Context, dir string, arg ...string) (stdout []byte, exitCode int, err error) {
	logger.GitCommand("git", arg)
	cmd, cancel := command(ctx, dir, arg...)
	defer cancel()

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr == nil {
		return out.Bytes(), 0, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(runErr, &exitErr) {
		return out.Bytes(), exitErr.ExitCode(), nil
	}

	return nil, -1, wrapExecError(arg[0], runErr, stderr.String())
}

func wrapExecError(subcommand string, err error, stderr string) error {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return errors.ErrIoFailure("git "+subcommand, errors.Wrap(err, msg))
	}
	return errors.ErrIoFailure("git "+subcommand, err)
}

func trimOut(b []byte) string {
	return strings.TrimSpace(string(b))
}

// gitExitError builds an IoFailure for an exit code runRaw didn't
// recognize as a meaningful sentinel (i.e. anything beyond the caller's own
// "clean"/"conflict" codes), folding in whatever git wrote to stdout since
// runRaw only separates stdout from stderr, not failure detail.
func gitExitError(subcommand string, exitCode int, out []byte) error {
	return errors.ErrIoFailure(subcommand, fmt.Errorf("unexpected exit code %d: %s", exitCode, trimOut(out)))
}
