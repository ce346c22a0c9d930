package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	m "github.com/agoda-com/muter/internal/model"
)

// LaunchError indicates the configured test command could not be started at
// all (missing executable, permission error). A broken baseline command makes
// every subsequent score meaningless, so this is a fatal configuration error
// rather than a per-mutation outcome.
type LaunchError struct {
	Executable string
	Arguments  []string
	Err        error
}

// Error describes the command line that failed to launch.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch test command %q: %v",
		strings.Join(append([]string{e.Executable}, e.Arguments...), " "), e.Err)
}

// Unwrap exposes the underlying launch failure.
func (e *LaunchError) Unwrap() error { return e.Err }

// TestRunnerAdapter abstracts executing the configured test command against
// the current working tree.
type TestRunnerAdapter interface {
	// RunTestSuite spawns the configured test command and blocks until it
	// terminates. Exit code 0 maps to Passed, any nonzero exit to Failed.
	// The returned output is the combined stdout/stderr of the child process,
	// kept only for diagnostics. A non-nil error is always a *LaunchError.
	RunTestSuite(ctx context.Context) (m.TestOutcome, string, error)
}

// LocalTestRunnerAdapter runs the test command as a child process via os/exec.
// No timeout is enforced on the subprocess.
type LocalTestRunnerAdapter struct {
	executable string
	arguments  []string
	workDir    m.Path
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter for the given
// command line, executed with workDir as the working directory.
func NewLocalTestRunnerAdapter(executable string, arguments []string, workDir m.Path) *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{
		executable: executable,
		arguments:  arguments,
		workDir:    workDir,
	}
}

// RunTestSuite executes the configured command and classifies its exit status.
func (a *LocalTestRunnerAdapter) RunTestSuite(ctx context.Context) (m.TestOutcome, string, error) {
	cmd := exec.CommandContext(ctx, a.executable, a.arguments...)
	cmd.Dir = string(a.workDir)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := stdout.String() + stderr.String()

	if err == nil {
		return m.Passed, output, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		slog.Debug("test command exited nonzero", "executable", a.executable, "code", exitErr.ExitCode())
		return m.Failed, output, nil
	}

	slog.Error("failed to launch test command", "executable", a.executable, "error", err)

	return m.Failed, output, &LaunchError{
		Executable: a.executable,
		Arguments:  a.arguments,
		Err:        err,
	}
}
