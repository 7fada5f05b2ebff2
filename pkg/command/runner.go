// Package command is the single doorway pkgbasify uses to talk to external
// tools. Everything that shells out goes through a Runner so tests can
// substitute a scripted fake without touching the host.
package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/rs/zerolog"
)

// Result is the outcome of one external command
type Result struct {
	Status int
	Stdout string
	Stderr string
}

// OK reports a zero exit status
func (r Result) OK() bool {
	return r.Status == 0
}

// Lines splits stdout into trimmed, non-empty lines
func (r Result) Lines() []string {
	var lines []string
	for _, line := range strings.Split(r.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Runner invokes external commands synchronously.
//
// A command that ran and exited non-zero is not an error: its status is in
// Result.Status. The error return is reserved for commands that could not be
// started at all or were cancelled.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands on the host
type ExecRunner struct {
	logger zerolog.Logger
}

// NewExecRunner creates a Runner backed by os/exec
func NewExecRunner() *ExecRunner {
	return &ExecRunner{logger: logging.GetLogger("command")}
}

// Run executes name with args and captures its output
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	logging.LogCommand(name, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		result.Status = exitErr.ExitCode()
		err = nil
	default:
		result.Status = -1
		return result, err
	}

	r.logger.Trace().
		Str("command", name).
		Int("status", result.Status).
		Int("stdoutBytes", stdout.Len()).
		Str("stderr", strings.TrimSpace(result.Stderr)).
		Msg("Command finished")
	return result, nil
}
