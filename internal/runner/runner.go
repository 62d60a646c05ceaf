// Package runner executes external commands for macbox.
//
// All side effects of a build go through the Runner interface: helper
// scripts, vagrant, and privilege escalation via sudo. Callers describe a
// Command and the Privilege it needs; the Runner decides the final argv.
//
// In production this is satisfied by *ExecRunner. In tests, packages use
// hand-written fakes that record commands instead of running them.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// ErrCommandFailed is returned when a command exits non-zero.
var ErrCommandFailed = errors.New("command failed")

// Privilege is the privilege level a command must run with.
type Privilege int

const (
	// Unprivileged commands run as the invoking (non-root) user.
	Unprivileged Privilege = iota
	// Elevated commands run as root.
	Elevated
)

// String returns the privilege name used in logs.
func (p Privilege) String() string {
	if p == Elevated {
		return "elevated"
	}
	return "unprivileged"
}

// Command is an external program invocation.
//
// By default stdout is captured into the Result. A Stream command instead
// writes stdout to the user and reads stdin from the user, for long-running
// build steps whose progress should stay visible.
type Command struct {
	Name      string
	Args      []string
	Privilege Privilege
	Stream    bool
}

// String renders the command for logs and error messages.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

// Result is the outcome of a command that ran to completion. Stdout is
// empty for Stream commands.
type Result struct {
	Stdout   string
	ExitCode int
}

// Runner runs commands.
//
// Run returns an error only when the command could not be run at all; a
// command that ran and exited non-zero yields a Result with that ExitCode.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// RunChecked runs cmd and turns a non-zero exit into an error wrapping
// ErrCommandFailed.
func RunChecked(ctx context.Context, r Runner, cmd Command) (Result, error) {
	res, err := r.Run(ctx, cmd)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, fmt.Errorf("%w: non-zero exit code %d: %s", ErrCommandFailed, res.ExitCode, cmd)
	}
	return res, nil
}

// Streams are the user's terminal streams handed to commands.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdStreams returns the process's own stdin, stdout and stderr.
func StdStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// ExecRunner runs commands with os/exec. Stderr is always passed through so
// the user sees script progress; stdout is captured unless the command
// streams.
type ExecRunner struct {
	privileges Privileges
	streams    Streams
	logger     *slog.Logger
}

// NewExecRunner creates an ExecRunner applying the given privilege policy.
// Nil streams default to the process's own; a nil logger to slog.Default().
func NewExecRunner(p Privileges, streams Streams, logger *slog.Logger) *ExecRunner {
	std := StdStreams()
	if streams.Stdin == nil {
		streams.Stdin = std.Stdin
	}
	if streams.Stdout == nil {
		streams.Stdout = std.Stdout
	}
	if streams.Stderr == nil {
		streams.Stderr = std.Stderr
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{privileges: p, streams: streams, logger: logger}
}

// Run executes cmd to completion.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	argv := r.privileges.Argv(cmd)
	r.logger.Debug("running command", "argv", strings.Join(argv, " "), "privilege", cmd.Privilege.String(), "stream", cmd.Stream)

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = r.streams.Stderr
	if cmd.Stream {
		c.Stdin = r.streams.Stdin
		c.Stdout = r.streams.Stdout
	}

	err := c.Run()
	res := Result{Stdout: stdout.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("failed to run %s: %w", cmd, err)
	}
	return res, nil
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
