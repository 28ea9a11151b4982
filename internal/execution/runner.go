package execution

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ExcerptSize bounds the trailing output kept for diagnostics and reports.
const ExcerptSize = 4096

// InterruptExitCode is reported for a child killed by cancellation.
const InterruptExitCode = 130

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string // Extra KEY=VALUE entries appended to the environment
}

// String renders the invocation for display.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result captures the observable outcome of an external process.
// The controller's contract with every external tool is limited to this.
type Result struct {
	ExitCode int
	Stdout   string // Full output for captured runs, trailing excerpt for streamed runs
	Stderr   string
	Err      error // Non-exit failures: binary missing, context canceled
}

// CommandRunner is the narrow interface every component invokes external
// tools through, so orchestration logic is testable against a fake.
type CommandRunner interface {
	// Run executes the command and captures its output.
	Run(ctx context.Context, cmd Command) Result
	// Stream executes the command with live output, keeping only a
	// trailing excerpt in the result.
	Stream(ctx context.Context, cmd Command) Result
	// LookPath reports where the named binary resolves, if at all.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr receive streamed output; default os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner streaming to the process's own stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes the command and captures stdout and stderr separately.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) Result {
	c := r.build(ctx, cmd)
	var stdout, stderr strings.Builder
	c.Stdout = &stdout
	c.Stderr = &stderr
	err := c.Run()
	return Result{
		ExitCode: exitCode(ctx, err),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      runError(ctx, err),
	}
}

// Stream executes the command with output flowing to the configured
// writers in real time; the result keeps only a trailing excerpt.
func (r *ExecRunner) Stream(ctx context.Context, cmd Command) Result {
	c := r.build(ctx, cmd)
	outTail := newTailWriter(ExcerptSize)
	errTail := newTailWriter(ExcerptSize)
	c.Stdout = io.MultiWriter(r.Stdout, outTail)
	c.Stderr = io.MultiWriter(r.Stderr, errTail)
	err := c.Run()
	return Result{
		ExitCode: exitCode(ctx, err),
		Stdout:   outTail.String(),
		Stderr:   errTail.String(),
		Err:      runError(ctx, err),
	}
}

// LookPath resolves a binary on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// WithOutput returns a runner whose streamed output goes to w instead of
// the process's stdio. Only the exec-backed runner carries writers to
// redirect; any other runner is returned unchanged, so a stub wired in
// for tests stays in place.
func WithOutput(r CommandRunner, w io.Writer) CommandRunner {
	if _, ok := r.(*ExecRunner); ok {
		return &ExecRunner{Stdout: w, Stderr: w}
	}
	return r
}

func (r *ExecRunner) build(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	return c
}

// exitCode maps an exec error to the process exit code. A child killed by
// cancellation reports the conventional interrupt code.
func exitCode(ctx context.Context, err error) int {
	if err == nil {
		return 0
	}
	if ctx.Err() != nil {
		return InterruptExitCode
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// runError keeps only non-exit failures; a plain non-zero exit is fully
// described by the exit code and is not an error at this layer.
func runError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

// tailWriter keeps the last max bytes written through it.
type tailWriter struct {
	max int
	buf []byte
}

func newTailWriter(max int) *tailWriter {
	return &tailWriter{max: max}
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	if len(w.buf) > w.max {
		w.buf = w.buf[len(w.buf)-w.max:]
	}
	return len(p), nil
}

func (w *tailWriter) String() string {
	return string(w.buf)
}
