// SPDX-License-Identifier: MPL-2.0

package exectool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// ErrToolFailed is the sentinel error wrapped by ToolError.
var ErrToolFailed = errors.New("external tool failed")

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Option configures a Tool.
	Option func(*Tool)

	// Tool invokes one external binary.
	Tool struct {
		binary      string
		execCommand ExecCommandFunc
		stderr      io.Writer
		logger      *log.Logger
	}

	// ToolError describes a failed invocation. It wraps both ErrToolFailed and
	// the underlying exec error (usually *exec.ExitError).
	ToolError struct {
		Binary   string
		Args     []string
		Dir      string
		ExitCode int
		Err      error
	}
)

// WithExecCommand replaces exec.CommandContext, primarily for tests.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(t *Tool) {
		t.execCommand = fn
	}
}

// WithStderr sets where the tool's stderr is forwarded. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(t *Tool) {
		t.stderr = w
	}
}

// WithLogger sets the logger used for debug command traces.
func WithLogger(l *log.Logger) Option {
	return func(t *Tool) {
		t.logger = l
	}
}

// New creates a Tool for binary, which is resolved through PATH at run time.
func New(binary string, opts ...Option) *Tool {
	t := &Tool{
		binary:      binary,
		execCommand: exec.CommandContext,
		stderr:      os.Stderr,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Binary returns the configured binary name or path.
func (t *Tool) Binary() string {
	return t.binary
}

// Output runs the tool in dir (the current directory when empty) and returns
// its stdout. It blocks until the process exits.
func (t *Tool) Output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := t.execCommand(ctx, t.binary, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = t.stderr

	t.logger.Debug("running tool", "cmd", CommandLine(t.binary, args), "dir", dir)

	if err := cmd.Run(); err != nil {
		return "", t.newError(args, dir, err)
	}
	return out.String(), nil
}

// Run is Output for callers that have no use for stdout.
func (t *Tool) Run(ctx context.Context, dir string, args ...string) error {
	_, err := t.Output(ctx, dir, args...)
	return err
}

func (t *Tool) newError(args []string, dir string, err error) *ToolError {
	te := &ToolError{
		Binary:   t.binary,
		Args:     args,
		Dir:      dir,
		ExitCode: -1,
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		te.ExitCode = exitErr.ExitCode()
	}
	return te
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	cmdLine := CommandLine(e.Binary, e.Args)
	if e.ExitCode >= 0 {
		return fmt.Sprintf("command %s exited with status %d", cmdLine, e.ExitCode)
	}
	return fmt.Sprintf("command %s failed: %v", cmdLine, e.Err)
}

// Unwrap returns ErrToolFailed and the underlying exec error.
func (e *ToolError) Unwrap() []error { return []error{ErrToolFailed, e.Err} }

// CommandLine renders binary and args as a shell-quoted command line for
// logs and error messages.
func CommandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, word := range append([]string{binary}, args...) {
		quoted, err := syntax.Quote(word, syntax.LangBash)
		if err != nil {
			// Only words with NUL bytes are unquotable; show them as Go strings.
			quoted = fmt.Sprintf("%q", word)
		}
		parts = append(parts, quoted)
	}
	return strings.Join(parts, " ")
}
