// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

type (
	// CommandRecorder captures arguments passed to exec.Command for verification.
	// It uses the TestHelperProcess pattern to simulate command execution: the
	// returned command re-runs the test binary, which prints the configured
	// output and exits with the configured code.
	//
	// Packages using it must declare:
	//
	//	func TestHelperProcess(t *testing.T) { testutil.RunHelperProcess() }
	CommandRecorder struct {
		// Invocations records each call to the mock exec.Command
		Invocations []Invocation
		// ExitCode is the exit code to return (0 = success)
		ExitCode int
		// Stdout is the output to write to stdout
		Stdout string
		// Stderr is the output to write to stderr
		Stderr string
	}

	// Invocation represents a single invocation of exec.Command.
	Invocation struct {
		// Name is the command name (e.g., "7z", "fc-scan")
		Name string
		// Args are the arguments passed to the command
		Args []string
	}
)

// NewCommandRecorder creates a new recorder with default settings (success, no output).
func NewCommandRecorder() *CommandRecorder {
	return &CommandRecorder{Invocations: make([]Invocation, 0)}
}

// CommandContext returns a function with the exec.CommandContext signature
// that records invocations and returns a helper-process command.
func (m *CommandRecorder) CommandContext(t *testing.T) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		m.Invocations = append(m.Invocations, Invocation{Name: name, Args: args})

		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // TestHelperProcess is a test-only pattern
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", m.ExitCode),
			"GO_HELPER_STDOUT=" + m.Stdout,
			"GO_HELPER_STDERR=" + m.Stderr,
		}
		return cmd
	}
}

// LastInvocation returns the most recent invocation, or nil if none.
func (m *CommandRecorder) LastInvocation() *Invocation {
	if len(m.Invocations) == 0 {
		return nil
	}
	return &m.Invocations[len(m.Invocations)-1]
}

// LastArgs returns the arguments from the most recent invocation.
func (m *CommandRecorder) LastArgs() []string {
	if inv := m.LastInvocation(); inv != nil {
		return inv.Args
	}
	return nil
}

// AssertArgsContain verifies that the last invocation args contain the expected string.
func (m *CommandRecorder) AssertArgsContain(t *testing.T, expected string) {
	t.Helper()
	args := m.LastArgs()
	if !strings.Contains(strings.Join(args, " "), expected) {
		t.Errorf("expected args to contain %q, got: %v", expected, args)
	}
}

// RunHelperProcess is the body of TestHelperProcess. It does nothing unless
// the process was started by CommandRecorder.
func RunHelperProcess() {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if stdout := os.Getenv("GO_HELPER_STDOUT"); stdout != "" {
		fmt.Fprint(os.Stdout, stdout)
	}
	if stderr := os.Getenv("GO_HELPER_STDERR"); stderr != "" {
		fmt.Fprint(os.Stderr, stderr)
	}

	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode) //nolint:errcheck // zero on malformed input
	}
	os.Exit(exitCode)
}
