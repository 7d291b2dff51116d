// SPDX-License-Identifier: MPL-2.0

package exectool

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMissingDependency is the sentinel error wrapped by DependencyError.
var ErrMissingDependency = errors.New("missing external dependency")

type (
	// LookPathFunc resolves a binary name against PATH.
	LookPathFunc func(file string) (string, error)

	// DependencyError lists every required tool that could not be found.
	DependencyError struct {
		MissingTools []string
	}
)

// Error implements the error interface.
func (e *DependencyError) Error() string {
	quoted := make([]string, len(e.MissingTools))
	for i, tool := range e.MissingTools {
		quoted[i] = fmt.Sprintf("%q", tool)
	}
	return fmt.Sprintf("missing external dependency %s; install it and ensure it is in your PATH",
		strings.Join(quoted, ", "))
}

// Unwrap returns ErrMissingDependency for errors.Is() compatibility.
func (e *DependencyError) Unwrap() error { return ErrMissingDependency }

// CheckAvailable verifies that every tool resolves through PATH.
func CheckAvailable(tools ...string) error {
	return checkAvailable(exec.LookPath, tools)
}

func checkAvailable(lookPath LookPathFunc, tools []string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := lookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{MissingTools: missing}
	}
	return nil
}
