// SPDX-License-Identifier: MPL-2.0

// Package exectool runs the external command-line tools the pipeline depends
// on (the archive tool and the font metadata query) as blocking, synchronous
// subprocesses, and checks that they are installed before a run starts.
//
// Stdout is captured and returned to the caller; stderr is passed through to
// the operator so progress and diagnostics stay visible. Any non-zero exit is
// reported as a *ToolError.
package exectool
