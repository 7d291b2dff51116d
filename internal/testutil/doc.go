// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include file fixtures (MustWriteFile, MustWriteSized,
// MustMkdirAll), environment variable management (MustSetenv), and the
// helper-process exec mock (CommandRecorder, RunHelperProcess) used to fake
// external tools such as 7z and fc-scan.
package testutil
