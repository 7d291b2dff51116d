// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the offending resource, and
// remediation hints. The Issue catalog holds longer Markdown guides for the
// conditions an operator can fix before re-running a build (missing tools,
// an incomplete Windows Fonts copy, an unreachable vendor page, ...), rendered
// for the terminal with glamour.
package issue
