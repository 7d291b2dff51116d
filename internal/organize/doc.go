// SPDX-License-Identifier: MPL-2.0

// Package organize writes classified fonts into a per-family directory tree.
package organize
