// SPDX-License-Identifier: MPL-2.0

// Package fsutil contains the filesystem primitives the pipeline relies on
// for scratch and output directories: symlink-safe tree removal and clean
// directory recreation.
package fsutil
