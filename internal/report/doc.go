// SPDX-License-Identifier: MPL-2.0

// Package report holds the summary of a build run and writes it as TOML.
package report
