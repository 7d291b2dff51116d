// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the fontnexus command tree.
//
// The App type is the composition root: command handlers load the
// configuration through its ConfigProvider and run builds through its
// BuildServiceFactory, so tests can substitute both. Failures are rendered
// once, with an issue guide when one applies, and leave the process with
// exit status 1.
package cmd
