// SPDX-License-Identifier: MPL-2.0

// Package pipeline composes the font-nexus stages into the two collection
// builds and the top-level run.
//
// Microsoft checks the group selection of the AUR manifest against a local
// copy of the Windows Fonts directory, then classifies and copies the
// enabled files. Apple downloads the DMG archives linked from the vendor
// page, peels them apart, drops legacy fonts, then classifies and copies the
// rest. Runner checks the external tools, wipes the output and temp roots,
// runs Microsoft and then Apple, and returns a report.Summary.
//
// Every stage is sequential and every failure aborts the run. Errors leave
// this package as *issue.ActionableError values wrapping the stage's
// sentinel errors.
package pipeline
