// SPDX-License-Identifier: MPL-2.0

// Package groups resolves which Windows font files belong to the collection.
//
// The group catalog comes from the AUR ttf-ms-win<N>-auto PKGBUILD, whose
// shell arrays (_ttf_ms_win11=( ... ), _ttf_ms_win11_japanese=( ... ), ...)
// list the files of each optional font package. A comma-separated selection
// enables some of those groups; Analyze checks every listed file against the
// local Fonts directory and totals the enabled and disabled sizes.
package groups
