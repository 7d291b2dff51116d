// SPDX-License-Identifier: MPL-2.0

// Package legacy removes superseded Apple font files.
//
// SF Pro, SF Compact and New York ship as variable fonts alongside the older
// per-optical-size statics (SF-Pro-Text-*.otf, NewYorkSmall-*.otf, ...).
// Only the variable fonts are kept.
package legacy
