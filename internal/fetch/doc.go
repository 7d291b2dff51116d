// SPDX-License-Identifier: MPL-2.0

// Package fetch retrieves remote text (vendor pages, package manifests) and
// archives. Archive downloads are cached on disk and only transferred again
// when the server reports a newer or differently sized file.
package fetch
