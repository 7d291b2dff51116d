// SPDX-License-Identifier: MPL-2.0

// Package family resolves the English family name of font files.
//
// A MetadataQuery reports every (family, language) pair a font declares as
// "<name> (<lang>)" lines. The Classifier keeps the first name tagged "en":
// fonts list their canonical family before more specific variants, so the
// first English name is the directory the font is filed under.
package family
