// SPDX-License-Identifier: MPL-2.0

// Package extract peels vendor font archives down to their font files.
//
// Apple ships each family as a DMG holding a "<Family> Fonts.pkg" installer,
// whose Payload~ entry in turn holds the .otf/.ttf/.ttc files. Extractor
// unpacks those three layers into a scratch directory through an Archiver;
// SevenZip is the Archiver backed by the 7z command.
package extract
