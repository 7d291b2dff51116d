// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/arcitec/font-nexus/internal/fsutil"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

const (
	// PackagePattern matches the font installer inside a DMG.
	PackagePattern = "*Fonts.pkg"
	// PayloadEntry is the data blob inside an installer package.
	PayloadEntry = "Payload~"
	// FontsDirName is the directory under the scratch root receiving font files.
	FontsDirName = "fonts"

	payloadSuffix = ".payload"
)

// FontPatterns are the font file filters of the last pass.
var FontPatterns = []string{"*.otf", "*.ttf", "*.ttc"}

type (
	// Extractor unpacks DMG archives into a scratch root in three passes.
	Extractor struct {
		archiver Archiver
		root     string
		logger   *log.Logger
	}

	// ExtractorOption configures an Extractor during construction.
	ExtractorOption func(*Extractor)
)

// WithLogger sets the logger that reports each pass.
func WithLogger(l *log.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = l
	}
}

// NewExtractor creates an Extractor that owns the scratch directory root.
func NewExtractor(archiver Archiver, root string, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		archiver: archiver,
		root:     root,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the scratch directory.
func (e *Extractor) Root() string { return e.root }

// Run recreates the scratch root and extracts archives layer by layer:
// each archive's *Fonts.pkg into the root, each package's Payload~ into
// <root>/<pkg>.payload, and each payload's font files into <root>/fonts.
// It returns the fonts directory. Packages and payloads are processed in
// name order; a later file overwrites an earlier one of the same name.
func (e *Extractor) Run(ctx context.Context, archives []string) (string, error) {
	root, err := filepath.Abs(e.root)
	if err != nil {
		return "", fmt.Errorf("resolving scratch directory: %w", err)
	}
	if err := fsutil.Recreate(root); err != nil {
		return "", fmt.Errorf("preparing scratch directory: %w", err)
	}

	e.logger.Info("extracting font packages", "archives", len(archives))
	for _, archive := range archives {
		abs, err := filepath.Abs(archive)
		if err != nil {
			return "", err
		}
		if err := e.archiver.Extract(ctx, Request{Archive: abs, Dir: root, Include: []string{PackagePattern}}); err != nil {
			return "", fmt.Errorf("extracting packages from %s: %w", filepath.Base(archive), err)
		}
	}

	packages, err := glob(root, PackagePattern)
	if err != nil {
		return "", err
	}
	e.logger.Info("extracting package payloads", "packages", len(packages))
	for _, pkg := range packages {
		dir := pkg + payloadSuffix
		if err := e.archiver.Extract(ctx, Request{Archive: pkg, Dir: dir, Entries: []string{PayloadEntry}}); err != nil {
			return "", fmt.Errorf("extracting payload of %s: %w", filepath.Base(pkg), err)
		}
	}

	payloads, err := glob(root, "*"+payloadSuffix+"/"+PayloadEntry)
	if err != nil {
		return "", err
	}
	fontsDir := filepath.Join(root, FontsDirName)
	if err := os.MkdirAll(fontsDir, fsutil.DirPerm); err != nil {
		return "", fmt.Errorf("creating fonts directory: %w", err)
	}
	e.logger.Info("extracting fonts", "payloads", len(payloads))
	for _, payload := range payloads {
		req := Request{Archive: payload, Dir: fontsDir, Include: slices.Clone(FontPatterns)}
		if err := e.archiver.Extract(ctx, req); err != nil {
			return "", fmt.Errorf("extracting fonts from %s: %w", filepath.Base(filepath.Dir(payload)), err)
		}
	}

	return fontsDir, nil
}

// Cleanup removes the scratch root.
func (e *Extractor) Cleanup() error {
	return fsutil.RemoveTree(e.root)
}

// glob matches pattern (slash-separated) below root and returns sorted
// absolute paths.
func glob(root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing %s in %s: %w", pattern, root, err)
	}
	for i, m := range matches {
		matches[i] = filepath.Join(root, filepath.FromSlash(m))
	}
	slices.Sort(matches)
	return matches, nil
}
