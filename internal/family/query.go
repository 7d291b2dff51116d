// SPDX-License-Identifier: MPL-2.0

package family

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arcitec/font-nexus/internal/exectool"

	"seehuhn.de/go/sfnt"
)

const (
	// DefaultFcScan is the fontconfig scanner binary.
	DefaultFcScan = "fc-scan"
	// FcScanFormat makes fc-scan print one "<family> (<lang>)" line per name.
	FcScanFormat = "%{[]family,familylang{%{family} (%{familylang})\n}}"
)

// ErrCollectionUnsupported is returned by Native for TrueType/OpenType collections.
var ErrCollectionUnsupported = errors.New("font collections are not supported by the native backend")

type (
	// MetadataQuery lists the family names declared by a font file.
	MetadataQuery interface {
		// Query returns newline-separated "<name> (<lang>)" records.
		Query(ctx context.Context, path string) (string, error)
	}

	// FcScan queries fontconfig's fc-scan.
	FcScan struct {
		tool *exectool.Tool
	}

	// Native reads the name table in-process. It sees only the family name
	// the parser prefers and reports it as English.
	Native struct{}
)

// NewFcScan wraps tool, which should invoke fc-scan.
func NewFcScan(tool *exectool.Tool) *FcScan {
	return &FcScan{tool: tool}
}

// Args returns the fc-scan arguments for path.
func (f *FcScan) Args(path string) []string {
	return []string{"--format", FcScanFormat, path}
}

// Query runs fc-scan on the absolute form of path.
func (f *FcScan) Query(ctx context.Context, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return f.tool.Output(ctx, "", f.Args(abs)...)
}

// Query parses path with seehuhn.de/go/sfnt.
func (Native) Query(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading font: %w", err)
	}
	if bytes.HasPrefix(data, []byte("ttcf")) {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrCollectionUnsupported)
	}

	font, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if font.FamilyName == "" {
		return "", nil
	}
	return font.FamilyName + " (en)\n", nil
}
