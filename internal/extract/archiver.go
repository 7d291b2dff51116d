// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/arcitec/font-nexus/internal/exectool"
	"github.com/arcitec/font-nexus/internal/fsutil"
)

// DefaultSevenZip is the binary used when no other 7-Zip build is configured.
const DefaultSevenZip = "7z"

type (
	// Request describes one extraction.
	Request struct {
		// Archive is the archive to read.
		Archive string
		// Dir receives the extracted files, flattened. Existing files are overwritten.
		Dir string
		// Include holds wildcard filters matched against entry names at any depth.
		Include []string
		// Entries holds exact entry names to extract.
		Entries []string
	}

	// Archiver extracts entries from an archive.
	Archiver interface {
		Extract(ctx context.Context, req Request) error
	}

	// SevenZip is an Archiver that runs "7z e".
	SevenZip struct {
		tool *exectool.Tool
	}
)

// NewSevenZip wraps tool, which should invoke a 7z-compatible binary.
func NewSevenZip(tool *exectool.Tool) *SevenZip {
	return &SevenZip{tool: tool}
}

// Args returns the 7z arguments for req: flat extraction ("e"), one
// recursive include switch per filter, overwrite all ("-aoa"), the
// archive, then any exact entry names.
func (s *SevenZip) Args(req Request) []string {
	args := []string{"e"}
	for _, pattern := range req.Include {
		args = append(args, "-ir!"+pattern)
	}
	args = append(args, "-aoa", req.Archive)
	return append(args, req.Entries...)
}

// Extract runs 7z with req.Dir as its working directory.
func (s *SevenZip) Extract(ctx context.Context, req Request) error {
	if err := os.MkdirAll(req.Dir, fsutil.DirPerm); err != nil {
		return fmt.Errorf("creating extraction directory: %w", err)
	}
	return s.tool.Run(ctx, req.Dir, s.Args(req)...)
}
