// SPDX-License-Identifier: MPL-2.0

package groups

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/arcitec/font-nexus/internal/fsutil"
	"github.com/arcitec/font-nexus/pkg/types"
)

// ErrMissingFile is the sentinel error wrapped by MissingFileError.
var ErrMissingFile = errors.New("font file listed by the manifest is missing")

type (
	// MissingFileError names the first listed file not found in the source directory.
	MissingFileError struct {
		Group string
		File  string
		Dir   string
	}

	// GroupStats summarizes one group against the source directory.
	GroupStats struct {
		Name    string
		Files   int
		Size    types.ByteSize
		Enabled bool
	}

	// Analysis is the outcome of checking a selection against the source directory.
	Analysis struct {
		// Enabled and Disabled are sorted by group name.
		Enabled  []GroupStats
		Disabled []GroupStats
		// SizeEnabled and SizeDisabled count every distinct file once per side.
		SizeEnabled  types.ByteSize
		SizeDisabled types.ByteSize
		// Unknown lists selected names the manifest does not declare.
		Unknown []string

		enabledFiles []string
	}
)

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("group %q lists %q, which is not in %s", e.Group, e.File, e.Dir)
}

// Unwrap returns ErrMissingFile for errors.Is.
func (e *MissingFileError) Unwrap() error { return ErrMissingFile }

// Analyze checks that every file of every group exists in sourceDir and
// totals group sizes. Groups are visited in name order, so the reported
// missing file is deterministic.
func Analyze(m *Manifest, sel Selection, sourceDir string) (*Analysis, error) {
	sizes := make(map[string]int64)
	names := make([]string, 0, m.Len())
	for _, g := range m.groups {
		names = append(names, g.Name)
	}
	slices.Sort(names)

	a := &Analysis{}
	enabledSeen := make(map[string]bool)
	disabledSeen := make(map[string]bool)

	for _, name := range names {
		g, _ := m.Group(name)
		stats := GroupStats{Name: name, Enabled: sel.Enabled(name)}
		inGroup := make(map[string]bool)

		for _, file := range g.Files {
			size, ok := sizes[file]
			if !ok {
				var err error
				size, err = fsutil.RegularFileSize(filepath.Join(sourceDir, file))
				if err != nil {
					return nil, &MissingFileError{Group: name, File: file, Dir: sourceDir}
				}
				sizes[file] = size
			}

			if inGroup[file] {
				continue
			}
			inGroup[file] = true
			stats.Files++
			stats.Size += types.ByteSize(size)

			seen := disabledSeen
			total := &a.SizeDisabled
			if stats.Enabled {
				seen, total = enabledSeen, &a.SizeEnabled
			}
			if !seen[file] {
				seen[file] = true
				*total += types.ByteSize(size)
			}
		}

		if stats.Enabled {
			a.Enabled = append(a.Enabled, stats)
		} else {
			a.Disabled = append(a.Disabled, stats)
		}
	}

	for _, name := range sel.Names() {
		if _, ok := m.Group(name); !ok {
			a.Unknown = append(a.Unknown, name)
		}
	}

	copied := make(map[string]bool)
	for _, g := range m.groups {
		if !sel.Enabled(g.Name) {
			continue
		}
		for _, file := range g.Files {
			if !copied[file] {
				copied[file] = true
				a.enabledFiles = append(a.enabledFiles, file)
			}
		}
	}

	return a, nil
}

// EnabledFiles returns the distinct files of the enabled groups in manifest order.
func (a *Analysis) EnabledFiles() []string {
	return slices.Clone(a.enabledFiles)
}
