// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/arcitec/font-nexus/internal/family"
	"github.com/arcitec/font-nexus/pkg/types"

	"golang.org/x/exp/maps"
)

type (
	// Summary describes one build run.
	Summary struct {
		StartedAt  time.Time         `toml:"started_at"`
		Elapsed    string            `toml:"elapsed"`
		TotalBytes types.ByteSize    `toml:"total_bytes"`
		Microsoft  *MicrosoftSection `toml:"microsoft,omitempty"`
		Apple      *AppleSection     `toml:"apple,omitempty"`
	}

	// MicrosoftSection describes the Windows font collection.
	MicrosoftSection struct {
		ManifestURL  string         `toml:"manifest_url"`
		Enabled      []Group        `toml:"enabled"`
		Disabled     []Group        `toml:"disabled"`
		Unknown      []string       `toml:"unknown,omitempty"`
		SizeEnabled  types.ByteSize `toml:"size_enabled"`
		SizeDisabled types.ByteSize `toml:"size_disabled"`
		Families     []Family       `toml:"families"`
		OutputDir    string         `toml:"output_dir"`
		OutputBytes  types.ByteSize `toml:"output_bytes"`
	}

	// AppleSection describes the Apple font collection.
	AppleSection struct {
		Archives      []Archive      `toml:"archives"`
		DeletedLegacy []string       `toml:"deleted_legacy"`
		DeletedBytes  types.ByteSize `toml:"deleted_bytes"`
		Families      []Family       `toml:"families"`
		OutputDir     string         `toml:"output_dir"`
		OutputBytes   types.ByteSize `toml:"output_bytes"`
	}

	// Group is one manifest group.
	Group struct {
		Name  string         `toml:"name"`
		Files int            `toml:"files"`
		Size  types.ByteSize `toml:"size"`
	}

	// Archive is one downloaded vendor archive.
	Archive struct {
		URL  string         `toml:"url"`
		Path string         `toml:"path"`
		Size types.ByteSize `toml:"size"`
	}

	// Family lists the file names filed under one family.
	Family struct {
		Name  string   `toml:"name"`
		Files []string `toml:"files"`
	}
)

// Families groups fonts by family, sorted by family name. Files keep their
// input order within a family.
func Families(fonts []family.ClassifiedFont) []Family {
	byName := make(map[string][]string)
	for _, f := range fonts {
		byName[f.Family] = append(byName[f.Family], filepath.Base(f.Path))
	}

	names := maps.Keys(byName)
	slices.Sort(names)

	out := make([]Family, 0, len(names))
	for _, name := range names {
		out = append(out, Family{Name: name, Files: byName[name]})
	}
	return out
}

// FormatElapsed renders d as H:MM:SS, rounded to the second.
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
