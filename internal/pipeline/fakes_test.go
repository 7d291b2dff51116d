// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/arcitec/font-nexus/internal/config"
	"github.com/arcitec/font-nexus/internal/extract"
	"github.com/arcitec/font-nexus/internal/fetch"
	"github.com/arcitec/font-nexus/internal/groups"
	"github.com/arcitec/font-nexus/internal/testutil"
)

const (
	testManifestBase = "https://aur.example/PKGBUILD"
	testFontsPage    = "https://apple.example/fonts/"
)

type (
	// fakeWeb serves pages and archives from memory.
	fakeWeb struct {
		pages    map[string]string
		archives map[string][]byte
		fetched  []string

		clock *testutil.FakeClock
		step  time.Duration
	}

	// fakeArchiver mimics the DMG, PKG and Payload layers. Every layer
	// carries the archive's content as a key into fonts.
	fakeArchiver struct {
		fonts map[string][]string
	}

	// recordQuery answers with fixed fc-scan style records per base name.
	recordQuery map[string]string
)

func (w *fakeWeb) Text(_ context.Context, url string) (string, error) {
	if w.clock != nil {
		w.clock.Advance(w.step)
	}
	text, ok := w.pages[url]
	if !ok {
		return "", &fetch.StatusError{URL: url, Code: http.StatusNotFound}
	}
	return text, nil
}

func (w *fakeWeb) Fetch(_ context.Context, url, destDir string) (fetch.ArchiveRef, error) {
	w.fetched = append(w.fetched, url)
	data, ok := w.archives[url]
	if !ok {
		return fetch.ArchiveRef{}, &fetch.StatusError{URL: url, Code: http.StatusNotFound}
	}
	name, err := fetch.LocalName(url)
	if err != nil {
		return fetch.ArchiveRef{}, err
	}
	path := filepath.Join(destDir, name)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fetch.ArchiveRef{}, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fetch.ArchiveRef{}, err
	}
	return fetch.ArchiveRef{URL: url, Path: path}, nil
}

func (f *fakeArchiver) Extract(_ context.Context, req extract.Request) error {
	key, err := os.ReadFile(req.Archive)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return err
	}

	switch {
	case slices.Contains(req.Include, extract.PackagePattern):
		return os.WriteFile(filepath.Join(req.Dir, string(key)+" Fonts.pkg"), key, 0o644)
	case slices.Contains(req.Entries, extract.PayloadEntry):
		return os.WriteFile(filepath.Join(req.Dir, extract.PayloadEntry), key, 0o644)
	default:
		for _, name := range f.fonts[string(key)] {
			if err := os.WriteFile(filepath.Join(req.Dir, name), fontContent(name), 0o644); err != nil {
				return err
			}
		}
		return nil
	}
}

func (q recordQuery) Query(_ context.Context, path string) (string, error) {
	return q[filepath.Base(path)], nil
}

func fontContent(name string) []byte {
	return []byte("font data of " + name)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Paths.Base = t.TempDir()
	cfg.Microsoft.ManifestBase = testManifestBase
	cfg.Microsoft.GroupPrefix = ""
	cfg.Apple.FontsPage = testFontsPage
	return cfg
}

func manifestURL(cfg *config.Config) string {
	return groups.ManifestURL(cfg.Microsoft.ManifestBase, int(cfg.Microsoft.WindowsVersion))
}

// writeWindowsFonts creates a.ttf (100 B), b.ttf (200 B) and c.ttf (50 B).
func writeWindowsFonts(t *testing.T, cfg *config.Config) {
	t.Helper()

	dir := WindowsFontsDir(cfg)
	testutil.MustWriteSized(t, filepath.Join(dir, "a.ttf"), 100)
	testutil.MustWriteSized(t, filepath.Join(dir, "b.ttf"), 200)
	testutil.MustWriteSized(t, filepath.Join(dir, "c.ttf"), 50)
}

func windowsQuery() recordQuery {
	return recordQuery{
		"a.ttf": "Alpha (en)",
		"b.ttf": "Alpha (de)\nAlpha (en)",
		"c.ttf": "Gamma (en)\nGamma Condensed (en)",
	}
}

func appleWeb() *fakeWeb {
	return &fakeWeb{
		pages: map[string]string{
			testFontsPage: `<a href="https://apple.example/SF-Pro.dmg">SF Pro</a>
<a href="https://apple.example/NY.dmg">New York</a>
<a href="https://apple.example/SF-Pro.dmg">again</a>`,
		},
		archives: map[string][]byte{
			"https://apple.example/SF-Pro.dmg": []byte("SF Pro"),
			"https://apple.example/NY.dmg":     []byte("New York"),
		},
	}
}

func appleArchiver() *fakeArchiver {
	return &fakeArchiver{fonts: map[string][]string{
		"SF Pro":   {"SF-Pro.ttf", "SF-Pro-Italic.ttf", "SF-Pro-Text-Regular.otf", "SF-Pro-Rounded-Bold.otf"},
		"New York": {"NewYork.ttf", "NewYorkSmall-Regular.otf"},
	}}
}

func appleQuery() recordQuery {
	return recordQuery{
		"SF-Pro.ttf":              "SF Pro (en)",
		"SF-Pro-Italic.ttf":       "SF Pro (en)",
		"SF-Pro-Rounded-Bold.otf": "SF Pro Rounded (en)\nSF Pro Rounded Bold (en)",
		"NewYork.ttf":             "New York (en)",
	}
}

// mergeQueries combines record tables for a full build.
func mergeQueries(qs ...recordQuery) recordQuery {
	all := recordQuery{}
	for _, q := range qs {
		maps.Copy(all, q)
	}
	return all
}
