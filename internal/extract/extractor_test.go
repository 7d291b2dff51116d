// SPDX-License-Identifier: MPL-2.0

package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/arcitec/font-nexus/internal/fsutil"
	"github.com/arcitec/font-nexus/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

// layeredArchiver fakes the DMG → pkg → payload → fonts layers. A DMG named
// "<x>.dmg" holds "<x> Fonts.pkg"; every payload holds the fonts listed in
// fonts[x].
type layeredArchiver struct {
	fonts    map[string][]string
	requests []Request
	failOn   string
}

func (a *layeredArchiver) Extract(_ context.Context, req Request) error {
	a.requests = append(a.requests, req)
	if a.failOn != "" && strings.Contains(req.Archive, a.failOn) {
		return errors.New("exit status 2")
	}
	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return err
	}

	name := filepath.Base(req.Archive)
	switch {
	case strings.HasSuffix(name, ".dmg"):
		stem := strings.TrimSuffix(name, ".dmg")
		return os.WriteFile(filepath.Join(req.Dir, stem+" Fonts.pkg"), []byte(stem), 0o644)
	case strings.HasSuffix(name, ".pkg"):
		stem, err := os.ReadFile(req.Archive)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(req.Dir, PayloadEntry), stem, 0o644)
	case name == PayloadEntry:
		stem, err := os.ReadFile(req.Archive)
		if err != nil {
			return err
		}
		for _, font := range a.fonts[string(stem)] {
			if err := os.WriteFile(filepath.Join(req.Dir, font), []byte(string(stem)+"/"+font), 0o644); err != nil {
				return err
			}
		}
		if !slices.Equal(req.Include, FontPatterns) {
			return errors.New("payload extracted without font filters")
		}
		return nil
	}
	return errors.New("unexpected archive " + name)
}

func TestExtractor_Run(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "apple-extract")
	testutil.MustWriteFile(t, filepath.Join(root, "stale.otf"), []byte("old run"))

	archiver := &layeredArchiver{fonts: map[string][]string{
		"SF-Pro":  {"SF-Pro.ttf", "SF-Pro-Text-Regular.otf"},
		"NY":      {"NewYork.ttf", "Shared.otf"},
		"SF-Mono": {"SF-Mono-Regular.otf", "Shared.otf"},
	}}
	e := NewExtractor(archiver, root)

	fontsDir, err := e.Run(context.Background(), []string{"/cache/SF-Pro.dmg", "/cache/NY.dmg", "/cache/SF-Mono.dmg"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if want := filepath.Join(root, FontsDirName); fontsDir != want {
		t.Errorf("Run() = %q, want %q", fontsDir, want)
	}

	got := testutil.ListTree(t, fontsDir)
	want := []string{"NewYork.ttf", "SF-Mono-Regular.otf", "SF-Pro-Text-Regular.otf", "SF-Pro.ttf", "Shared.otf"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fonts mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(root, "stale.otf")); !os.IsNotExist(err) {
		t.Error("Run() should start from an empty scratch root")
	}

	// Payloads are processed in sorted package order, so SF-Mono overwrites NY.
	if data := testutil.MustReadFile(t, filepath.Join(fontsDir, "Shared.otf")); string(data) != "SF-Mono/Shared.otf" {
		t.Errorf("Shared.otf = %q, want the last payload's copy", data)
	}

	var passes []string
	for _, req := range archiver.requests {
		passes = append(passes, filepath.Base(req.Archive)+" -> "+filepath.Base(req.Dir))
	}
	wantPasses := []string{
		"SF-Pro.dmg -> apple-extract",
		"NY.dmg -> apple-extract",
		"SF-Mono.dmg -> apple-extract",
		"NY Fonts.pkg -> NY Fonts.pkg.payload",
		"SF-Mono Fonts.pkg -> SF-Mono Fonts.pkg.payload",
		"SF-Pro Fonts.pkg -> SF-Pro Fonts.pkg.payload",
		"Payload~ -> fonts",
		"Payload~ -> fonts",
		"Payload~ -> fonts",
	}
	if diff := cmp.Diff(wantPasses, passes); diff != "" {
		t.Errorf("pass order mismatch (-want +got):\n%s", diff)
	}
	for _, req := range archiver.requests {
		if !filepath.IsAbs(req.Archive) || !filepath.IsAbs(req.Dir) {
			t.Errorf("request %+v uses relative paths", req)
		}
	}

	if err := e.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}
	if fsutil.IsDir(root) {
		t.Error("Cleanup() left the scratch root behind")
	}
}

func TestExtractor_RunFailureIsFatal(t *testing.T) {
	t.Parallel()

	archiver := &layeredArchiver{
		fonts:  map[string][]string{"A": {"a.otf"}, "B": {"b.otf"}},
		failOn: "A Fonts.pkg",
	}
	e := NewExtractor(archiver, filepath.Join(t.TempDir(), "scratch"))

	_, err := e.Run(context.Background(), []string{"/cache/A.dmg", "/cache/B.dmg"})
	if err == nil || !strings.Contains(err.Error(), "A Fonts.pkg") {
		t.Fatalf("Run() error = %v, want failure naming A Fonts.pkg", err)
	}
	for _, req := range archiver.requests {
		if filepath.Base(req.Archive) == "B Fonts.pkg" {
			t.Error("Run() continued after a failed extraction")
		}
	}
}

// emptyArchiver extracts nothing from any archive.
type emptyArchiver struct{}

func (emptyArchiver) Extract(_ context.Context, req Request) error {
	return os.MkdirAll(req.Dir, 0o755)
}

func TestExtractor_RunWithoutPackages(t *testing.T) {
	t.Parallel()

	e := NewExtractor(emptyArchiver{}, filepath.Join(t.TempDir(), "apple-extract"))

	fontsDir, err := e.Run(context.Background(), []string{"/cache/Empty.dmg"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !fsutil.IsDir(fontsDir) {
		t.Fatalf("Run() returned %q, which is not a directory", fontsDir)
	}
	if got := testutil.ListTree(t, fontsDir); len(got) != 0 {
		t.Errorf("fonts dir = %v, want empty", got)
	}
}
