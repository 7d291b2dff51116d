// SPDX-License-Identifier: MPL-2.0

package organize

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arcitec/font-nexus/internal/family"
	"github.com/arcitec/font-nexus/internal/testutil"
	"github.com/arcitec/font-nexus/pkg/types"

	"github.com/google/go-cmp/cmp"
)

func sourceFonts(t *testing.T) []family.ClassifiedFont {
	t.Helper()

	src := t.TempDir()
	var fonts []family.ClassifiedFont
	for _, f := range []struct {
		name, family string
		size         int
	}{
		{"a.ttf", "Alpha", 100},
		{"b.ttf", "Beta", 200},
		{"c.ttf", "Alpha", 50},
	} {
		path := filepath.Join(src, f.name)
		testutil.MustWriteSized(t, path, f.size)
		if err := os.Chmod(path, 0o600); err != nil {
			t.Fatal(err)
		}
		fonts = append(fonts, family.ClassifiedFont{Path: path, Family: f.family, Size: types.ByteSize(f.size)})
	}
	return fonts
}

func TestTree_Organize(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "output", "windows-fonts")
	testutil.MustWriteFile(t, filepath.Join(root, "Stale", "old.ttf"), []byte("previous run"))

	fonts := sourceFonts(t)
	total, err := NewTree(root, nil).Organize(fonts)
	if err != nil {
		t.Fatalf("Organize() error: %v", err)
	}
	if total != 350 {
		t.Errorf("Organize() = %d bytes, want 350", total)
	}

	want := []string{"Alpha/a.ttf", "Alpha/c.ttf", "Beta/b.ttf"}
	if diff := cmp.Diff(want, testutil.ListTree(t, root)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(filepath.Join(root, "Alpha", "a.ttf"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() == 0o600 {
		t.Error("copy carried over the source permissions")
	}
}

func TestTree_OrganizeIsRepeatable(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "apple-fonts")
	fonts := sourceFonts(t)
	tree := NewTree(root, nil)

	snapshot := func() map[string][]byte {
		out := make(map[string][]byte)
		for _, rel := range testutil.ListTree(t, root) {
			out[rel] = testutil.MustReadFile(t, filepath.Join(root, filepath.FromSlash(rel)))
		}
		return out
	}

	if _, err := tree.Organize(fonts); err != nil {
		t.Fatalf("first Organize() error: %v", err)
	}
	first := snapshot()
	if _, err := tree.Organize(fonts); err != nil {
		t.Fatalf("second Organize() error: %v", err)
	}
	second := snapshot()

	if diff := cmp.Diff(first, second, cmp.Comparer(bytes.Equal)); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestTree_AddRejectsUnsafeFamilies(t *testing.T) {
	t.Parallel()

	font := sourceFonts(t)[0]
	tree := NewTree(t.TempDir(), nil)

	for _, fam := range []string{"", ".", "..", "../escape", `Foo\Bar`} {
		font.Family = fam
		if _, _, err := tree.Add(font); !errors.Is(err, ErrInvalidFamily) {
			t.Errorf("Add(family %q) error = %v, want ErrInvalidFamily", fam, err)
		}
	}
}

func TestTree_AddMissingSource(t *testing.T) {
	t.Parallel()

	tree := NewTree(t.TempDir(), nil)
	_, _, err := tree.Add(family.ClassifiedFont{Path: filepath.Join(t.TempDir(), "gone.ttf"), Family: "Gone"})
	if err == nil {
		t.Fatal("Add() of a missing file should fail")
	}
}
