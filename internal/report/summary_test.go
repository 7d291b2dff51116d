// SPDX-License-Identifier: MPL-2.0

package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arcitec/font-nexus/internal/family"

	"github.com/google/go-cmp/cmp"
)

func TestFamilies(t *testing.T) {
	t.Parallel()

	got := Families([]family.ClassifiedFont{
		{Path: "/x/SF-Pro.ttf", Family: "SF Pro"},
		{Path: "/x/NewYork.ttf", Family: "New York"},
		{Path: "/x/SF-Pro-Italic.ttf", Family: "SF Pro"},
	})
	want := []Family{
		{Name: "New York", Files: []string{"NewYork.ttf"}},
		{Name: "SF Pro", Files: []string{"SF-Pro.ttf", "SF-Pro-Italic.ttf"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Families() mismatch (-want +got):\n%s", diff)
	}
	if len(Families(nil)) != 0 {
		t.Error("Families(nil) should be empty")
	}
}

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{1500 * time.Millisecond, "0:00:02"},
		{83 * time.Second, "0:01:23"},
		{2*time.Hour + 5*time.Minute + 9*time.Second, "2:05:09"},
		{26 * time.Hour, "26:00:00"},
		{-time.Second, "0:00:00"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWriteTOML_ReadsBack(t *testing.T) {
	t.Parallel()

	want := &Summary{
		StartedAt:  time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC),
		Elapsed:    "0:03:10",
		TotalBytes: 1234,
		Microsoft: &MicrosoftSection{
			ManifestURL:  "https://aur.archlinux.org/cgit/aur.git/plain/PKGBUILD?h=ttf-ms-win11-auto",
			Enabled:      []Group{{Name: "win11", Files: 2, Size: 300}},
			Disabled:     []Group{{Name: "win11_zh", Files: 1, Size: 900}},
			SizeEnabled:  300,
			SizeDisabled: 900,
			Families:     []Family{{Name: "Arial", Files: []string{"arial.ttf", "arialbd.ttf"}}},
			OutputDir:    "output/windows-fonts",
			OutputBytes:  300,
		},
		Apple: &AppleSection{
			Archives:      []Archive{{URL: "https://example.com/SF-Pro.dmg", Path: "source/apple-dmgs/SF-Pro.dmg", Size: 10}},
			DeletedLegacy: []string{"SF-Pro-Text-Regular.otf"},
			DeletedBytes:  40,
			Families:      []Family{{Name: "SF Pro", Files: []string{"SF-Pro.ttf"}}},
			OutputDir:     "output/apple-fonts",
			OutputBytes:   934,
		},
	}

	path := filepath.Join(t.TempDir(), "report.toml")
	if err := WriteTOML(path, want); err != nil {
		t.Fatalf("WriteTOML() error: %v", err)
	}
	got, err := ReadTOML(path)
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}
