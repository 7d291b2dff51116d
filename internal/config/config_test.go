// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/arcitec/font-nexus/internal/testutil"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.cue")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func load(t *testing.T, opts LoadOptions) (*Config, string, error) {
	t.Helper()

	if opts.ConfigFilePath == "" && opts.ConfigDirPath == "" {
		opts.ConfigDirPath = t.TempDir()
	}
	return NewProvider().Load(context.Background(), opts)
}

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := load(t, LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want none", path)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.cue")
	if err := os.WriteFile(path, []byte(`metadata: backend: "native"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := load(t, LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Metadata.Backend != BackendNative {
		t.Errorf("Backend = %q, want %q", cfg.Metadata.Backend, BackendNative)
	}
}

func TestLoad_CUEFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
paths: {
	base:   "/srv/fonts"
	output: "dist"
}
microsoft: {
	windows_version: 10
	groups:          "win10"
	group_prefix:    ""
}
tools: seven_zip: "7zz"
`)

	cfg, _, err := load(t, LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := DefaultConfig()
	want.Paths.Base = "/srv/fonts"
	want.Paths.Output = "dist"
	want.Microsoft.WindowsVersion = 10
	want.Microsoft.Groups = "win10"
	want.Microsoft.GroupPrefix = ""
	want.Tools.SevenZip = "7zz"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_SchemaRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown backend", `metadata: backend: "freetype"`, "backend"},
		{"unknown field", `tools: wget: "wget"`, "wget"},
		{"wrong type", `ui: verbose: "yes"`, "verbose"},
		{"non-positive version", `microsoft: windows_version: 0`, "windows_version"},
		{"bad archive ext", `apple: archive_ext: "dmg"`, "archive_ext"},
		{"syntax error", `paths: {`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := load(t, LoadOptions{ConfigFilePath: writeConfig(t, tt.content)})
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Parallel()

	_, _, err := load(t, LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue")})
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("Load() error = %v, want config file not found", err)
	}
}

func TestLoad_EmptyGroupsEnvSelectsNothing(t *testing.T) {
	t.Setenv(GroupsEnv, "")

	cfg, _, err := load(t, LoadOptions{ConfigFilePath: writeConfig(t, `microsoft: groups: "win11"`)})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Microsoft.Groups != "" {
		t.Errorf("Groups = %q, want empty selection", cfg.Microsoft.Groups)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(GroupsEnv, "win11, win11_zh")
	t.Setenv("FONTNEXUS_TOOLS_SEVEN_ZIP", "/opt/7zip/7zz")
	t.Setenv("FONTNEXUS_MICROSOFT_WINDOWS_VERSION", "10")

	path := writeConfig(t, `tools: seven_zip: "7za"`)
	cfg, _, err := load(t, LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Microsoft.Groups != "win11, win11_zh" {
		t.Errorf("Groups = %q", cfg.Microsoft.Groups)
	}
	if cfg.Tools.SevenZip != "/opt/7zip/7zz" {
		t.Errorf("SevenZip = %q, environment should win over the file", cfg.Tools.SevenZip)
	}
	if cfg.Microsoft.WindowsVersion != 10 {
		t.Errorf("WindowsVersion = %d, want 10", cfg.Microsoft.WindowsVersion)
	}
}

func TestLoad_EnvironmentValidated(t *testing.T) {
	t.Setenv("FONTNEXUS_METADATA_BACKEND", "freetype")

	_, _, err := load(t, LoadOptions{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestGenerateCUE_LoadsBack(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.Paths.Output = "out dir"
	want.Microsoft.Groups = "win11"
	want.Metadata.Backend = BackendNative
	want.UI.Verbose = true

	cfg, _, err := load(t, LoadOptions{ConfigFilePath: writeConfig(t, GenerateCUE(want))})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.cue")

	created, err := CreateDefaultConfig(path)
	if err != nil || !created {
		t.Fatalf("CreateDefaultConfig() = %v, %v; want true, nil", created, err)
	}
	if err := os.WriteFile(path, []byte("ui: verbose: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	created, err = CreateDefaultConfig(path)
	if err != nil || created {
		t.Fatalf("second CreateDefaultConfig() = %v, %v; want false, nil", created, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "ui: verbose: true\n" {
		t.Error("CreateDefaultConfig() overwrote an existing file")
	}
}

func TestConfig_Resolve(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Paths.Base = "/work"
	cfg.Paths.Temp = "/var/tmp/fontnexus"

	if got := cfg.OutputDir(); got != filepath.Join("/work", "output") {
		t.Errorf("OutputDir() = %q", got)
	}
	if got := cfg.TempDir(); got != filepath.Clean("/var/tmp/fontnexus") {
		t.Errorf("TempDir() = %q", got)
	}
}

func TestConfigDir(t *testing.T) {
	t.Cleanup(Reset)

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() with XDG_CONFIG_HOME = %q, want %q", dir, want)
	}

	SetConfigDirOverride("/etc/fontnexus")
	if dir, _ := ConfigDir(); dir != "/etc/fontnexus" {
		t.Errorf("ConfigDir() with override = %q", dir)
	}
}

func TestConfigDir_FallsBackToHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("user config directory layout differs outside Linux")
	}
	t.Cleanup(Reset)
	Reset()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Cleanup(testutil.SetHomeDir(t, home))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}
