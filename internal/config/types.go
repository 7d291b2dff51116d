// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// BackendFcScan reads family names with fontconfig's fc-scan.
	BackendFcScan MetadataBackend = "fc-scan"
	// BackendNative parses font files in-process.
	BackendNative MetadataBackend = "native"
)

var (
	// ErrInvalidMetadataBackend is returned when a MetadataBackend value is not recognized.
	ErrInvalidMetadataBackend = errors.New("invalid metadata backend")
	// ErrInvalidWindowsVersion is returned when a WindowsVersion is not positive.
	ErrInvalidWindowsVersion = errors.New("invalid windows version")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// MetadataBackend selects how font family names are read.
	MetadataBackend string

	// InvalidMetadataBackendError is returned when a MetadataBackend value is not recognized.
	// It wraps ErrInvalidMetadataBackend for errors.Is() compatibility.
	InvalidMetadataBackendError struct {
		Value MetadataBackend
	}

	// WindowsVersion is the major Windows release whose AUR font package
	// provides the group manifest (ttf-ms-win<N>-auto).
	WindowsVersion int

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		Paths     PathsConfig     `json:"paths" mapstructure:"paths"`
		Microsoft MicrosoftConfig `json:"microsoft" mapstructure:"microsoft"`
		Apple     AppleConfig     `json:"apple" mapstructure:"apple"`
		Tools     ToolsConfig     `json:"tools" mapstructure:"tools"`
		Metadata  MetadataConfig  `json:"metadata" mapstructure:"metadata"`
		UI        UIConfig        `json:"ui" mapstructure:"ui"`
	}

	// PathsConfig locates the working directories.
	PathsConfig struct {
		// Base is the directory relative paths resolve against.
		Base string `json:"base" mapstructure:"base"`
		// Output receives windows-fonts/ and apple-fonts/. Wiped on every build.
		Output string `json:"output" mapstructure:"output"`
		// Source holds windows/Fonts and the apple-dmgs download cache.
		Source string `json:"source" mapstructure:"source"`
		// Temp is scratch space for archive extraction. Wiped on every build.
		Temp string `json:"temp" mapstructure:"temp"`
	}

	// MicrosoftConfig configures the Windows font collection.
	MicrosoftConfig struct {
		WindowsVersion WindowsVersion `json:"windows_version" mapstructure:"windows_version"`
		// Groups is the comma-separated list of enabled group names.
		Groups       string `json:"groups" mapstructure:"groups"`
		ManifestBase string `json:"manifest_base" mapstructure:"manifest_base"`
		GroupPrefix  string `json:"group_prefix" mapstructure:"group_prefix"`
	}

	// AppleConfig configures the Apple font collection.
	AppleConfig struct {
		FontsPage  string `json:"fonts_page" mapstructure:"fonts_page"`
		ArchiveExt string `json:"archive_ext" mapstructure:"archive_ext"`
	}

	// ToolsConfig names the external binaries.
	ToolsConfig struct {
		SevenZip string `json:"seven_zip" mapstructure:"seven_zip"`
		FcScan   string `json:"fc_scan" mapstructure:"fc_scan"`
	}

	// MetadataConfig configures font family detection.
	MetadataConfig struct {
		Backend MetadataBackend `json:"backend" mapstructure:"backend"`
	}

	// UIConfig configures console output.
	UIConfig struct {
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface.
func (e *InvalidMetadataBackendError) Error() string {
	return fmt.Sprintf("invalid metadata backend %q (valid: %s, %s)", e.Value, BackendFcScan, BackendNative)
}

// Unwrap returns ErrInvalidMetadataBackend so callers can use errors.Is for programmatic detection.
func (e *InvalidMetadataBackendError) Unwrap() error { return ErrInvalidMetadataBackend }

// String returns the string representation of the MetadataBackend.
func (b MetadataBackend) String() string { return string(b) }

// Validate returns an error if the MetadataBackend is not one of the defined backends.
func (b MetadataBackend) Validate() error {
	switch b {
	case BackendFcScan, BackendNative:
		return nil
	default:
		return &InvalidMetadataBackendError{Value: b}
	}
}

// Validate returns an error wrapping ErrInvalidWindowsVersion if v is not positive.
func (v WindowsVersion) Validate() error {
	if v < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWindowsVersion, int(v))
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is for programmatic detection.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks the fields CUE cannot see, such as values from the environment.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Microsoft.WindowsVersion.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Metadata.Backend.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, field := range []struct{ name, value string }{
		{"paths.output", c.Paths.Output},
		{"paths.source", c.Paths.Source},
		{"paths.temp", c.Paths.Temp},
		{"tools.seven_zip", c.Tools.SevenZip},
		{"tools.fc_scan", c.Tools.FcScan},
	} {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", field.name))
		}
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Resolve returns p unchanged when absolute, otherwise joined onto Paths.Base.
func (c *Config) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Paths.Base, p)
}

// OutputDir is the resolved output root.
func (c *Config) OutputDir() string { return c.Resolve(c.Paths.Output) }

// SourceDir is the resolved source root.
func (c *Config) SourceDir() string { return c.Resolve(c.Paths.Source) }

// TempDir is the resolved scratch root.
func (c *Config) TempDir() string { return c.Resolve(c.Paths.Temp) }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Base:   ".",
			Output: "output",
			Source: "source",
			Temp:   "temp",
		},
		Microsoft: MicrosoftConfig{
			WindowsVersion: 11,
			Groups:         "win11,win11_other",
			ManifestBase:   "https://aur.archlinux.org/cgit/aur.git/plain/PKGBUILD",
			GroupPrefix:    "_ttf_ms_",
		},
		Apple: AppleConfig{
			FontsPage:  "https://developer.apple.com/fonts/",
			ArchiveExt: ".dmg",
		},
		Tools: ToolsConfig{
			SevenZip: "7z",
			FcScan:   "fc-scan",
		},
		Metadata: MetadataConfig{
			Backend: BackendFcScan,
		},
	}
}
