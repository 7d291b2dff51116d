// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcitec/font-nexus/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "fontnexus"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes every environment override except GroupsEnv.
	EnvPrefix = "FONTNEXUS"
	// GroupsEnv selects the enabled Microsoft font groups.
	GroupsEnv = "WINDOWS_FONT_GROUPS"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns $XDG_CONFIG_HOME/fontnexus, falling back to os.UserConfigDir.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultConfigPath is the config file inside ConfigDir.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It also returns the config file that was merged, or
// "" when only defaults and the environment apply.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("microsoft.groups", GroupsEnv, EnvPrefix+"_MICROSOFT_GROUPS"); err != nil {
		return nil, "", fmt.Errorf("failed to bind %s: %w", GroupsEnv, err)
	}

	resolvedPath, err := findConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Compare it with the output of 'fontnexus config dump'").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Paths.Base == "" {
		cfg.Paths.Base = "."
	}
	// An exported but empty WINDOWS_FONT_GROUPS selects no groups.
	if groups, ok := os.LookupEnv(GroupsEnv); ok && groups == "" {
		cfg.Microsoft.Groups = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check the " + EnvPrefix + "_* environment variables").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// findConfigFile picks the explicit path, then ConfigDir, then the working
// directory. A missing explicit path is an error, missing defaults are not.
func findConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'fontnexus config init' to create a default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		var err error
		if cfgDir, err = ConfigDir(); err != nil {
			return "", err
		}
	}

	name := ConfigFileName + "." + ConfigFileExt
	for _, candidate := range []string{filepath.Join(cfgDir, name), name} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("paths.base", d.Paths.Base)
	v.SetDefault("paths.output", d.Paths.Output)
	v.SetDefault("paths.source", d.Paths.Source)
	v.SetDefault("paths.temp", d.Paths.Temp)
	v.SetDefault("microsoft.windows_version", int(d.Microsoft.WindowsVersion))
	v.SetDefault("microsoft.groups", d.Microsoft.Groups)
	v.SetDefault("microsoft.manifest_base", d.Microsoft.ManifestBase)
	v.SetDefault("microsoft.group_prefix", d.Microsoft.GroupPrefix)
	v.SetDefault("apple.fonts_page", d.Apple.FontsPage)
	v.SetDefault("apple.archive_ext", d.Apple.ArchiveExt)
	v.SetDefault("tools.seven_zip", d.Tools.SevenZip)
	v.SetDefault("tools.fc_scan", d.Tools.FcScan)
	v.SetDefault("metadata.backend", string(d.Metadata.Backend))
	v.SetDefault("ui.verbose", d.UI.Verbose)
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, len(data), maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Optional fields make Concrete(false) the right level: absent keys keep defaults.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the defaults to path unless a file is already
// there. It reports whether a file was written.
func CreateDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// fontnexus configuration file\n")
	sb.WriteString("// Every field is optional. Environment variables override this file.\n\n")

	sb.WriteString("paths: {\n")
	fmt.Fprintf(&sb, "\tbase:   %q\n", cfg.Paths.Base)
	fmt.Fprintf(&sb, "\toutput: %q\n", cfg.Paths.Output)
	fmt.Fprintf(&sb, "\tsource: %q\n", cfg.Paths.Source)
	fmt.Fprintf(&sb, "\ttemp:   %q\n", cfg.Paths.Temp)
	sb.WriteString("}\n")

	sb.WriteString("\nmicrosoft: {\n")
	fmt.Fprintf(&sb, "\twindows_version: %d\n", int(cfg.Microsoft.WindowsVersion))
	fmt.Fprintf(&sb, "\tgroups:          %q\n", cfg.Microsoft.Groups)
	fmt.Fprintf(&sb, "\tmanifest_base:   %q\n", cfg.Microsoft.ManifestBase)
	fmt.Fprintf(&sb, "\tgroup_prefix:    %q\n", cfg.Microsoft.GroupPrefix)
	sb.WriteString("}\n")

	sb.WriteString("\napple: {\n")
	fmt.Fprintf(&sb, "\tfonts_page:  %q\n", cfg.Apple.FontsPage)
	fmt.Fprintf(&sb, "\tarchive_ext: %q\n", cfg.Apple.ArchiveExt)
	sb.WriteString("}\n")

	sb.WriteString("\ntools: {\n")
	fmt.Fprintf(&sb, "\tseven_zip: %q\n", cfg.Tools.SevenZip)
	fmt.Fprintf(&sb, "\tfc_scan:   %q\n", cfg.Tools.FcScan)
	sb.WriteString("}\n")

	sb.WriteString("\nmetadata: {\n")
	fmt.Fprintf(&sb, "\tbackend: %q\n", cfg.Metadata.Backend)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
