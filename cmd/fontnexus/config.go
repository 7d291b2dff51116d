// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/arcitec/font-nexus/internal/config"
	"github.com/arcitec/font-nexus/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `fontnexus config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage fontnexus configuration",
		Long: `Manage fontnexus configuration.

Configuration is stored in:
  - Linux: ~/.config/fontnexus/config.cue
  - macOS: ~/Library/Application Support/fontnexus/config.cue
  - Windows: %APPDATA%\fontnexus\config.cue

Environment variables (WINDOWS_FONT_GROUPS, FONTNEXUS_*) override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(err)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, path, err := app.loadConfig(ctx)
	if err != nil {
		return app.fail(err)
	}

	w := app.stdout
	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", SubtitleStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", SubtitleStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	section(w, "paths")
	entry(w, "base", cfg.Paths.Base)
	entry(w, "output", cfg.OutputDir())
	entry(w, "source", cfg.SourceDir())
	entry(w, "temp", cfg.TempDir())

	section(w, "microsoft")
	entry(w, "windows_version", cfg.Microsoft.WindowsVersion)
	entry(w, "groups", cfg.Microsoft.Groups)
	entry(w, "manifest_base", cfg.Microsoft.ManifestBase)
	entry(w, "group_prefix", cfg.Microsoft.GroupPrefix)

	section(w, "apple")
	entry(w, "fonts_page", cfg.Apple.FontsPage)
	entry(w, "archive_ext", cfg.Apple.ArchiveExt)

	section(w, "tools")
	entry(w, "seven_zip", cfg.Tools.SevenZip)
	entry(w, "fc_scan", cfg.Tools.FcScan)

	section(w, "metadata")
	entry(w, "backend", cfg.Metadata.Backend)

	section(w, "ui")
	entry(w, "verbose", cfg.UI.Verbose)

	return nil
}

func section(w io.Writer, name string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", TitleStyle.Render(name))
}

func entry(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s: %s\n", key, ValueStyle.Render(fmt.Sprint(value)))
}

func initConfig(app *App) error {
	path, err := configFilePath(app)
	if err != nil {
		return app.fail(err)
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return app.fail(issue.NewErrorContext().
			WithOperation("create default configuration").
			WithResource(path).
			WithSuggestion("Check that the config directory is writable").
			Wrap(err).
			BuildError())
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	path, err := configFilePath(app)
	if err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.stdout, "Config file: %s\n", path)
	return nil
}

// configFilePath is --config when given, else the per-user default.
func configFilePath(app *App) (string, error) {
	if app.configPath != "" {
		return app.configPath, nil
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		return "", issue.WrapWithContext(err, "locate config directory", "")
	}
	return path, nil
}
