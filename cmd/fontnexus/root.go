// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fontnexus",
		Short: "Build curated Microsoft and Apple font collections",
		Long: TitleStyle.Render("fontnexus") + SubtitleStyle.Render(" - curated Microsoft and Apple font collections") + `

fontnexus copies the Windows fonts selected by the AUR ttf-ms-win<N>-auto
font groups, and unpacks the Apple fonts from the DMG archives on Apple's
developer site. Both collections are sorted into one directory per family.

` + SubtitleStyle.Render("Examples:") + `
  fontnexus build                   Build both collections
  fontnexus build --report run.toml Build and write a TOML run report
  fontnexus groups                  Audit the Microsoft group selection
  fontnexus classify font.ttf       Print the family of a font
  fontnexus config init             Create a default configuration file`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/fontnexus/config.cue)")

	root.AddCommand(newBuildCommand(app))
	root.AddCommand(newGroupsCommand(app))
	root.AddCommand(newClassifyCommand(app))
	root.AddCommand(newConfigCommand(app))

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// errorHandler prints errors that no command handler rendered.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the command tree. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(errorHandler),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
