// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/arcitec/font-nexus/internal/config"
	"github.com/arcitec/font-nexus/internal/issue"
	"github.com/arcitec/font-nexus/internal/report"

	"github.com/spf13/cobra"
)

func newBuildCommand(app *App) *cobra.Command {
	var (
		reportPath string
		metadata   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the Microsoft and Apple font collections",
		Long: `Build the Microsoft and Apple font collections.

The output and temp directories are deleted first. Windows fonts are read
from <source>/windows/Fonts; Apple archives are cached in <source>/apple-dmgs
and only downloaded again when they change upstream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runBuild(cmd.Context(), reportPath, metadata)
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "write a TOML run report to this file")
	cmd.Flags().StringVar(&metadata, "metadata", "", "metadata backend: fc-scan or native (overrides the config)")

	return cmd
}

func (a *App) runBuild(ctx context.Context, reportPath, metadata string) error {
	cfg, _, err := a.loadConfig(ctx)
	if err != nil {
		return a.fail(err)
	}
	if err := applyMetadataFlag(cfg, metadata); err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.stdout, renderBanner())

	svc, err := a.NewBuild(cfg, a.logger())
	if err != nil {
		return a.fail(err)
	}
	summary, err := svc.Run(ctx)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintln(a.stdout)
	fmt.Fprint(a.stdout, renderSummary(summary))

	if reportPath != "" {
		if err := report.WriteTOML(reportPath, summary); err != nil {
			return a.fail(issue.WrapWithContext(err, "write run report", reportPath))
		}
		fmt.Fprintf(a.stdout, "%s Wrote run report to %s\n", SuccessStyle.Render("✓"), reportPath)
	}
	return nil
}

// applyMetadataFlag overrides the configured backend when --metadata is set.
func applyMetadataFlag(cfg *config.Config, value string) error {
	if value == "" {
		return nil
	}
	backend := config.MetadataBackend(value)
	if err := backend.Validate(); err != nil {
		return issue.NewErrorContext().
			WithOperation("select metadata backend").
			WithResource(value).
			WithSuggestion(fmt.Sprintf("Use %q or %q", config.BackendFcScan, config.BackendNative)).
			Wrap(err).
			BuildError()
	}
	cfg.Metadata.Backend = backend
	return nil
}
