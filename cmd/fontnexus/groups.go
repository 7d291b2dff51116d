// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/arcitec/font-nexus/internal/pipeline"

	"github.com/spf13/cobra"
)

func newGroupsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Audit the Microsoft font group selection",
		Long: `Resolve the AUR font group manifest and check every listed file against
<source>/windows/Fonts, without copying anything.

Select groups with WINDOWS_FONT_GROUPS or microsoft.groups in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(err)
			}
			svc, err := app.NewBuild(cfg, app.logger())
			if err != nil {
				return app.fail(err)
			}
			plan, err := svc.Groups(cmd.Context())
			if err != nil {
				return app.fail(err)
			}

			fmt.Fprintf(app.stdout, "%s %s\n\n", SubtitleStyle.Render("Manifest:"), plan.ManifestURL)
			enabled, disabled := pipeline.MicrosoftGroups(plan)
			a := plan.Analysis
			fmt.Fprint(app.stdout, renderGroups(enabled, disabled, a.SizeEnabled, a.SizeDisabled, a.Unknown))
			return nil
		},
	}
}
