// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/arcitec/font-nexus/internal/family"
	"github.com/arcitec/font-nexus/internal/pipeline"

	"github.com/spf13/cobra"
)

func newClassifyCommand(app *App) *cobra.Command {
	var metadata string

	cmd := &cobra.Command{
		Use:   "classify <font>...",
		Short: "Print the family each font would be filed under",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.loadConfig(cmd.Context())
			if err != nil {
				return app.fail(err)
			}
			if err := applyMetadataFlag(cfg, metadata); err != nil {
				return app.fail(err)
			}
			logger := app.logger()
			query, err := pipeline.NewQuery(cfg, logger)
			if err != nil {
				return app.fail(err)
			}

			classifier := family.NewClassifier(query, logger)
			for _, path := range args {
				name, err := classifier.Family(cmd.Context(), path)
				if err != nil {
					return app.fail(err)
				}
				fmt.Fprintf(app.stdout, "%s: %s\n", path, ValueStyle.Render(name))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metadata, "metadata", "", "metadata backend: fc-scan or native (overrides the config)")
	return cmd
}
