// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/arcitec/font-nexus/internal/report"
	"github.com/arcitec/font-nexus/pkg/types"
)

const licenseNotice = "WARNING: BY USING THIS SOFTWARE, YOU AGREE THAT YOU HAVE LICENSES FOR ALL FONTS " +
	"AND THAT YOU ARE USING THEM ON THEIR INTENDED PLATFORMS, IN ACCORDANCE WITH THEIR LICENSING AGREEMENTS."

func renderBanner() string {
	return bannerStyle.Render("***\n" + licenseNotice + "\n***")
}

// renderGroups lists enabled and disabled groups with their sizes.
func renderGroups(enabled, disabled []report.Group, sizeEnabled, sizeDisabled types.ByteSize, unknown []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s (%s):\n", TitleStyle.Render("Enabled Microsoft font groups"), ValueStyle.Render(sizeEnabled.String()))
	for _, g := range enabled {
		fmt.Fprintf(&sb, "%s %s: %s\n", SuccessStyle.Render("+"), g.Name, ValueStyle.Render(g.Size.String()))
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "%s (%s):\n", TitleStyle.Render("Disabled Microsoft font groups"), ValueStyle.Render(sizeDisabled.String()))
	for _, g := range disabled {
		fmt.Fprintf(&sb, "%s %s: %s\n", disabledStyle.Render("-"), g.Name, ValueStyle.Render(g.Size.String()))
	}

	if len(unknown) > 0 {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s selected groups not in the manifest: %s\n",
			WarningStyle.Render("Warning:"), strings.Join(unknown, ", "))
	}
	return sb.String()
}

func renderFamilies(title string, families []report.Family) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", TitleStyle.Render(title))
	for _, f := range families {
		fmt.Fprintf(&sb, "* %s: %s\n", ValueStyle.Render(f.Name), strings.Join(f.Files, ", "))
	}
	return sb.String()
}

// renderSummary prints the end-of-build report.
func renderSummary(s *report.Summary) string {
	var sb strings.Builder

	if ms := s.Microsoft; ms != nil {
		sb.WriteString(renderGroups(ms.Enabled, ms.Disabled, ms.SizeEnabled, ms.SizeDisabled, ms.Unknown))
		sb.WriteString("\n")
		sb.WriteString(renderFamilies("Microsoft font families", ms.Families))
		fmt.Fprintf(&sb, "\nOutput font size (Microsoft): %s.\n\n", ValueStyle.Render(ms.OutputBytes.String()))
	}

	if apple := s.Apple; apple != nil {
		fmt.Fprintf(&sb, "%s:\n", TitleStyle.Render("Apple font archives"))
		for _, a := range apple.Archives {
			fmt.Fprintf(&sb, "* %s (%s)\n", a.URL, ValueStyle.Render(a.Size.String()))
		}
		fmt.Fprintf(&sb, "\nDeleted %s of useless legacy fonts:\n", ValueStyle.Render(apple.DeletedBytes.String()))
		for _, name := range apple.DeletedLegacy {
			fmt.Fprintf(&sb, "* %s\n", SubtitleStyle.Render(name))
		}
		sb.WriteString("\n")
		sb.WriteString(renderFamilies("Apple font families", apple.Families))
		fmt.Fprintf(&sb, "\nOutput font size (Apple): %s.\n\n", ValueStyle.Render(apple.OutputBytes.String()))
	}

	fmt.Fprintf(&sb, "Output font size (Total): %s.\n\n", ValueStyle.Render(s.TotalBytes.String()))
	fmt.Fprintf(&sb, "%s Build finished in %s (H:M:S).\n", SuccessStyle.Render("✓"), s.Elapsed)
	return sb.String()
}
