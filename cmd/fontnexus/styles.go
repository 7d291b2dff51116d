// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output, tuned for dark terminals.
const (
	// ColorPrimary is purple, for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green, for enabled groups and completed steps.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red, for errors and disabled groups.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber, for the licensing banner and warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue, for family names, paths and sizes.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary text.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle marks positive outcomes.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle marks errors.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle marks warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// ValueStyle highlights names, paths and sizes.
	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// disabledStyle is for disabled groups.
	disabledStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// bannerStyle frames the licensing notice.
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning).
			MarginBottom(1)
)
