// Package tuistyles holds the colour palette and lipgloss styles shared by the
// TUI and its components.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#1F5FAD", Dark: "#6CA6F0"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#5B4B8A", Dark: "#A99BE0"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#B85C00", Dark: "#FFB454"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#1E7B34", Dark: "#5FD068"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF6B6B"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#00797A", Dark: "#4FD1C5"}

	ColorForeground = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E6E6E6"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#8A8A8A"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#C8C8C8", Dark: "#444444"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Width(16)

	FocusedLabelStyle = FieldLabelStyle.
				Bold(true).
				Foreground(ColorPrimary)

	FieldValueStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	MetricNegativeStyle = lipgloss.NewStyle().
				Foreground(ColorDanger)

	SliderTrackStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	SliderThumbStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)
)

// MetricTrendStyle colours a figure by whether it helps or hurts take-home pay
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}
