package output

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F59E0B")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorDanger  = lipgloss.Color("#EF4444")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#4B5563")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(32)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Align(lipgloss.Right).
				Width(16)

	MetricPositiveStyle = MetricValueStyle.Foreground(ColorSuccess)
	MetricNegativeStyle = MetricValueStyle.Foreground(ColorDanger)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginBottom(1)

	RecommendationStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(ColorSuccess).
				Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)
)

// valueStyle colors headline figures by direction
func valueStyle(negative, highlight bool) lipgloss.Style {
	switch {
	case negative:
		return MetricNegativeStyle
	case highlight:
		return MetricPositiveStyle
	default:
		return MetricValueStyle
	}
}
