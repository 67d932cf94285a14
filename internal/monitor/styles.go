package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ferromon/ferro/internal/ui"
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(ui.ColorInfo).
				Bold(true)

	HeaderHintStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor()).
			Italic(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor()).
			Padding(0, 1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor())

	ValueStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ui.ColorWarning).
				Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)

	// Card styles; each dashboard card gets its own border color.
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginRight(1)

	CPUCardStyle    = cardStyle.BorderForeground(ui.ColorInfo)
	MemoryCardStyle = cardStyle.BorderForeground(ui.ColorAccent)
	DiskCardStyle   = cardStyle.BorderForeground(ui.ColorSuccess)

	CardTitleStyle = lipgloss.NewStyle().Bold(true)
)

// Severity badge styles
var severityStyles = map[Severity]lipgloss.Style{
	SeverityOK:       lipgloss.NewStyle().Foreground(ui.ColorSuccess).Bold(true),
	SeverityWarning:  lipgloss.NewStyle().Foreground(ui.ColorWarning).Bold(true),
	SeverityCritical: lipgloss.NewStyle().Foreground(ui.ColorError).Bold(true),
}

// severityBadges are the bracketed labels shown in the health line.
var severityBadges = map[Severity]string{
	SeverityOK:       "[ OK ]",
	SeverityWarning:  "[ WARN ]",
	SeverityCritical: "[ CRIT ]",
}

// SeverityBadge renders the colored status badge for a severity.
func SeverityBadge(s Severity) string {
	return severityStyles[s].Render(severityBadges[s])
}

// renderGauge draws a horizontal usage bar colored by severity.
func renderGauge(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	filled := int(percent/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(ui.StatusColor(percent)).Render(bar)
}
