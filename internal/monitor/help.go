package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ferromon/ferro/internal/ui"
)

// Help overlay styles
var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorInfo).
			Padding(0, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo).
			Bold(true)
)

// renderHelp renders the keyboard help box for the current screen. The
// global bindings always show; the screen section varies.
func (m Model) renderHelp() string {
	lines := []string{
		helpTitleStyle.Render("Help"),
		"Global:",
		"  q — quit",
		"  ? — toggle help",
		"  Esc — back to dashboard",
		"  r — refresh now",
		"",
	}

	switch m.screen {
	case ScreenProcesses:
		lines = append(lines,
			"Processes:",
			"  Tab — toggle CPU/Mem list",
			"  ↑/↓ — scroll",
		)
	case ScreenDiskDive:
		lines = append(lines,
			"Disk dive:",
			"  s — start scan",
			"  Tab — change target",
			"  ↑/↓ — scroll",
		)
	default:
		lines = append(lines,
			"Dashboard:",
			"  p — processes",
			"  d — disk dive",
			"  f — toggle mount filter (filtered ↔ all)",
		)
	}

	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}
