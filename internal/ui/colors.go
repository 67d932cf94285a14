// Package ui provides shared terminal rendering helpers for ferro.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorAccent    lipgloss.Color = "5" // Magenta
)

// MutedColor returns the muted text color adapted to the terminal
// background. Bright black reads well on dark terminals but vanishes on
// light ones.
func MutedColor() lipgloss.Color {
	if termenv.HasDarkBackground() {
		return lipgloss.Color("8") // Gray (bright black)
	}
	return lipgloss.Color("240")
}

// StatusColor maps a usage percentage to a severity color.
//   - below 75%: green
//   - 75-90%: yellow
//   - 90%+: red
func StatusColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 90:
		return ColorError
	case percent >= 75:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
