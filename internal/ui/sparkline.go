package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline creates a sparkline from fixed-point tenths (value × 10),
// the storage format of the history buffers. The width parameter determines
// how many of the most recent samples are displayed. Values are mapped to
// 8 vertical levels over a fixed 0–100% range so the graph scale does not
// jump between redraws, and the color follows the newest value's severity.
func RenderSparkline(tenths []int64, width int) string {
	if len(tenths) == 0 || width <= 0 {
		return ""
	}

	if len(tenths) > width {
		tenths = tenths[len(tenths)-width:]
	}

	var sb strings.Builder
	sb.Grow(len(tenths) * 4) // UTF-8 block chars are up to 3 bytes

	numLevels := int64(len(sparklineBlockRunes))
	for _, v := range tenths {
		// 0..1000 tenths -> 0..7
		level := v * numLevels / 1001
		if level < 0 {
			level = 0
		} else if level >= numLevels {
			level = numLevels - 1
		}
		sb.WriteRune(sparklineBlockRunes[level])
	}

	last := float64(tenths[len(tenths)-1]) / 10
	style := lipgloss.NewStyle().Foreground(StatusColor(last))
	return style.Render(sb.String())
}
