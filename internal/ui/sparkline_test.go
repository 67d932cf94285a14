package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stripANSI removes escape sequences so tests can compare glyphs.
func stripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func TestRenderSparklineEmpty(t *testing.T) {
	assert.Equal(t, "", RenderSparkline(nil, 10))
	assert.Equal(t, "", RenderSparkline([]int64{100}, 0))
}

func TestRenderSparklineLevels(t *testing.T) {
	// 0% -> lowest block, 100% -> highest block.
	got := stripANSI(RenderSparkline([]int64{0, 1000}, 10))
	assert.Equal(t, "▁█", got)
}

func TestRenderSparklineWindowsToWidth(t *testing.T) {
	tenths := []int64{0, 0, 0, 500, 1000}
	got := stripANSI(RenderSparkline(tenths, 2))
	assert.Equal(t, 2, len([]rune(got)))
	assert.Equal(t, "▄█", got)
}

func TestRenderSparklineFixedScale(t *testing.T) {
	// Constant mid-range values should all map to the same level, not be
	// rescaled to fill the band.
	got := stripANSI(RenderSparkline([]int64{500, 500, 500}, 10))
	runes := []rune(got)
	for _, r := range runes {
		assert.Equal(t, runes[0], r)
	}
	assert.NotEqual(t, '█', runes[0])
	assert.NotEqual(t, '▁', runes[0])
}
