package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    uint64
		expected string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kibibytes", 2048, "2.00 KiB"},
		{"mebibytes", 5 * 1024 * 1024, "5.00 MiB"},
		{"gibibytes", 3 * 1024 * 1024 * 1024, "3.00 GiB"},
		{"tebibytes", 2 * 1024 * 1024 * 1024 * 1024, "2.00 TiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBytes(tt.bytes))
		})
	}
}

func TestTrimTo(t *testing.T) {
	assert.Equal(t, "short", TrimTo("short", 10))
	assert.Equal(t, "long str…", TrimTo("long string here", 9))
	assert.Equal(t, "…", TrimTo("abc", 1))
}
