package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferromon/ferro/internal/logger"
)

const procStatSample = `cpu  10000 200 3000 80000 500 0 100 400 0 0
cpu0 2500 50 750 20000 125 0 25 100 0 0
intr 12345
ctxt 67890
`

func TestParseProcStatTotals(t *testing.T) {
	total, steal, err := parseProcStatTotals(procStatSample)
	require.NoError(t, err)
	assert.Equal(t, int64(10000+200+3000+80000+500+0+100+400), total)
	assert.Equal(t, int64(400), steal)
}

func TestParseProcStatTotalsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no cpu line", "intr 1\nctxt 2\n"},
		{"short cpu line", "cpu 1 2\n"},
		{"garbage field", "cpu 1 2 3 x 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseProcStatTotals(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseRunQueue(t *testing.T) {
	assert.Equal(t, "2/713", parseRunQueue("0.31 0.29 0.25 2/713 12345\n"))
	assert.Equal(t, "", parseRunQueue("0.31 0.29 0.25"))
	assert.Equal(t, "", parseRunQueue(""))
	assert.Equal(t, "", parseRunQueue("0.31 0.29 0.25 notafrac 1"))
}

func TestSampleStealRequiresPriorSample(t *testing.T) {
	dir := t.TempDir()
	statPath := filepath.Join(dir, "stat")

	write := func(content string) {
		require.NoError(t, os.WriteFile(statPath, []byte(content), 0644))
	}

	s := NewSystemSource(logger.Noop())
	s.procStatPath = statPath

	// First read establishes the baseline, no percentage yet.
	write("cpu 100 0 0 800 0 0 0 10 0 0\n")
	assert.Nil(t, s.sampleSteal())

	// Second read: total delta 1000, steal delta 100 -> 10%.
	write("cpu 500 0 0 1300 0 0 0 110 0 0\n")
	got := s.sampleSteal()
	require.NotNil(t, got)
	assert.InDelta(t, 10.0, *got, 0.001)
}

func TestSampleStealUnreadableFile(t *testing.T) {
	s := NewSystemSource(logger.Noop())
	s.procStatPath = filepath.Join(t.TempDir(), "missing")
	assert.Nil(t, s.sampleSteal())
}

func TestSampleRunQueueUnreadableFile(t *testing.T) {
	s := NewSystemSource(logger.Noop())
	s.procLoadavgPath = filepath.Join(t.TempDir(), "missing")
	assert.Equal(t, "", s.sampleRunQueue())
}
