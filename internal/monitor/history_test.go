package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferFixedPointRounding(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    int64
	}{
		{"whole number", 42.0, 420},
		{"rounds down", 42.34, 423},
		{"rounds half up", 42.35, 424},
		{"rounds up", 42.36, 424},
		{"zero", 0, 0},
		{"full scale", 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuffer(4)
			b.Push(tt.percent)
			assert.Equal(t, tt.want, b.Newest())
		})
	}
}

func TestBufferExactCapacityKeepsOrder(t *testing.T) {
	b := newBuffer(HistoryCapacity)
	for i := 0; i < HistoryCapacity; i++ {
		b.Push(float64(i))
	}

	vals := b.Values()
	require.Len(t, vals, HistoryCapacity)
	for i, v := range vals {
		assert.Equal(t, int64(i*10), v)
	}
}

func TestBufferOverflowDropsOldestFirst(t *testing.T) {
	b := newBuffer(HistoryCapacity)
	total := HistoryCapacity + 30
	for i := 0; i < total; i++ {
		b.Push(float64(i % 100))
	}

	vals := b.Values()
	require.Len(t, vals, HistoryCapacity)
	// First surviving sample is the one pushed at index total-capacity.
	assert.Equal(t, int64((total-HistoryCapacity)%100*10), vals[0])
	assert.Equal(t, int64((total-1)%100*10), vals[HistoryCapacity-1])
	assert.Equal(t, vals[HistoryCapacity-1], b.Newest())
}

func TestBufferEmpty(t *testing.T) {
	b := newBuffer(8)
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Values())
	assert.Equal(t, int64(0), b.Newest())
}

func TestHistoryObserveFansOut(t *testing.T) {
	h := NewHistory()
	h.Observe(VmSnapshot{CPUUsage: 12.5, MemoryPercent: 50, SwapPercent: 3.3})
	h.Observe(VmSnapshot{CPUUsage: 20, MemoryPercent: 55.5, SwapPercent: 0})

	assert.Equal(t, []int64{125, 200}, h.CPU.Values())
	assert.Equal(t, []int64{500, 555}, h.Memory.Values())
	assert.Equal(t, []int64{33, 0}, h.Swap.Values())
}
