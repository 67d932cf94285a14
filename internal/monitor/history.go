package monitor

import "math"

// HistoryCapacity is how many samples each rolling buffer retains.
const HistoryCapacity = 120

// Buffer is a fixed-capacity FIFO ring of fixed-point samples. Percent
// values are stored as tenths (value * 10, rounded half-up) so that
// history survives in integers and renders without drift.
type Buffer struct {
	data  []int64
	head  int
	count int
}

func newBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]int64, capacity)}
}

// Push records one percent sample, evicting the oldest when full.
func (b *Buffer) Push(percent float64) {
	b.data[b.head] = int64(math.Round(percent * 10))
	b.head = (b.head + 1) % len(b.data)
	if b.count < len(b.data) {
		b.count++
	}
}

// Len reports how many samples the buffer currently holds.
func (b *Buffer) Len() int {
	return b.count
}

// Values returns the samples oldest-first as fixed-point tenths.
func (b *Buffer) Values() []int64 {
	out := make([]int64, b.count)
	start := (b.head - b.count + len(b.data)) % len(b.data)
	for i := 0; i < b.count; i++ {
		out[i] = b.data[(start+i)%len(b.data)]
	}
	return out
}

// Newest returns the most recent sample, or 0 when empty.
func (b *Buffer) Newest() int64 {
	if b.count == 0 {
		return 0
	}
	return b.data[(b.head-1+len(b.data))%len(b.data)]
}

// History holds the rolling percent series the dashboard charts.
type History struct {
	CPU    *Buffer
	Memory *Buffer
	Swap   *Buffer
}

// NewHistory returns empty buffers at full capacity.
func NewHistory() *History {
	return &History{
		CPU:    newBuffer(HistoryCapacity),
		Memory: newBuffer(HistoryCapacity),
		Swap:   newBuffer(HistoryCapacity),
	}
}

// Observe appends one snapshot's percentages to every series.
func (h *History) Observe(snap VmSnapshot) {
	h.CPU.Push(snap.CPUUsage)
	h.Memory.Push(snap.MemoryPercent)
	h.Swap.Push(snap.SwapPercent)
}
