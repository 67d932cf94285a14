package metrics

import (
	"context"
	"time"
)

// Metrics contains one refresh of all host counters the dashboard consumes.
type Metrics struct {
	Timestamp time.Time

	CPU    CPUMetrics
	Memory MemoryMetrics
	Swap   SwapMetrics

	Disks     []Disk
	Processes []Process

	// Linux-only optional counters. Nil / empty when the backing /proc
	// files are unreadable or no prior sample exists for the delta.
	StealPercent *float64
	RunQueue     string
}

// CPUMetrics contains CPU usage information.
type CPUMetrics struct {
	Percent float64
	Cores   int
	LoadAvg [3]float64
}

// MemoryMetrics contains physical memory usage in bytes.
type MemoryMetrics struct {
	Total     uint64
	Used      uint64
	Available uint64
}

// SwapMetrics contains swap usage in bytes.
type SwapMetrics struct {
	Total uint64
	Used  uint64
}

// Disk describes one mounted filesystem.
type Disk struct {
	Device     string
	Mount      string
	Fstype     string
	TotalBytes uint64
	FreeBytes  uint64
}

// Process is one row of the process table.
type Process struct {
	PID         int32
	Name        string
	CPUPercent  float64
	MemoryBytes uint64
}

// Source is the capability the dashboard polls once per tick.
// withProcesses requests the (more expensive) process table refresh;
// callers skip it on ticks where the table is not needed.
type Source interface {
	Refresh(ctx context.Context, withProcesses bool) (*Metrics, error)
}
