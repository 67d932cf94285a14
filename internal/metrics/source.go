// Package metrics samples host resource counters for the dashboard.
// CPU, memory, swap, disk, and process data come from gopsutil; the
// Linux-specific steal and run-queue counters are parsed from /proc
// directly since gopsutil does not expose them as deltas.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/ferromon/ferro/internal/errors"
	"github.com/ferromon/ferro/internal/logger"
)

// SystemSource reads metrics from the local host.
type SystemSource struct {
	log logger.Logger

	procStatPath    string
	procLoadavgPath string

	mu        sync.Mutex
	prevTotal int64
	prevSteal int64
	hasPrev   bool
}

// NewSystemSource creates a Source backed by the local host.
func NewSystemSource(log logger.Logger) *SystemSource {
	if log == nil {
		log = logger.Noop()
	}
	return &SystemSource{
		log:             log,
		procStatPath:    "/proc/stat",
		procLoadavgPath: "/proc/loadavg",
	}
}

// Refresh samples all counters. Individual provider failures degrade the
// affected fields rather than failing the whole read; only a total failure
// (no CPU and no memory data) returns an error.
func (s *SystemSource) Refresh(ctx context.Context, withProcesses bool) (*Metrics, error) {
	m := &Metrics{Timestamp: time.Now()}

	cpuOK := s.refreshCPU(ctx, m)
	memOK := s.refreshMemory(ctx, m)
	s.refreshDisks(ctx, m)
	if withProcesses {
		s.refreshProcesses(ctx, m)
	}

	// Optional Linux counters; absence is data, not an error.
	m.StealPercent = s.sampleSteal()
	m.RunQueue = s.sampleRunQueue()

	if !cpuOK && !memOK {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrMetrics,
				"Metrics collection timed out",
				"Increase the tick interval with --tick")
		}
		return nil, errors.New(errors.ErrMetrics,
			"No metrics providers responded",
			"Check that /proc is mounted and readable")
	}
	return m, nil
}

func (s *SystemSource) refreshCPU(ctx context.Context, m *Metrics) bool {
	ok := false

	// Interval 0 computes usage since the previous call, which fits the
	// tick loop without blocking it.
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		m.CPU.Percent = percents[0]
		ok = true
	} else if err != nil {
		s.log.Debug("cpu percent unavailable: %v", err)
	}

	if cores, err := cpu.CountsWithContext(ctx, true); err == nil && cores > 0 {
		m.CPU.Cores = cores
		ok = true
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		m.CPU.LoadAvg = [3]float64{avg.Load1, avg.Load5, avg.Load15}
		ok = true
	} else {
		s.log.Debug("load average unavailable: %v", err)
	}

	return ok
}

func (s *SystemSource) refreshMemory(ctx context.Context, m *Metrics) bool {
	ok := false

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		m.Memory = MemoryMetrics{
			Total:     vm.Total,
			Used:      vm.Used,
			Available: vm.Available,
		}
		ok = true
	} else {
		s.log.Debug("virtual memory unavailable: %v", err)
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		m.Swap = SwapMetrics{Total: sw.Total, Used: sw.Used}
	}

	return ok
}

func (s *SystemSource) refreshDisks(ctx context.Context, m *Metrics) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		s.log.Debug("disk partitions unavailable: %v", err)
		return
	}

	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true

		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue
		}
		m.Disks = append(m.Disks, Disk{
			Device:     p.Device,
			Mount:      p.Mountpoint,
			Fstype:     p.Fstype,
			TotalBytes: usage.Total,
			FreeBytes:  usage.Free,
		})
	}
}

func (s *SystemSource) refreshProcesses(ctx context.Context, m *Metrics) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		s.log.Debug("process table unavailable: %v", err)
		return
	}

	m.Processes = make([]Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Process likely exited between enumeration and read.
			continue
		}

		row := Process{PID: p.Pid, Name: name}
		if pct, err := p.CPUPercentWithContext(ctx); err == nil {
			row.CPUPercent = pct
		}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			row.MemoryBytes = mi.RSS
		}
		m.Processes = append(m.Processes, row)
	}
}
