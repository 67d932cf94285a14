package monitor

import (
	"sort"
	"strings"

	"github.com/ferromon/ferro/internal/metrics"
)

// NoDisksLabel is the primary-disk sentinel when no filesystem is mounted.
const NoDisksLabel = "no disks"

// maxDiskRows caps the dashboard disk table.
const maxDiskRows = 7

// Percent computes used/total as a percentage, returning 0 for an
// empty total so callers never divide by zero.
func Percent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

// virtualFstypes are pseudo filesystems hidden from the default disk table.
var virtualFstypes = map[string]bool{
	"tmpfs":    true,
	"devtmpfs": true,
	"udev":     true,
	"overlay":  true,
	"squashfs": true,
}

// hiddenMountPrefixes are runtime mount trees hidden alongside the
// virtual filesystem types.
var hiddenMountPrefixes = []string{"/run", "/dev", "/sys", "/proc"}

func hiddenMount(d metrics.Disk) bool {
	if virtualFstypes[d.Fstype] {
		return true
	}
	for _, p := range hiddenMountPrefixes {
		if d.Mount == p || strings.HasPrefix(d.Mount, p+"/") {
			return true
		}
	}
	return false
}

// physicalDisk reports whether a partition looks like a real block
// device rather than a pseudo or loopback mount.
func physicalDisk(d metrics.Disk) bool {
	if virtualFstypes[d.Fstype] {
		return false
	}
	if strings.HasPrefix(d.Device, "/dev/loop") {
		return false
	}
	return strings.HasPrefix(d.Device, "/dev/")
}

// BuildSnapshot derives the immutable per-tick view from one raw
// metrics sample. showAllMounts disables the virtual-filesystem filter
// on the disk table.
func BuildSnapshot(m *metrics.Metrics, showAllMounts bool) VmSnapshot {
	cores := m.CPU.Cores
	if cores < 1 {
		cores = 1
	}

	snap := VmSnapshot{
		Timestamp:      m.Timestamp,
		CPUUsage:       m.CPU.Percent,
		CPUCores:       cores,
		NormalizedLoad: m.CPU.LoadAvg[0] / float64(cores),
		LoadAvg:        m.CPU.LoadAvg,
		StealPercent:   m.StealPercent,
		RunQueue:       m.RunQueue,

		MemoryTotal:     m.Memory.Total,
		MemoryUsed:      m.Memory.Used,
		MemoryAvailable: m.Memory.Available,
		MemoryPercent:   Percent(m.Memory.Used, m.Memory.Total),

		SwapTotal:   m.Swap.Total,
		SwapUsed:    m.Swap.Used,
		SwapPercent: Percent(m.Swap.Used, m.Swap.Total),
	}
	snap.AvailableMemoryPercent = Percent(m.Memory.Available, m.Memory.Total)

	snap.PrimaryDisk = primaryDisk(m.Disks)
	snap.Disks = diskTable(m.Disks, showAllMounts)
	snap.Processes = procRows(m.Processes)
	return snap
}

// primaryDisk picks the partition shown on the summary card: the first
// physical block device, falling back to the first partition of any
// kind, falling back to the sentinel.
func primaryDisk(disks []metrics.Disk) DiskUsage {
	pick := -1
	for i, d := range disks {
		if physicalDisk(d) {
			pick = i
			break
		}
	}
	if pick < 0 && len(disks) > 0 {
		pick = 0
	}
	if pick < 0 {
		return DiskUsage{Label: NoDisksLabel}
	}

	d := disks[pick]
	used := d.TotalBytes - d.FreeBytes
	return DiskUsage{
		Label:      d.Mount,
		TotalBytes: d.TotalBytes,
		UsedBytes:  used,
		Percent:    Percent(used, d.TotalBytes),
	}
}

func diskTable(disks []metrics.Disk, showAll bool) []DiskRow {
	rows := make([]DiskRow, 0, len(disks))
	for _, d := range disks {
		if !showAll && hiddenMount(d) {
			continue
		}
		used := d.TotalBytes - d.FreeBytes
		rows = append(rows, DiskRow{
			Device:      d.Device,
			Mount:       d.Mount,
			Fstype:      d.Fstype,
			TotalBytes:  d.TotalBytes,
			UsedBytes:   used,
			AvailBytes:  d.FreeBytes,
			UsedPercent: Percent(used, d.TotalBytes),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalBytes > rows[j].TotalBytes
	})
	if len(rows) > maxDiskRows {
		rows = rows[:maxDiskRows]
	}
	return rows
}

func procRows(procs []metrics.Process) []ProcRow {
	rows := make([]ProcRow, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, ProcRow{
			PID:         p.PID,
			Name:        p.Name,
			CPUTenths:   int64(p.CPUPercent*10 + 0.5),
			MemoryBytes: p.MemoryBytes,
		})
	}
	return rows
}

// ProcSort selects the process-table ordering.
type ProcSort int

const (
	SortByCPU ProcSort = iota
	SortByMemory
)

// Next cycles to the other sort column.
func (s ProcSort) Next() ProcSort {
	if s == SortByCPU {
		return SortByMemory
	}
	return SortByCPU
}

// String returns the column label for the footer.
func (s ProcSort) String() string {
	if s == SortByMemory {
		return "mem"
	}
	return "cpu"
}

// SortProcs orders rows descending by the selected column, breaking
// ties by PID so repeated renders are stable.
func SortProcs(rows []ProcRow, by ProcSort) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if by == SortByMemory {
			if a.MemoryBytes != b.MemoryBytes {
				return a.MemoryBytes > b.MemoryBytes
			}
		} else if a.CPUTenths != b.CPUTenths {
			return a.CPUTenths > b.CPUTenths
		}
		return a.PID < b.PID
	})
}

// TopProcs returns the first n rows after sorting a copy of rows.
func TopProcs(rows []ProcRow, by ProcSort, n int) []ProcRow {
	out := make([]ProcRow, len(rows))
	copy(out, rows)
	SortProcs(out, by)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
