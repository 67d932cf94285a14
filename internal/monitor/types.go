package monitor

import "time"

// Severity is a three-level health status.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
)

// String returns a human-readable severity label.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "ok"
	}
}

// Issue is one triggered health rule.
type Issue struct {
	Severity Severity
	Reason   string
}

// HealthSummary is the classifier verdict for one snapshot.
type HealthSummary struct {
	// Status is the maximum severity across all triggered rules.
	Status Severity
	// PrimaryReason is the reason of the first rule that triggered, in
	// rule-evaluation order. Empty when Status is SeverityOK.
	PrimaryReason string
	// Secondary holds the remaining triggered issues in rule order,
	// duplicates preserved.
	Secondary []Issue
}

// DiskUsage is the primary-disk triple shown in the summary view.
type DiskUsage struct {
	Label      string
	TotalBytes uint64
	UsedBytes  uint64
	Percent    float64
}

// DiskRow is one mounted filesystem in the disk table.
type DiskRow struct {
	Device      string
	Mount       string
	Fstype      string
	TotalBytes  uint64
	UsedBytes   uint64
	AvailBytes  uint64
	UsedPercent float64
}

// ProcRow is one process-table row. CPU is stored as tenths of a percent
// so rows sort stably without float comparisons.
type ProcRow struct {
	PID         int32
	Name        string
	CPUTenths   int64
	MemoryBytes uint64
}

// CPUPercent returns the row's CPU usage as a percentage.
func (p ProcRow) CPUPercent() float64 {
	return float64(p.CPUTenths) / 10
}

// VmSnapshot is one immutable view of the host, created once per tick.
type VmSnapshot struct {
	Timestamp time.Time

	CPUUsage       float64 // 0–100
	CPUCores       int     // >= 1
	NormalizedLoad float64 // load_1m / cores
	LoadAvg        [3]float64

	// Optional Linux counters; StealPercent is nil and RunQueue empty
	// when the backing /proc data was unavailable.
	StealPercent *float64
	RunQueue     string

	MemoryTotal            uint64
	MemoryUsed             uint64
	MemoryAvailable        uint64
	MemoryPercent          float64
	AvailableMemoryPercent float64

	SwapTotal   uint64
	SwapUsed    uint64
	SwapPercent float64

	PrimaryDisk DiskUsage
	Disks       []DiskRow

	Processes []ProcRow
}
