package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ferromon/ferro/internal/config"
	"github.com/ferromon/ferro/internal/errors"
	"github.com/ferromon/ferro/internal/logger"
	"github.com/ferromon/ferro/internal/metrics"
	"github.com/ferromon/ferro/internal/monitor"
	"github.com/ferromon/ferro/internal/ui"
)

// snapshotTimeout bounds the single metrics read.
const snapshotTimeout = 10 * time.Second

var snapshotAllMounts bool

// snapshotCmd takes one reading and prints it, for scripts and cron.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one metrics reading and exit",
	Long: `Collect a single metrics sample, classify host health, and print
the result without starting the dashboard.

Examples:
  ferro snapshot
  ferro snapshot --json
  ferro snapshot --json | jq .data.status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		if snapshotAllMounts {
			cfg.ShowAllMounts = true
		}

		source := metrics.NewSystemSource(logger.Default())
		payload, err := collectSnapshot(source, cfg.ShowAllMounts)
		if err != nil {
			return err
		}

		if jsonFlag {
			return WriteJSONSuccess(os.Stdout, payload)
		}
		printSnapshot(cmd.OutOrStdout(), payload)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotAllMounts, "all-mounts", false,
		"include virtual filesystems in the disk list")
	rootCmd.AddCommand(snapshotCmd)
}

// SnapshotPayload is the one-shot output shape, stable for scripting.
type SnapshotPayload struct {
	Timestamp     time.Time        `json:"timestamp"`
	Status        string           `json:"status"`
	PrimaryReason string           `json:"primary_reason,omitempty"`
	Secondary     []IssuePayload   `json:"secondary,omitempty"`
	CPU           CPUPayload       `json:"cpu"`
	Memory        MemoryPayload    `json:"memory"`
	Swap          SwapPayload      `json:"swap"`
	PrimaryDisk   DiskPayload      `json:"primary_disk"`
	Disks         []DiskRowPayload `json:"disks,omitempty"`
	TopCPU        []ProcPayload    `json:"top_cpu,omitempty"`
}

type IssuePayload struct {
	Severity string `json:"severity"`
	Reason   string `json:"reason"`
}

type CPUPayload struct {
	UsagePercent   float64   `json:"usage_percent"`
	Cores          int       `json:"cores"`
	NormalizedLoad float64   `json:"normalized_load"`
	LoadAvg        []float64 `json:"load_avg"`
	StealPercent   *float64  `json:"steal_percent,omitempty"`
	RunQueue       string    `json:"run_queue,omitempty"`
}

type MemoryPayload struct {
	TotalBytes       uint64  `json:"total_bytes"`
	UsedBytes        uint64  `json:"used_bytes"`
	AvailableBytes   uint64  `json:"available_bytes"`
	UsedPercent      float64 `json:"used_percent"`
	AvailablePercent float64 `json:"available_percent"`
}

type SwapPayload struct {
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

type DiskPayload struct {
	Label       string  `json:"label"`
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

type DiskRowPayload struct {
	Device      string  `json:"device"`
	Mount       string  `json:"mount"`
	Fstype      string  `json:"fstype"`
	TotalBytes  uint64  `json:"total_bytes"`
	AvailBytes  uint64  `json:"avail_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

type ProcPayload struct {
	PID         int32   `json:"pid"`
	Name        string  `json:"name"`
	CPUPercent  float64 `json:"cpu_percent"`
	MemoryBytes uint64  `json:"memory_bytes"`
}

// collectSnapshot reads the source once and folds the reading into the
// scripting payload. A single sample feeds the classifier, so the
// history-based swap rule cannot trigger here.
func collectSnapshot(source metrics.Source, showAllMounts bool) (*SnapshotPayload, error) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	sample, err := source.Refresh(ctx, true)
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, errors.New(errors.ErrMetrics,
			"Metric source returned no data",
			"Check that /proc is mounted and readable")
	}

	snap := monitor.BuildSnapshot(sample, showAllMounts)
	hist := monitor.NewHistory()
	hist.Observe(snap)
	health := monitor.Classify(snap, hist)

	payload := &SnapshotPayload{
		Timestamp:     snap.Timestamp,
		Status:        health.Status.String(),
		PrimaryReason: health.PrimaryReason,
		CPU: CPUPayload{
			UsagePercent:   snap.CPUUsage,
			Cores:          snap.CPUCores,
			NormalizedLoad: snap.NormalizedLoad,
			LoadAvg:        snap.LoadAvg[:],
			StealPercent:   snap.StealPercent,
			RunQueue:       snap.RunQueue,
		},
		Memory: MemoryPayload{
			TotalBytes:       snap.MemoryTotal,
			UsedBytes:        snap.MemoryUsed,
			AvailableBytes:   snap.MemoryAvailable,
			UsedPercent:      snap.MemoryPercent,
			AvailablePercent: snap.AvailableMemoryPercent,
		},
		Swap: SwapPayload{
			TotalBytes:  snap.SwapTotal,
			UsedBytes:   snap.SwapUsed,
			UsedPercent: snap.SwapPercent,
		},
		PrimaryDisk: DiskPayload{
			Label:       snap.PrimaryDisk.Label,
			TotalBytes:  snap.PrimaryDisk.TotalBytes,
			UsedBytes:   snap.PrimaryDisk.UsedBytes,
			UsedPercent: snap.PrimaryDisk.Percent,
		},
	}

	for _, is := range health.Secondary {
		payload.Secondary = append(payload.Secondary, IssuePayload{
			Severity: is.Severity.String(),
			Reason:   is.Reason,
		})
	}
	for _, d := range snap.Disks {
		payload.Disks = append(payload.Disks, DiskRowPayload{
			Device:      d.Device,
			Mount:       d.Mount,
			Fstype:      d.Fstype,
			TotalBytes:  d.TotalBytes,
			AvailBytes:  d.AvailBytes,
			UsedPercent: d.UsedPercent,
		})
	}
	for _, p := range monitor.TopProcs(snap.Processes, monitor.SortByCPU, 5) {
		payload.TopCPU = append(payload.TopCPU, ProcPayload{
			PID:         p.PID,
			Name:        p.Name,
			CPUPercent:  p.CPUPercent(),
			MemoryBytes: p.MemoryBytes,
		})
	}
	return payload, nil
}

// printSnapshot writes the human-readable one-shot report.
func printSnapshot(w io.Writer, p *SnapshotPayload) {
	fmt.Fprintf(w, "Status: %s\n", p.Status)
	if p.PrimaryReason != "" {
		fmt.Fprintf(w, "Reason: %s\n", p.PrimaryReason)
	}
	for _, is := range p.Secondary {
		fmt.Fprintf(w, "  also (%s): %s\n", is.Severity, is.Reason)
	}

	fmt.Fprintf(w, "CPU: %.1f%% on %d cores, load %.2f /core\n",
		p.CPU.UsagePercent, p.CPU.Cores, p.CPU.NormalizedLoad)
	if p.CPU.StealPercent != nil {
		fmt.Fprintf(w, "Steal: %.1f%%\n", *p.CPU.StealPercent)
	}
	fmt.Fprintf(w, "Memory: %s / %s (%.1f%% used, %.1f%% available)\n",
		ui.FormatBytes(p.Memory.UsedBytes), ui.FormatBytes(p.Memory.TotalBytes),
		p.Memory.UsedPercent, p.Memory.AvailablePercent)
	fmt.Fprintf(w, "Swap: %s / %s\n",
		ui.FormatBytes(p.Swap.UsedBytes), ui.FormatBytes(p.Swap.TotalBytes))
	fmt.Fprintf(w, "Disk (%s): %s / %s (%.0f%%)\n",
		p.PrimaryDisk.Label,
		ui.FormatBytes(p.PrimaryDisk.UsedBytes), ui.FormatBytes(p.PrimaryDisk.TotalBytes),
		p.PrimaryDisk.UsedPercent)

	for _, proc := range p.TopCPU {
		fmt.Fprintf(w, "  %d %s %.1f%% %s\n",
			proc.PID, proc.Name, proc.CPUPercent, ui.FormatBytes(proc.MemoryBytes))
	}
}
