package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferromon/ferro/internal/errors"
	"github.com/ferromon/ferro/internal/metrics"
	mtesting "github.com/ferromon/ferro/internal/metrics/testing"
)

func fakeSample() *metrics.Metrics {
	m := &metrics.Metrics{Timestamp: time.Now()}
	m.CPU.Percent = 30
	m.CPU.Cores = 2
	m.CPU.LoadAvg = [3]float64{0.2, 0.2, 0.1}
	m.Memory.Total = 1000
	m.Memory.Used = 400
	m.Memory.Available = 600
	m.Disks = []metrics.Disk{
		{Device: "/dev/sda1", Mount: "/", Fstype: "ext4", TotalBytes: 500, FreeBytes: 250},
	}
	m.Processes = []metrics.Process{
		{PID: 7, Name: "worker", CPUPercent: 12.5, MemoryBytes: 64},
	}
	return m
}

func TestCollectSnapshotHealthy(t *testing.T) {
	src := &mtesting.FakeSource{Next: fakeSample()}

	payload, err := collectSnapshot(src, false)
	require.NoError(t, err)

	assert.Equal(t, "ok", payload.Status)
	assert.Empty(t, payload.PrimaryReason)
	assert.Equal(t, 2, payload.CPU.Cores)
	assert.InDelta(t, 0.1, payload.CPU.NormalizedLoad, 0.001)
	assert.InDelta(t, 40, payload.Memory.UsedPercent, 0.001)
	assert.Equal(t, "/", payload.PrimaryDisk.Label)
	assert.InDelta(t, 50, payload.PrimaryDisk.UsedPercent, 0.001)
	require.Len(t, payload.TopCPU, 1)
	assert.Equal(t, "worker", payload.TopCPU[0].Name)
	// Process refresh is always requested in one-shot mode.
	assert.Equal(t, 1, src.ProcessCalls)
}

func TestCollectSnapshotUnhealthy(t *testing.T) {
	sample := fakeSample()
	sample.CPU.LoadAvg = [3]float64{4, 3, 2} // 2.0 per core
	src := &mtesting.FakeSource{Next: sample}

	payload, err := collectSnapshot(src, false)
	require.NoError(t, err)

	assert.Equal(t, "critical", payload.Status)
	assert.Contains(t, payload.PrimaryReason, "CPU pressure")
	require.NotEmpty(t, payload.Secondary)
	assert.Contains(t, payload.Secondary[0].Reason, "I/O")
}

func TestCollectSnapshotSourceError(t *testing.T) {
	src := &mtesting.FakeSource{Err: errors.New(errors.ErrMetrics, "No providers responded", "")}

	_, err := collectSnapshot(src, false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrMetrics, errors.CodeOf(err))
}

// nilSource misbehaves by answering (nil, nil); the snapshot path must
// turn that into an error instead of dereferencing the sample.
type nilSource struct{}

func (nilSource) Refresh(context.Context, bool) (*metrics.Metrics, error) {
	return nil, nil
}

func TestCollectSnapshotNilSampleIsError(t *testing.T) {
	_, err := collectSnapshot(nilSource{}, false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrMetrics, errors.CodeOf(err))
}

func TestPrintSnapshotHumanOutput(t *testing.T) {
	src := &mtesting.FakeSource{Next: fakeSample()}
	payload, err := collectSnapshot(src, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	printSnapshot(&buf, payload)

	out := buf.String()
	assert.Contains(t, out, "Status: ok")
	assert.Contains(t, out, "CPU: 30.0% on 2 cores")
	assert.Contains(t, out, "Memory:")
	assert.Contains(t, out, "Disk (/):")
	assert.Contains(t, out, "worker")
}

func TestSnapshotCommandRegistered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "snapshot" {
			found = true
		}
	}
	assert.True(t, found)
}
