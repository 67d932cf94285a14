package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferOf(percents ...float64) *Buffer {
	b := newBuffer(HistoryCapacity)
	for _, p := range percents {
		b.Push(p)
	}
	return b
}

func nominalSnapshot() VmSnapshot {
	steal := 0.0
	return VmSnapshot{
		CPUUsage:               5,
		CPUCores:               4,
		NormalizedLoad:         0.1,
		AvailableMemoryPercent: 80,
		StealPercent:           &steal,
	}
}

func TestClassifyNominalIsOK(t *testing.T) {
	sum := Classify(nominalSnapshot(), NewHistory())
	assert.Equal(t, SeverityOK, sum.Status)
	assert.Empty(t, sum.PrimaryReason)
	assert.Empty(t, sum.Secondary)
}

func TestClassifyHighLoadIsCritical(t *testing.T) {
	snap := nominalSnapshot()
	snap.NormalizedLoad = 1.5
	snap.AvailableMemoryPercent = 50
	snap.StealPercent = nil

	sum := Classify(snap, NewHistory())
	assert.Equal(t, SeverityCritical, sum.Status)
	assert.Contains(t, sum.PrimaryReason, "CPU pressure")
}

func TestClassifyElevatedLoadIsWarning(t *testing.T) {
	snap := nominalSnapshot()
	snap.NormalizedLoad = 0.85

	sum := Classify(snap, NewHistory())
	assert.Equal(t, SeverityWarning, sum.Status)
	assert.Contains(t, sum.PrimaryReason, "Elevated load")
}

func TestClassifyLoadBoundaryIsWarningNotCritical(t *testing.T) {
	snap := nominalSnapshot()
	snap.NormalizedLoad = 1.0

	sum := Classify(snap, NewHistory())
	assert.Equal(t, SeverityWarning, sum.Status)
}

func TestClassifyLowMemory(t *testing.T) {
	snap := nominalSnapshot()
	snap.AvailableMemoryPercent = 10

	sum := Classify(snap, NewHistory())
	assert.Equal(t, SeverityCritical, sum.Status)
	assert.Contains(t, sum.PrimaryReason, "Low memory")

	snap.AvailableMemoryPercent = 17
	sum = Classify(snap, NewHistory())
	assert.Equal(t, SeverityWarning, sum.Status)
	assert.Contains(t, sum.PrimaryReason, "tight")
}

func TestClassifySwapGrowth(t *testing.T) {
	snap := nominalSnapshot()
	snap.SwapUsed = 4096

	hist := NewHistory()
	hist.Swap = bufferOf(0, 0, 0, 0, 0, 10)

	sum := Classify(snap, hist)
	assert.Equal(t, SeverityCritical, sum.Status)
	assert.Contains(t, sum.PrimaryReason, "Swap")

	// Flat swap series does not trigger even with swap in use.
	hist.Swap = bufferOf(10, 10, 10, 10, 10, 10)
	sum = Classify(snap, hist)
	assert.Equal(t, SeverityOK, sum.Status)
}

func TestClassifyStealAboveThreshold(t *testing.T) {
	snap := nominalSnapshot()
	steal := 22.5
	snap.StealPercent = &steal

	sum := Classify(snap, NewHistory())
	assert.Equal(t, SeverityCritical, sum.Status)
	assert.Contains(t, sum.PrimaryReason, "steal")
}

func TestClassifyPrimaryReasonFollowsRuleOrderNotSeverity(t *testing.T) {
	// Elevated load (Warning, rule order before memory) together with
	// low memory (Critical): status is Critical but the primary reason
	// is still the load warning.
	snap := nominalSnapshot()
	snap.NormalizedLoad = 0.9
	snap.AvailableMemoryPercent = 5

	sum := Classify(snap, NewHistory())
	assert.Equal(t, SeverityCritical, sum.Status)
	assert.Contains(t, sum.PrimaryReason, "Elevated load")
	require.Len(t, sum.Secondary, 1)
	assert.Equal(t, SeverityCritical, sum.Secondary[0].Severity)
	assert.Contains(t, sum.Secondary[0].Reason, "Low memory")
}

func TestClassifyLoadUsageMismatchStacks(t *testing.T) {
	snap := nominalSnapshot()
	snap.NormalizedLoad = 1.4
	snap.CPUUsage = 20

	sum := Classify(snap, NewHistory())
	assert.Equal(t, SeverityCritical, sum.Status)
	assert.Contains(t, sum.PrimaryReason, "CPU pressure")
	require.Len(t, sum.Secondary, 1)
	assert.Contains(t, sum.Secondary[0].Reason, "I/O")
}

func TestTrendOf(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    Trend
	}{
		{"empty", nil, TrendWarmingUp},
		{"three samples", []float64{1, 2, 3}, TrendWarmingUp},
		{"rising", []float64{0, 0, 0, 0, 0, 10}, TrendIncreasing},
		{"falling", []float64{10, 10, 10, 10, 10, 0}, TrendDecreasing},
		{"constant", []float64{5, 5, 5, 5, 5, 5}, TrendStable},
		{"short lookback", []float64{1, 1, 1, 2}, TrendIncreasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrendOf(bufferOf(tt.samples...)))
		})
	}
}

func TestTrendLabels(t *testing.T) {
	assert.Equal(t, "warming up", TrendWarmingUp.String())
	assert.Equal(t, "increasing", TrendIncreasing.String())
	assert.Equal(t, "decreasing", TrendDecreasing.String())
	assert.Equal(t, "stable", TrendStable.String())
}

func TestSwapRisingRequiresSixSamples(t *testing.T) {
	assert.False(t, swapRising(bufferOf(0, 0, 0, 0, 10)))
	assert.True(t, swapRising(bufferOf(0, 0, 0, 0, 0, 10)))
	// Newest must itself be above zero.
	assert.False(t, swapRising(bufferOf(0, 0, 0, 0, 0, 0)))
}
