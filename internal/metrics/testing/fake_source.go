// Package testing provides a fake metrics Source for tests.
package testing

import (
	"context"
	"sync"

	"github.com/ferromon/ferro/internal/metrics"
)

// FakeSource returns canned metrics and records calls.
type FakeSource struct {
	mu sync.Mutex

	// Next is returned by the next Refresh call. Err, when set, is
	// returned instead.
	Next *metrics.Metrics
	Err  error

	// RefreshCalls counts Refresh invocations; ProcessCalls counts those
	// with withProcesses set.
	RefreshCalls int
	ProcessCalls int
}

// Refresh implements metrics.Source.
func (f *FakeSource) Refresh(_ context.Context, withProcesses bool) (*metrics.Metrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.RefreshCalls++
	if withProcesses {
		f.ProcessCalls++
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Next == nil {
		return &metrics.Metrics{}, nil
	}
	cp := *f.Next
	return &cp, nil
}

// Calls returns the total Refresh call count.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.RefreshCalls
}
