package monitor

import "fmt"

// Trend is the human-facing direction of a history series.
type Trend int

const (
	TrendWarmingUp Trend = iota
	TrendStable
	TrendIncreasing
	TrendDecreasing
)

func (t Trend) String() string {
	switch t {
	case TrendIncreasing:
		return "increasing"
	case TrendDecreasing:
		return "decreasing"
	case TrendStable:
		return "stable"
	default:
		return "warming up"
	}
}

const (
	// trendMinSamples is how many samples a series needs before the
	// label stops reporting "warming up".
	trendMinSamples = 4
	// trendLookback is how far back the newest sample is compared.
	trendLookback = 5
	// swapTrendMinSamples gates the critical swap-growth rule.
	swapTrendMinSamples = 6
)

// TrendOf labels a series by comparing the newest sample against one
// up to trendLookback positions older (shorter when the series is
// young).
func TrendOf(buf *Buffer) Trend {
	vals := buf.Values()
	n := len(vals)
	if n < trendMinSamples {
		return TrendWarmingUp
	}
	look := trendLookback
	if look > n-1 {
		look = n - 1
	}
	newest, older := vals[n-1], vals[n-1-look]
	switch {
	case newest > older:
		return TrendIncreasing
	case newest < older:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// swapRising reports whether swap usage is growing: needs at least
// swapTrendMinSamples, and the newest sample must exceed both zero and
// the sample five positions older.
func swapRising(buf *Buffer) bool {
	vals := buf.Values()
	n := len(vals)
	if n < swapTrendMinSamples {
		return false
	}
	newest, older := vals[n-1], vals[n-1-trendLookback]
	return newest > older && newest > 0
}

type healthRule struct {
	severity Severity
	applies  func(snap VmSnapshot, hist *History) bool
	reason   func(snap VmSnapshot) string
}

// healthRules is evaluated strictly top to bottom. The first rule that
// triggers supplies PrimaryReason, so order here is an observable
// contract — do not reorder.
var healthRules = []healthRule{
	{
		severity: SeverityCritical,
		applies: func(s VmSnapshot, _ *History) bool {
			return s.NormalizedLoad > 1.0
		},
		reason: func(s VmSnapshot) string {
			return fmt.Sprintf("CPU pressure: load %.2f per core exceeds capacity", s.NormalizedLoad)
		},
	},
	{
		severity: SeverityWarning,
		applies: func(s VmSnapshot, _ *History) bool {
			return s.NormalizedLoad > 0.7 && s.NormalizedLoad <= 1.0
		},
		reason: func(s VmSnapshot) string {
			return fmt.Sprintf("Elevated load: %.2f per core", s.NormalizedLoad)
		},
	},
	{
		severity: SeverityCritical,
		applies: func(s VmSnapshot, _ *History) bool {
			return s.AvailableMemoryPercent < 15.0
		},
		reason: func(s VmSnapshot) string {
			return fmt.Sprintf("Low memory: only %.1f%% available", s.AvailableMemoryPercent)
		},
	},
	{
		severity: SeverityWarning,
		applies: func(s VmSnapshot, _ *History) bool {
			return s.AvailableMemoryPercent >= 15.0 && s.AvailableMemoryPercent < 20.0
		},
		reason: func(s VmSnapshot) string {
			return fmt.Sprintf("Memory getting tight: %.1f%% available", s.AvailableMemoryPercent)
		},
	},
	{
		severity: SeverityCritical,
		applies: func(s VmSnapshot, h *History) bool {
			return s.SwapUsed > 0 && h != nil && swapRising(h.Swap)
		},
		reason: func(s VmSnapshot) string {
			return "Swap in use and growing"
		},
	},
	{
		severity: SeverityCritical,
		applies: func(s VmSnapshot, _ *History) bool {
			return s.StealPercent != nil && *s.StealPercent > 10.0
		},
		reason: func(s VmSnapshot) string {
			return fmt.Sprintf("CPU steal at %.1f%%: noisy neighbor on the host", *s.StealPercent)
		},
	},
	{
		severity: SeverityWarning,
		applies: func(s VmSnapshot, _ *History) bool {
			return s.NormalizedLoad > 1.0 && s.CPUUsage < 50.0
		},
		reason: func(s VmSnapshot) string {
			return "High load with low CPU use: likely waiting on I/O"
		},
	},
}

// Classify runs the fixed rule table over one snapshot. Status is the
// maximum severity of all triggered rules; PrimaryReason comes from
// the first rule to trigger in table order.
func Classify(snap VmSnapshot, hist *History) HealthSummary {
	var issues []Issue
	for _, rule := range healthRules {
		if rule.applies(snap, hist) {
			issues = append(issues, Issue{Severity: rule.severity, Reason: rule.reason(snap)})
		}
	}
	if len(issues) == 0 {
		return HealthSummary{Status: SeverityOK}
	}

	status := SeverityOK
	for _, is := range issues {
		if is.Severity > status {
			status = is.Severity
		}
	}
	return HealthSummary{
		Status:        status,
		PrimaryReason: issues[0].Reason,
		Secondary:     issues[1:],
	}
}
