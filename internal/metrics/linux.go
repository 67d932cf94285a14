package metrics

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// sampleSteal reads /proc/stat and returns steal time as a percentage of
// the delta since the previous sample. Returns nil on the first call, on
// non-Linux hosts, or when the file is unreadable.
func (s *SystemSource) sampleSteal() *float64 {
	data, err := os.ReadFile(s.procStatPath)
	if err != nil {
		return nil
	}

	total, steal, err := parseProcStatTotals(string(data))
	if err != nil {
		s.log.Debug("steal parse failed: %v", err)
		return nil
	}

	s.mu.Lock()
	prevTotal, prevSteal, hasPrev := s.prevTotal, s.prevSteal, s.hasPrev
	s.prevTotal, s.prevSteal, s.hasPrev = total, steal, true
	s.mu.Unlock()

	if !hasPrev || total <= prevTotal {
		return nil
	}

	totalDelta := total - prevTotal
	stealDelta := steal - prevSteal
	if stealDelta < 0 {
		stealDelta = 0
	}

	pct := float64(stealDelta) / float64(totalDelta) * 100
	return &pct
}

// sampleRunQueue reads /proc/loadavg and returns its "running/total"
// field (e.g. "2/713"), or empty string when unavailable.
func (s *SystemSource) sampleRunQueue() string {
	data, err := os.ReadFile(s.procLoadavgPath)
	if err != nil {
		return ""
	}
	return parseRunQueue(string(data))
}

// parseProcStatTotals extracts the aggregate jiffy total and the steal
// jiffies from the "cpu " line of /proc/stat.
//
// Field layout: cpu user nice system idle iowait irq softirq steal ...
func parseProcStatTotals(procStat string) (total, steal int64, err error) {
	scanner := bufio.NewScanner(strings.NewReader(procStat))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return 0, 0, fmt.Errorf("invalid /proc/stat cpu line: %s", line)
		}

		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return 0, 0, fmt.Errorf("failed to parse cpu field %d: %w", i, err)
			}
			total += val
			if i == 8 {
				steal = val
			}
		}
		return total, steal, nil
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	return 0, 0, fmt.Errorf("no cpu line in /proc/stat")
}

// parseRunQueue extracts the fourth field of /proc/loadavg, the
// "runnable/total" task counts.
func parseRunQueue(procLoadavg string) string {
	fields := strings.Fields(strings.TrimSpace(procLoadavg))
	if len(fields) < 4 || !strings.Contains(fields[3], "/") {
		return ""
	}
	return fields[3]
}
