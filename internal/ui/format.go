package ui

import "fmt"

// FormatBytes formats a byte count in binary units.
func FormatBytes(bytes uint64) string {
	const (
		kib = 1024
		mib = kib * 1024
		gib = mib * 1024
		tib = gib * 1024
	)

	b := float64(bytes)
	switch {
	case b >= tib:
		return fmt.Sprintf("%.2f TiB", b/tib)
	case b >= gib:
		return fmt.Sprintf("%.2f GiB", b/gib)
	case b >= mib:
		return fmt.Sprintf("%.2f MiB", b/mib)
	case b >= kib:
		return fmt.Sprintf("%.2f KiB", b/kib)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// TrimTo shortens a string to max characters, appending an ellipsis when
// something was cut.
func TrimTo(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return s[:max-1] + "…"
}
