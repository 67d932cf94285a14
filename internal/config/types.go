package config

import "time"

// Config holds the ferro configuration.
type Config struct {
	// TickMS is the dashboard refresh interval in milliseconds (50..5000).
	TickMS int `yaml:"tick_ms" mapstructure:"tick_ms"`

	// ScanTargets are the directories offered on the disk-dive screen,
	// cycled with Tab. Defaults to /var, $HOME, /.
	ScanTargets []string `yaml:"scan_targets" mapstructure:"scan_targets"`

	// ShowAllMounts disables the pseudo-filesystem filter on the disk panel.
	ShowAllMounts bool `yaml:"show_all_mounts" mapstructure:"show_all_mounts"`

	// Path the config was loaded from (not serialized).
	Path string `yaml:"-" mapstructure:"-"`
}

// Tick interval bounds. Values outside are clamped, matching the CLI flag.
const (
	MinTickMS     = 50
	MaxTickMS     = 5000
	DefaultTickMS = 500
)

// Tick returns the refresh interval as a duration, clamped to the valid range.
func (c *Config) Tick() time.Duration {
	ms := c.TickMS
	if ms < MinTickMS {
		ms = MinTickMS
	}
	if ms > MaxTickMS {
		ms = MaxTickMS
	}
	return time.Duration(ms) * time.Millisecond
}
