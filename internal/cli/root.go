package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags
var (
	configFlag string
	jsonFlag   bool
)

// rootCmd launches the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "ferro",
	Short: "Ferromon - terminal dashboard for host health",
	Long: `Ferromon is an interactive terminal dashboard for a single host.

It samples CPU, memory, swap, disk and process metrics on a fixed tick,
keeps rolling history for trend lines, and derives a three-level health
verdict with human-readable reasons. A disk-dive screen runs on-demand
background scans that surface the largest directories under a target.

Run with no arguments to open the dashboard. Use 'ferro snapshot' for a
one-shot reading suitable for scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand()
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if jsonFlag {
			_ = WriteJSONFromError(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "machine-readable output where supported")
}

// Config returns the --config flag value.
func Config() string {
	return configFlag
}
