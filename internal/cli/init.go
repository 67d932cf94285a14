package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ferromon/ferro/internal/config"
	"github.com/ferromon/ferro/internal/errors"
)

var (
	initForce          bool
	initNonInteractive bool
)

// initCmd creates a new .ferro.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .ferro.yaml configuration",
	Long: `Initialize a new ferro configuration file.

Creates a .ferro.yaml file in the current directory with sensible
defaults, guided by interactive prompts.

Examples:
  ferro init
  ferro init --force
  ferro init --non-interactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Dir:            ".",
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
		})
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts, use defaults")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Target directory for the config file
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// Init creates a new .ferro.yaml configuration file.
func Init(opts InitOptions) error {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.Default()

	if !opts.NonInteractive {
		tickStr := strconv.Itoa(cfg.TickMS)
		targetsStr := strings.Join(cfg.ScanTargets, ", ")

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Refresh interval (milliseconds)").
					Description(fmt.Sprintf("How often metrics are sampled (%d-%d)", config.MinTickMS, config.MaxTickMS)).
					Value(&tickStr).
					Validate(func(s string) error {
						v, err := strconv.Atoi(strings.TrimSpace(s))
						if err != nil {
							return fmt.Errorf("must be a number")
						}
						if v < config.MinTickMS || v > config.MaxTickMS {
							return fmt.Errorf("must be between %d and %d", config.MinTickMS, config.MaxTickMS)
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Disk-dive scan targets").
					Description("Comma-separated directories for the on-demand scanner").
					Value(&targetsStr).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("at least one target is required")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewConfirm().
					Title("Show virtual filesystems (tmpfs, devtmpfs) in the disk table?").
					Value(&cfg.ShowAllMounts),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}

		cfg.TickMS, _ = strconv.Atoi(strings.TrimSpace(tickStr))
		cfg.ScanTargets = cfg.ScanTargets[:0]
		for _, t := range strings.Split(targetsStr, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cfg.ScanTargets = append(cfg.ScanTargets, t)
			}
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# Ferromon configuration
# Run 'ferro' to open the dashboard, 'ferro snapshot' for one reading.

`
	if err := os.WriteFile(configPath, []byte(header+string(data)), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("Created %s\n\n", configPath)
	fmt.Println("Next steps:")
	fmt.Println("  ferro            - open the dashboard")
	fmt.Println("  ferro snapshot   - one-shot reading for scripts")

	return nil
}
