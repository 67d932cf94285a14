package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/ferromon/ferro/internal/config"
	"github.com/ferromon/ferro/internal/diskscan"
	"github.com/ferromon/ferro/internal/errors"
	"github.com/ferromon/ferro/internal/logger"
	"github.com/ferromon/ferro/internal/metrics"
	"github.com/ferromon/ferro/internal/monitor"
)

// Dashboard-specific flags
var (
	tickFlag      int
	allMountsFlag bool
)

func init() {
	rootCmd.Flags().IntVar(&tickFlag, "tick", 0,
		fmt.Sprintf("refresh interval in milliseconds (%d-%d)", config.MinTickMS, config.MaxTickMS))
	rootCmd.Flags().BoolVar(&allMountsFlag, "all-mounts", false,
		"show virtual filesystems in the disk table")
}

// dashboardCommand opens the interactive TUI. Refusing to start
// without a terminal keeps bubbletea from garbling piped output.
func dashboardCommand() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrTerm,
			"Standard output is not a terminal",
			"Run ferro interactively, or use 'ferro snapshot --json' for scripting")
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	if tickFlag != 0 {
		cfg.TickMS = tickFlag
	}
	if allMountsFlag {
		cfg.ShowAllMounts = true
	}

	log := logger.Default()
	source := metrics.NewSystemSource(log)
	engine := diskscan.New(log)
	model := monitor.NewModel(source, engine, cfg, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerm,
			"Dashboard terminated unexpectedly",
			"Check terminal compatibility; TERM must describe a real terminal")
	}
	return nil
}
