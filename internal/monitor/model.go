package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ferromon/ferro/internal/config"
	"github.com/ferromon/ferro/internal/diskscan"
	"github.com/ferromon/ferro/internal/logger"
	"github.com/ferromon/ferro/internal/metrics"
)

const (
	// procRefreshEvery limits full process-table refreshes on the
	// dashboard; the process screen refreshes every tick.
	procRefreshEvery = 3 * time.Second
	// collectTimeout bounds a single metrics refresh.
	collectTimeout = 5 * time.Second
	// tipRotateEvery advances the footer tip.
	tipRotateEvery = 12 * time.Second
	// maxProcRows caps the scrollable process table.
	maxProcRows = 200
)

// Model is the Bubble Tea model for the ferro dashboard.
type Model struct {
	source metrics.Source
	engine *diskscan.Engine
	log    logger.Logger

	interval      time.Duration
	scanTargets   []string
	scanTarget    int // index into scanTargets
	showAllMounts bool

	lastRaw    *metrics.Metrics
	snap       VmSnapshot
	haveSnap   bool
	health     HealthSummary
	history    *History
	procs      []ProcRow
	lastProcAt time.Time
	refreshErr string

	screen     Screen
	procSort   ProcSort
	diskScroll int
	showHelp   bool
	quitting   bool

	width      int
	height     int
	lastUpdate time.Time

	tipIdx   int
	tipClock time.Time

	// Process screen viewport for scrollable content
	procViewport  viewport.Model
	viewportReady bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// metricsMsg carries one refresh result from the metric source.
type metricsMsg struct {
	metrics   *metrics.Metrics // nil on error
	err       error
	withProcs bool
	time      time.Time
}

// NewModel creates the dashboard model. The scan targets come from
// config and are guaranteed non-empty by config defaults.
func NewModel(source metrics.Source, engine *diskscan.Engine, cfg *config.Config, log logger.Logger) Model {
	targets := cfg.ScanTargets
	if len(targets) == 0 {
		targets = []string{"/"}
	}

	return Model{
		source:        source,
		engine:        engine,
		log:           log,
		interval:      cfg.Tick(),
		scanTargets:   targets,
		showAllMounts: cfg.ShowAllMounts,
		history:       NewHistory(),
	}
}

// Init starts the tick timer and triggers an initial refresh with
// processes included.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.refreshCmd(true))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case tickMsg:
		now := time.Time(msg)
		if m.tipClock.IsZero() || now.Sub(m.tipClock) >= tipRotateEvery {
			m.tipIdx++
			m.tipClock = now
		}
		return m, tea.Batch(m.tickCmd(), m.refreshCmd(m.wantProcesses()))

	case metricsMsg:
		m.applyMetrics(msg)
	}

	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that reads the metric source once.
func (m Model) refreshCmd(withProcs bool) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
		defer cancel()

		sample, err := source.Refresh(ctx, withProcs)
		return metricsMsg{
			metrics:   sample,
			err:       err,
			withProcs: withProcs,
			time:      time.Now(),
		}
	}
}

// wantProcesses reports whether the next refresh should include the
// process table. The process screen always wants it; the dashboard
// only on the slower cadence.
func (m Model) wantProcesses() bool {
	if m.screen == ScreenProcesses {
		return true
	}
	if m.screen != ScreenDashboard {
		return false
	}
	return m.lastProcAt.IsZero() || time.Since(m.lastProcAt) >= procRefreshEvery
}

// applyMetrics folds one refresh result into the model.
func (m *Model) applyMetrics(msg metricsMsg) {
	if msg.err != nil {
		m.refreshErr = msg.err.Error()
		m.log.Debug("metrics refresh failed: %v", msg.err)
		return
	}
	m.refreshErr = ""
	m.lastUpdate = msg.time
	m.lastRaw = msg.metrics

	m.rebuildSnapshot()
	m.history.Observe(m.snap)
	m.health = Classify(m.snap, m.history)

	if msg.withProcs {
		m.procs = m.snap.Processes
		m.lastProcAt = msg.time
		m.syncProcViewport()
	}
}

// rebuildSnapshot re-derives the snapshot from the last raw sample,
// preserving the current mount-filter setting.
func (m *Model) rebuildSnapshot() {
	if m.lastRaw == nil {
		return
	}
	m.snap = BuildSnapshot(m.lastRaw, m.showAllMounts)
	m.haveSnap = true
}

// startScan kicks off a disk scan of the current target. A scan
// already in flight wins; the request is dropped.
func (m *Model) startScan() {
	target := m.scanTargets[m.scanTarget]
	if m.engine.StartScan(target) {
		m.diskScroll = 0
	}
}

// resizeViewport initializes or resizes the process-screen viewport,
// reserving rows for the header, table header and footer.
func (m *Model) resizeViewport() {
	const chromeHeight = 6
	h := m.height - chromeHeight
	if h < 1 {
		h = 1
	}

	if !m.viewportReady {
		m.procViewport = viewport.New(m.width, h)
		m.viewportReady = true
	} else {
		m.procViewport.Width = m.width
		m.procViewport.Height = h
	}
	m.syncProcViewport()
}

// SecondsSinceUpdate returns how long ago the last refresh landed.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// CurrentScanTarget returns the directory the next scan will walk.
func (m Model) CurrentScanTarget() string {
	return m.scanTargets[m.scanTarget]
}
