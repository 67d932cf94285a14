package monitor

import tea "github.com/charmbracelet/bubbletea"

// Screen identifies which view the dashboard is showing.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenProcesses
	ScreenDiskDive
)

// String returns the screen title shown in the header.
func (s Screen) String() string {
	switch s {
	case ScreenProcesses:
		return "Processes"
	case ScreenDiskDive:
		return "Disk dive"
	default:
		return "Dashboard"
	}
}

// Key bindings as constants for consistency.
const (
	KeyQuit         = "q"
	KeyQuitAlt      = "ctrl+c"
	KeyToggleHelp   = "?"
	KeyBack         = "esc"
	KeyProcesses    = "p"
	KeyDiskDive     = "d"
	KeyRefresh      = "r"
	KeyScan         = "s"
	KeyToggleMounts = "f"
	KeyCycle        = "tab"
	KeyScrollUp     = "up"
	KeyScrollDown   = "down"
)

// HandleKeyMsg processes keyboard input. Tab is contextual: it cycles
// the process sort on the process screen and the scan target on the
// disk-dive screen. Returns true if the key was handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyToggleHelp:
		m.showHelp = !m.showHelp
		return true, nil

	case KeyBack:
		m.showHelp = false
		m.screen = ScreenDashboard
		return true, nil

	case KeyProcesses:
		m.showHelp = false
		m.screen = ScreenProcesses
		m.syncProcViewport()
		return true, nil

	case KeyDiskDive:
		m.showHelp = false
		m.screen = ScreenDiskDive
		return true, nil

	case KeyRefresh:
		return true, m.refreshCmd(m.wantProcesses())

	case KeyScan:
		if m.screen == ScreenDiskDive {
			m.startScan()
		}
		return true, nil

	case KeyToggleMounts:
		if m.screen == ScreenDashboard {
			m.showAllMounts = !m.showAllMounts
			m.rebuildSnapshot()
		}
		return true, nil

	case KeyCycle:
		switch m.screen {
		case ScreenProcesses:
			m.procSort = m.procSort.Next()
			m.syncProcViewport()
		case ScreenDiskDive:
			m.scanTarget = (m.scanTarget + 1) % len(m.scanTargets)
			m.diskScroll = 0
		}
		return true, nil

	case KeyScrollUp:
		switch m.screen {
		case ScreenProcesses:
			if m.viewportReady {
				m.procViewport.LineUp(1)
			}
		case ScreenDiskDive:
			if m.diskScroll > 0 {
				m.diskScroll--
			}
		}
		return true, nil

	case KeyScrollDown:
		switch m.screen {
		case ScreenProcesses:
			if m.viewportReady {
				m.procViewport.LineDown(1)
			}
		case ScreenDiskDive:
			m.diskScroll++
		}
		return true, nil
	}

	return false, nil
}
