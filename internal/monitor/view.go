package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ferromon/ferro/internal/ui"
)

// Body dimensions below which the card layout wraps unreadably; a plain
// resize message replaces the screen body while the terminal is smaller.
const (
	minBodyWidth  = 80
	minBodyHeight = 14
)

// render draws the full frame: header, screen body, footer or help.
func (m Model) render() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch {
	case m.tooSmall():
		b.WriteString(m.renderTooSmall())
	case m.screen == ScreenProcesses:
		b.WriteString(m.renderProcesses())
	case m.screen == ScreenDiskDive:
		b.WriteString(m.renderDiskDive())
	default:
		b.WriteString(m.renderDashboard())
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

// tooSmall reports whether the known terminal size cannot hold the body
// layout. Zero width means no WindowSizeMsg yet; render normally then.
func (m Model) tooSmall() bool {
	return m.width > 0 && (m.width < minBodyWidth || m.height-6 < minBodyHeight)
}

func (m Model) renderTooSmall() string {
	lines := []string{
		ValueStyle.Render("ferro"),
		"",
		"Terminal too small.",
		"Resize and try again.",
		"",
		LabelStyle.Render("Tip: you can also run: ferro --help"),
	}
	return strings.Join(lines, "\n")
}

// renderHeader renders the title bar with per-screen key hints.
func (m Model) renderHeader() string {
	var hint string
	switch m.screen {
	case ScreenProcesses:
		hint = "Tab: sort CPU/Mem  Esc: back"
	case ScreenDiskDive:
		hint = "s: scan  Tab: target  Esc: back"
	default:
		hint = "p: processes  d: disk  f: filter"
	}

	parts := []string{
		HeaderTitleStyle.Render("ferro"),
		" — ",
		ValueStyle.Render(m.screen.String()),
		"  •  ",
		HeaderHintStyle.Render(hint),
		"  •  ",
		KeyStyle.Render("q"),
		": quit  ",
		KeyStyle.Render("?"),
		": help",
	}
	return HeaderStyle.Render(strings.Join(parts, ""))
}

// renderDashboard renders the health line and the three metric cards.
func (m Model) renderDashboard() string {
	if !m.haveSnap {
		if m.refreshErr != "" {
			return ErrorTextStyle.Render("Metrics unavailable: " + m.refreshErr)
		}
		return LabelStyle.Render("Collecting first sample…")
	}

	var b strings.Builder
	b.WriteString(m.renderHealthLine())
	b.WriteString("\n\n")

	cardWidth := m.cardWidth()
	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderCPUCard(cardWidth),
		m.renderMemoryCard(cardWidth),
		m.renderDiskCard(cardWidth),
	)
	b.WriteString(cards)

	if m.refreshErr != "" {
		b.WriteString("\n")
		b.WriteString(ErrorTextStyle.Render("Last refresh failed: " + m.refreshErr))
	}
	return b.String()
}

// renderHealthLine renders the verdict badge, the primary reason and a
// count of the remaining issues.
func (m Model) renderHealthLine() string {
	var b strings.Builder
	b.WriteString(SeverityBadge(m.health.Status))

	if m.health.PrimaryReason != "" {
		b.WriteString("  ")
		b.WriteString(ValueStyle.Render(m.health.PrimaryReason))
	} else {
		b.WriteString("  ")
		b.WriteString(LabelStyle.Render("All systems nominal"))
	}

	if n := len(m.health.Secondary); n > 0 {
		b.WriteString("  ")
		b.WriteString(LabelStyle.Render(fmt.Sprintf("(+%d more, see ?)", n)))
	}
	return b.String()
}

func (m Model) cardWidth() int {
	if m.width == 0 {
		return 38
	}
	w := m.width/3 - 3
	if w < 24 {
		w = 24
	}
	return w
}

func labelValue(label, value string) string {
	return LabelStyle.Render(label+": ") + ValueStyle.Render(value)
}

func (m Model) renderCPUCard(width int) string {
	inner := width - 4
	snap := m.snap

	lines := []string{
		CardTitleStyle.Render("CPU"),
		labelValue("Used", fmt.Sprintf("%.1f%%", snap.CPUUsage)),
		labelValue("Cores", fmt.Sprintf("%d", snap.CPUCores)),
		labelValue("Load", fmt.Sprintf("%.2f /core (%.2f %.2f %.2f)",
			snap.NormalizedLoad, snap.LoadAvg[0], snap.LoadAvg[1], snap.LoadAvg[2])),
	}
	if snap.StealPercent != nil {
		lines = append(lines, labelValue("Steal", fmt.Sprintf("%.1f%%", *snap.StealPercent)))
	}
	if snap.RunQueue != "" {
		lines = append(lines, labelValue("Run queue", snap.RunQueue))
	}

	lines = append(lines,
		renderGauge(snap.CPUUsage, inner),
		ui.RenderSparkline(m.history.CPU.Values(), inner),
	)
	lines = append(lines, m.renderTopProcs("Top CPU", SortByCPU)...)

	return CPUCardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderMemoryCard(width int) string {
	inner := width - 4
	snap := m.snap

	swapLine := fmt.Sprintf("%s / %s (%s)",
		ui.FormatBytes(snap.SwapUsed), ui.FormatBytes(snap.SwapTotal),
		TrendOf(m.history.Swap))

	lines := []string{
		CardTitleStyle.Render("Memory"),
		labelValue("Used", fmt.Sprintf("%s / %s",
			ui.FormatBytes(snap.MemoryUsed), ui.FormatBytes(snap.MemoryTotal))),
		labelValue("Usage", fmt.Sprintf("%.1f%%", snap.MemoryPercent)),
		labelValue("Avail", fmt.Sprintf("%.1f%%", snap.AvailableMemoryPercent)),
		labelValue("Swap", swapLine),
		renderGauge(snap.MemoryPercent, inner),
		ui.RenderSparkline(m.history.Memory.Values(), inner),
	}
	lines = append(lines, m.renderTopProcs("Top MEM", SortByMemory)...)

	return MemoryCardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderTopProcs renders the three hungriest processes for a card.
func (m Model) renderTopProcs(title string, by ProcSort) []string {
	if len(m.procs) == 0 {
		return []string{LabelStyle.Render(title + ": (no data)")}
	}

	lines := []string{LabelStyle.Bold(true).Render(title) + LabelStyle.Render(":")}
	for i, p := range TopProcs(m.procs, by, 3) {
		var metric string
		if by == SortByMemory {
			metric = ui.FormatBytes(p.MemoryBytes)
		} else {
			metric = fmt.Sprintf("%.1f%%", p.CPUPercent())
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			LabelStyle.Render(fmt.Sprintf("%d.", i+1)),
			ui.TrimTo(p.Name, 18),
			ValueStyle.Render(metric)))
	}
	return lines
}

func (m Model) renderDiskCard(width int) string {
	inner := width - 4
	snap := m.snap

	title := "Disk (filtered)"
	if m.showAllMounts {
		title = "Disk (all mounts)"
	}

	var primaryLine string
	if snap.PrimaryDisk.Label == NoDisksLabel {
		primaryLine = LabelStyle.Render(NoDisksLabel)
	} else {
		primaryLine = labelValue(snap.PrimaryDisk.Label, fmt.Sprintf("%s / %s (%.0f%%)",
			ui.FormatBytes(snap.PrimaryDisk.UsedBytes),
			ui.FormatBytes(snap.PrimaryDisk.TotalBytes),
			snap.PrimaryDisk.Percent))
	}

	lines := []string{
		CardTitleStyle.Render(title),
		primaryLine,
		renderGauge(snap.PrimaryDisk.Percent, inner),
		TableHeaderStyle.Render(fmt.Sprintf("%-14s %9s %9s %5s %s", "FS", "Size", "Avail", "Use%", "Mount")),
	}
	for _, r := range snap.Disks {
		lines = append(lines, fmt.Sprintf("%-14s %9s %9s %4.0f%% %s",
			ui.TrimTo(r.Device, 14),
			ui.FormatBytes(r.TotalBytes),
			ui.FormatBytes(r.AvailBytes),
			r.UsedPercent,
			ui.TrimTo(r.Mount, 18)))
	}
	if len(snap.Disks) == 0 {
		lines = append(lines, LabelStyle.Render("(no mounts)"))
	}

	return DiskCardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderProcesses renders the scrollable full process table.
func (m Model) renderProcesses() string {
	title := "Top processes (CPU)"
	if m.procSort == SortByMemory {
		title = "Top processes (Memory)"
	}

	var b strings.Builder
	b.WriteString(CardTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-8s %-40s %7s %12s", "PID", "NAME", "CPU", "MEM")))
	b.WriteString("\n")

	if m.viewportReady {
		b.WriteString(m.procViewport.View())
	} else {
		b.WriteString(m.procTableContent())
	}

	b.WriteString("\n")
	b.WriteString(LabelStyle.Render(fmt.Sprintf("Showing top %d · ", maxProcRows)) +
		KeyStyle.Render("Tab") + LabelStyle.Render(" toggles CPU/Mem · ") +
		KeyStyle.Render("↑/↓") + LabelStyle.Render(" scroll"))
	return b.String()
}

// procTableContent builds the process rows fed into the viewport.
func (m Model) procTableContent() string {
	rows := TopProcs(m.procs, m.procSort, maxProcRows)
	if len(rows) == 0 {
		return LabelStyle.Render("(no process data yet)")
	}

	lines := make([]string, 0, len(rows))
	for _, p := range rows {
		lines = append(lines, fmt.Sprintf("%-8d %-40s %6.1f%% %12s",
			p.PID, ui.TrimTo(p.Name, 40), p.CPUPercent(), ui.FormatBytes(p.MemoryBytes)))
	}
	return strings.Join(lines, "\n")
}

// syncProcViewport refreshes the viewport content after a sort change,
// a resize or a process refresh.
func (m *Model) syncProcViewport() {
	if !m.viewportReady {
		return
	}
	m.procViewport.SetContent(m.procTableContent())
}

// renderDiskDive renders the on-demand scan screen. The scan state is
// read fresh every frame so a running worker's partial results show up
// without extra plumbing.
func (m Model) renderDiskDive() string {
	state := m.engine.ReadState()
	target := m.CurrentScanTarget()

	title := fmt.Sprintf("Disk dive  (target: %s)", target)
	if state.Running {
		title += "  •  scanning"
	}

	var status string
	switch {
	case state.Error != "":
		status = ErrorTextStyle.Render("Error: ") + state.Error
	case state.Running:
		status = KeyStyle.Render("Scanning… ") + state.Progress
	case len(state.Results) == 0:
		status = LabelStyle.Render("Press ") + KeyStyle.Render("s") +
			LabelStyle.Render(" to scan (on-demand) · ") + KeyStyle.Render("Tab") +
			LabelStyle.Render(" to change target")
	default:
		status = LabelStyle.Render("Cached results. ") + KeyStyle.Render("s") +
			LabelStyle.Render(" rescan · ") + KeyStyle.Render("Tab") +
			LabelStyle.Render(" target · ") + KeyStyle.Render("↑/↓") +
			LabelStyle.Render(" scroll")
	}

	var b strings.Builder
	b.WriteString(CardTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(status)
	b.WriteString("\n\n")
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-52s %12s", "Directory", "Size")))
	b.WriteString("\n")

	results := state.Results
	visible := m.height - 8
	if visible < 1 {
		visible = len(results)
	}
	offset := m.diskScroll
	if offset > len(results)-1 {
		offset = len(results) - 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + visible
	if end > len(results) {
		end = len(results)
	}

	for i, entry := range results[offset:end] {
		line := fmt.Sprintf("%-52s %12s", ui.TrimTo(entry.Path, 52), ui.FormatBytes(entry.Bytes))
		if (offset+i)%2 == 1 {
			line = LabelStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(results) == 0 && state.Error == "" && !state.Running {
		b.WriteString(LabelStyle.Render("(no results yet)"))
	}
	return b.String()
}

// renderFooter renders a rotating per-screen tip.
func (m Model) renderFooter() string {
	tipsDashboard := []string{
		"f: toggle mount filter (filtered ↔ all)",
		"p: processes · d: disk dive",
		"r: refresh now · ?: help",
	}
	tipsProcesses := []string{
		"Tab: sort CPU ↔ Mem",
		"↑/↓: scroll · q: quit",
		"Esc: back",
	}
	tipsDisk := []string{
		"s: scan (on-demand)",
		"Tab: change target",
		"↑/↓: scroll · Esc: back",
	}

	var tips []string
	switch m.screen {
	case ScreenProcesses:
		tips = tipsProcesses
	case ScreenDiskDive:
		tips = tipsDisk
	default:
		tips = tipsDashboard
	}

	tip := tips[m.tipIdx%len(tips)]
	return FooterStyle.Render(LabelStyle.Bold(true).Render("Tip: ") + tip)
}
