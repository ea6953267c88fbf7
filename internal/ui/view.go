package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/inkshell/internal/format/table"
)

const (
	defaultPanelWidth = 44
	minPanelWidth     = 16
	// panelChrome is the border plus horizontal padding of the panel.
	panelChrome = 4
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	header := fmt.Sprintf("inkshell · Kobo %s · %d×%d", m.device.Model, m.device.Width, m.device.Height)
	if m.width > 0 {
		header = truncate.StringWithTail(header, uint(m.width), "…")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.screenBlock(), " ", m.statusPanel())
	footer := styles.Footer.Render(m.helpLine())
	parts := []string{styles.Header.Render(header), body, footer}
	if m.errMsg != "" {
		parts = append(parts, styles.Error.Render(m.errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) screenBlock() string {
	lines := make([]string, m.rows)
	blank := strings.Repeat(" ", m.cols)
	for i := range lines {
		line := blank
		if i < len(m.screen) {
			line = m.screen[i]
		}
		lines[i] = styles.Screen.Render(line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) panelWidth() int {
	if m.width <= 0 {
		return defaultPanelWidth
	}
	w := m.width - m.cols - 1 - panelChrome
	if w < minPanelWidth {
		return minPanelWidth
	}
	return w
}

func (m *Model) statusRows() [][]string {
	if !m.hasStatus {
		return [][]string{{"status", "waiting for the first event"}}
	}
	s := m.status
	overlays := "none"
	if len(s.Overlays) > 0 {
		names := make([]string, len(s.Overlays))
		for i, id := range s.Overlays {
			names[i] = id.String()
		}
		overlays = strings.Join(names, ", ")
	}
	last := "none"
	if s.LastUpdate.Token != 0 {
		last = fmt.Sprintf("#%d %s %v", s.LastUpdate.Token, s.LastUpdate.Mode, s.LastUpdate.Rect)
	}
	return [][]string{
		{"view", s.Active.String()},
		{"history", fmt.Sprintf("%d", s.Depth)},
		{"overlays", overlays},
		{"updates", fmt.Sprintf("%d outstanding", s.Outstanding)},
		{"last update", last},
		{"event", s.LastEvent},
		{"inverted", onOff(s.Inverted)},
		{"monochrome", onOff(s.Monochrome)},
		{"handled", humanize.Comma(int64(s.Handled))},
		{"dropped", humanize.Comma(int64(s.Dropped))},
	}
}

func (m *Model) statusPanel() string {
	width := m.panelWidth()
	lines := table.Format(m.statusRows(), []table.Alignment{table.AlignLeft, table.AlignLeft})
	for i, line := range lines {
		lines[i] = styles.Value.Render(truncate.StringWithTail(line, uint(width), "…"))
	}
	return styles.PanelBorder.Render(strings.Join(lines, "\n"))
}

func (m *Model) helpLine() string {
	parts := make([]string, 0, 8)
	for _, b := range m.keys.help() {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	line := strings.Join(parts, " · ")
	if m.width > 0 {
		line = truncate.StringWithTail(line, uint(m.width), "…")
	}
	return line
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
