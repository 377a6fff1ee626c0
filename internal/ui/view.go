package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cvterm/internal/anim"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	var body string
	switch {
	case m.showStats:
		body = m.statsView()
	case m.showHelp:
		body = m.helpView()
	default:
		body = m.tabView()
	}
	body = lipgloss.NewStyle().
		Width(m.width).MaxWidth(m.width).
		Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).
		Render(body)

	parts := []string{m.headerView(), m.tabBarView(), body}
	if rows := m.rainRows(); rows > 0 {
		parts = append(parts, m.rainView(rows))
	}
	parts = append(parts, m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) headerView() string {
	title := "Résumé"
	if name := m.env.Resume.Contact.Name; name != "" {
		title = name + " · Résumé"
	}
	return m.styles.header.Width(m.width).MaxWidth(m.width).Render(title)
}

func (m Model) tabBarView() string {
	tabs := make([]string, len(m.sections))
	for i, s := range m.sections {
		label := fmt.Sprintf("%d %s", i+1, s.Title)
		if i == m.active {
			tabs[i] = m.styles.tabActive.Render(label)
		} else {
			tabs[i] = m.styles.tab.Render(label)
		}
	}
	bar := lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	rule := m.styles.rule.Render(strings.Repeat("─", m.width))
	return bar + "\n" + rule
}

func (m Model) tabView() string {
	if m.active >= len(m.panes) {
		return ""
	}
	pane := m.styles.panel.Render(m.panes[m.active].View())
	if m.active != aboutTab || !m.torusFits() {
		return pane
	}
	block := m.torusView()
	if m.sideBySide() {
		return lipgloss.JoinHorizontal(lipgloss.Top, block, " ", pane)
	}
	return lipgloss.JoinVertical(lipgloss.Left, block, pane)
}

func (m Model) torusView() string {
	frame := m.sched.Frame(anim.TorusTrack)
	if frame == "" {
		frame = blankBlock(m.torus.Width, m.torus.Height)
	}
	return m.styles.donut.Render(frame)
}

func (m Model) rainView(rows int) string {
	frame := m.sched.Frame(anim.RainTrack)
	if frame == "" {
		frame = blankBlock(m.width, rows)
	}
	return m.styles.rain.Render(frame)
}

func (m Model) footerView() string {
	left := m.help.View(m.keys)
	if m.status != "" {
		left = m.styles.status.Render(m.status) + "  " + left
	}

	right := ""
	if m.env.Audio != nil {
		if m.env.Audio.Muted() {
			right = m.styles.meter.Render("♪ muted")
		} else {
			right = m.styles.meter.Render(meterBars(m.env.Audio.Levels()))
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return m.styles.footer.MaxWidth(m.width).Render(left)
	}
	return m.styles.footer.Render(left) + strings.Repeat(" ", gap) + right
}

func (m Model) helpView() string {
	h := m.help
	h.ShowAll = true
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("Keys"),
		h.View(m.keys),
	)
}

func blankBlock(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	row := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
