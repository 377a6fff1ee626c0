package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cvterm/internal/anim"
)

// statsView plots recent torus compute times and lists per-track counters.
func (m Model) statsView() string {
	var lines []string
	lines = append(lines, m.styles.title.Render("Animation"))

	for _, name := range m.sched.Tracks() {
		st := m.sched.Stats(name)
		state := "idle"
		if st.Running {
			state = "running"
		}
		last := 0.0
		if n := len(st.Costs); n > 0 {
			last = st.Costs[n-1]
		}
		lines = append(lines, fmt.Sprintf("%-6s %-8s ticks %-8d last %.2fms", name, state, st.Ticks, last))
	}

	costs := m.sched.Stats(anim.TorusTrack).Costs
	if len(costs) < 2 {
		lines = append(lines, "", "collecting torus samples...")
		return strings.Join(lines, "\n")
	}

	w := m.width - 16
	if w < 10 {
		w = 10
	}
	h := m.bodyHeight() - len(lines) - 5
	if h < 3 {
		h = 3
	}
	if h > 12 {
		h = 12
	}
	graph := asciigraph.Plot(costs,
		asciigraph.Height(h),
		asciigraph.Width(w),
		asciigraph.Precision(2),
		asciigraph.Caption("torus frame time (ms)"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"), m.styles.graph.Render(graph))
}
