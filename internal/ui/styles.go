package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cvterm/internal/audio"
)

type styles struct {
	header    lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	rule      lipgloss.Style
	donut     lipgloss.Style
	rain      lipgloss.Style
	panel     lipgloss.Style
	footer    lipgloss.Style
	meter     lipgloss.Style
	status    lipgloss.Style
	graph     lipgloss.Style
	title     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(t.Secondary).
			Padding(0, 1),
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(t.Muted),
		tabActive: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(t.Background).Background(t.Primary),
		rule:      lipgloss.NewStyle().Foreground(t.Muted),
		donut: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Foreground(t.Accent).
			Padding(0, 1),
		rain:   lipgloss.NewStyle().Foreground(t.Secondary),
		panel:  lipgloss.NewStyle().Foreground(t.Text),
		footer: lipgloss.NewStyle().Foreground(t.Muted),
		meter:  lipgloss.NewStyle().Foreground(t.Accent),
		status: lipgloss.NewStyle().Foreground(t.Accent).Italic(true),
		graph:  lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 2),
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
	}
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func spark(v float64) rune {
	idx := int(v * float64(len(sparkChars)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sparkChars) {
		idx = len(sparkChars) - 1
	}
	return sparkChars[idx]
}

// meterBars renders the audio bands as three sparkline bars.
func meterBars(l audio.Levels) string {
	// bands are shares of the spectrum; scale by loudness so silence is flat
	gain := l.RMS * 4
	if gain > 1 {
		gain = 1
	}
	var b strings.Builder
	b.WriteString("♪ ")
	b.WriteRune(spark(l.Bass * gain * 2))
	b.WriteRune(spark(l.Mid * gain * 2))
	b.WriteRune(spark(l.High * gain * 2))
	return b.String()
}
