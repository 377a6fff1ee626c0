package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown caches a glamour renderer per wrap width.
type markdown struct {
	style string
	width int
	r     *glamour.TermRenderer
}

func newMarkdown(style string) *markdown {
	if style == "" {
		style = "dark"
	}
	return &markdown{style: style}
}

// setStyle switches the glamour style, dropping the cached renderer.
func (md *markdown) setStyle(style string) {
	if style == "" || style == md.style {
		return
	}
	md.style = style
	md.r = nil
}

// render falls back to the raw source if glamour cannot handle it.
func (md *markdown) render(src string, width int) string {
	if width < 10 {
		width = 10
	}
	if md.r == nil || md.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(md.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return src
		}
		md.r, md.width = r, width
	}
	out, err := md.r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
