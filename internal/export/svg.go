package export

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Style sets the cell size and colors of an SVG snapshot.
type Style struct {
	CellWidth  float64
	CellHeight float64
	Foreground string
	Background string
}

var DefaultStyle = Style{
	CellWidth:  8,
	CellHeight: 14,
	Foreground: "#00ff00",
	Background: "#0d0d0d",
}

// FrameToSVG converts a text frame to SVG, one text element per row.
func FrameToSVG(frame string, st Style) string {
	if frame == "" {
		return ""
	}
	rows := strings.Split(frame, "\n")
	cols := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > cols {
			cols = n
		}
	}

	width := float64(cols) * st.CellWidth
	height := float64(len(rows)) * st.CellHeight

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s" font-family="monospace" font-size="%.1f" xml:space="preserve">
`, width, height, width, height, st.Background, st.Foreground, st.CellHeight)

	for i, r := range rows {
		if strings.TrimSpace(r) == "" {
			continue
		}
		// baseline sits a fifth of a cell above the row bottom
		y := float64(i+1)*st.CellHeight - st.CellHeight/5
		fmt.Fprintf(&sb, `<text x="0" y="%.1f" textLength="%.0f">`, y, float64(len([]rune(r)))*st.CellWidth)
		xml.EscapeText(&sb, []byte(r))
		sb.WriteString("</text>\n")
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
