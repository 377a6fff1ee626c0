package anim

import (
	"math"
	"strings"
)

// Canvas is a fixed character grid with one depth value per cell.
// Cells and depths always have Width*Height entries.
type Canvas struct {
	Width, Height int
	cells         []rune
	depth         []float64
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		cells:  make([]rune, w*h),
		depth:  make([]float64, w*h),
	}
	c.Reset()
	return c
}

// Reset blanks every cell and drops every depth to the sentinel minimum.
func (c *Canvas) Reset() {
	for i := range c.cells {
		c.cells[i] = ' '
		c.depth[i] = math.Inf(-1)
	}
}

// Plot writes ch at (col, row) if depth is closer than what the cell holds.
// It reports whether the cell was written.
func (c *Canvas) Plot(col, row int, depth float64, ch rune) bool {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return false
	}
	o := col + c.Width*row
	if depth <= c.depth[o] {
		return false
	}
	c.depth[o] = depth
	c.cells[o] = ch
	return true
}

// At returns the character and depth stored at (col, row).
func (c *Canvas) At(col, row int) (rune, float64) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return ' ', math.Inf(-1)
	}
	o := col + c.Width*row
	return c.cells[o], c.depth[o]
}

// String joins the rows with newlines, without a trailing one.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.Width + 1) * c.Height)
	for r := 0; r < c.Height; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(c.cells[r*c.Width : (r+1)*c.Width]))
	}
	return b.String()
}
