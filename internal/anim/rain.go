package anim

import (
	"math/rand"
	"strings"
)

const (
	DefaultDensity = 0.05
	DefaultGlyphs  = "|.:*"
	DefaultRows    = 4
)

// Rows is a rain buffer, top row first.
type Rows [][]rune

// Field holds the sampling parameters of a rain field.
type Field struct {
	Density float64
	Glyphs  []rune
	rng     *rand.Rand
}

func NewField(density float64, glyphs string, seed int64) *Field {
	g := []rune(glyphs)
	if len(g) == 0 {
		g = []rune(DefaultGlyphs)
	}
	return &Field{Density: density, Glyphs: g, rng: rand.New(rand.NewSource(seed))}
}

// Tick shifts rows down by one and samples a fresh top row, sized to
// width x height. A degenerate size returns rows unchanged.
func (f *Field) Tick(rows Rows, width, height int) Rows {
	if width <= 0 || height <= 0 {
		return rows
	}
	next := make(Rows, height)
	for r := height - 1; r >= 1; r-- {
		if r-1 < len(rows) {
			next[r] = fit(rows[r-1], width)
		} else {
			next[r] = blank(width)
		}
	}
	next[0] = f.sample(width)
	return next
}

func (f *Field) sample(width int) []rune {
	row := blank(width)
	if len(f.Glyphs) == 0 {
		return row
	}
	for c := range row {
		if f.rng.Float64() < f.Density {
			row[c] = f.Glyphs[f.rng.Intn(len(f.Glyphs))]
		}
	}
	return row
}

func fit(row []rune, width int) []rune {
	out := blank(width)
	copy(out, row)
	return out
}

func blank(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// Render joins at most height rows with newlines.
func Render(rows Rows, height int) string {
	if height > len(rows) {
		height = len(rows)
	}
	if height <= 0 {
		return ""
	}
	lines := make([]string, height)
	for i := 0; i < height; i++ {
		lines[i] = string(rows[i])
	}
	return strings.Join(lines, "\n")
}

// Rain owns a rain buffer and advances it one row per Step.
type Rain struct {
	field *Field
	rows  Rows
	frame string
}

func NewRain(f *Field) *Rain { return &Rain{field: f} }

func (r *Rain) Step(width, height int) string {
	if width <= 0 || height <= 0 {
		return r.frame
	}
	r.rows = r.field.Tick(r.rows, width, height)
	r.frame = Render(r.rows, height)
	return r.frame
}

func (r *Rain) Rows() Rows    { return r.rows }
func (r *Rain) Frame() string { return r.frame }
func (r *Rain) Field() *Field { return r.field }
