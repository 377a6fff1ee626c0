package anim

import (
	"math"
	"strings"
	"testing"
)

func TestCanvasReset(t *testing.T) {
	c := NewCanvas(4, 3)
	c.Plot(1, 1, 0.5, '#')
	c.Reset()

	for r := 0; r < c.Height; r++ {
		for col := 0; col < c.Width; col++ {
			ch, d := c.At(col, r)
			if ch != ' ' {
				t.Fatalf("cell (%d,%d) = %q after reset", col, r, ch)
			}
			if !math.IsInf(d, -1) {
				t.Fatalf("depth (%d,%d) = %v after reset", col, r, d)
			}
		}
	}
}

type sample struct {
	depth float64
	ch    rune
}

func TestCanvasPlotNearerWins(t *testing.T) {
	tests := []struct {
		name          string
		first, second sample
		want          rune
	}{
		{"near then far", sample{0.5, 'a'}, sample{0.2, 'b'}, 'a'},
		{"far then near", sample{0.2, 'b'}, sample{0.5, 'a'}, 'a'},
		{"equal keeps first", sample{0.3, 'x'}, sample{0.3, 'y'}, 'x'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(3, 3)
			c.Plot(1, 2, tt.first.depth, tt.first.ch)
			c.Plot(1, 2, tt.second.depth, tt.second.ch)
			if got, _ := c.At(1, 2); got != tt.want {
				t.Errorf("cell = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanvasPlotOutOfBounds(t *testing.T) {
	c := NewCanvas(5, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 2}, {100, 100}} {
		if c.Plot(p[0], p[1], 1, '@') {
			t.Errorf("Plot(%d, %d) wrote outside the canvas", p[0], p[1])
		}
	}
	if strings.TrimSpace(c.String()) != "" {
		t.Error("canvas should still be blank")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Plot(0, 0, 1, 'a')
	c.Plot(2, 1, 1, 'b')

	if got, want := c.String(), "a  \n  b"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewCanvasNegative(t *testing.T) {
	c := NewCanvas(-3, 2)
	if c.Width != 0 {
		t.Errorf("width = %d, want 0", c.Width)
	}
	if c.Plot(0, 0, 1, '#') {
		t.Error("an empty canvas accepts no writes")
	}
}
