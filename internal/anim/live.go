package anim

import (
	"context"
	"io"
	"strings"
	"time"
)

const (
	clearScreen = "\033[2J\033[H"
	cursorHome  = "\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Loop plays the torus, and optionally the rain, straight to a writer.
// Both timers are served from one goroutine.
type Loop struct {
	Spin      *Spin
	Rain      *Rain
	RainRows  int
	Frames    int
	TorusRate time.Duration
	RainRate  time.Duration
	Raw       bool

	out   io.Writer
	shown int
}

func NewLoop(out io.Writer, spin *Spin) *Loop {
	return &Loop{
		Spin:      spin,
		RainRows:  DefaultRows,
		TorusRate: TorusInterval,
		RainRate:  RainInterval,
		out:       out,
	}
}

// Run blocks until ctx is done or Frames torus frames were written.
// A failure to restore the cursor is reported unless an earlier error won.
func (l *Loop) Run(ctx context.Context) (err error) {
	if !l.Raw {
		if _, err := io.WriteString(l.out, hideCursor+clearScreen); err != nil {
			return err
		}
		defer func() {
			if _, werr := io.WriteString(l.out, showCursor); werr != nil && err == nil {
				err = werr
			}
		}()
	}

	torus := time.NewTicker(l.TorusRate)
	defer torus.Stop()

	var rainC <-chan time.Time
	if l.Rain != nil {
		rain := time.NewTicker(l.RainRate)
		defer rain.Stop()
		rainC = rain.C
	}

	w, h := l.size()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-torus.C:
			l.Spin.Step(w, h)
			if err := l.draw(); err != nil {
				return err
			}
			l.shown++
			if l.Frames > 0 && l.shown >= l.Frames {
				return nil
			}
		case <-rainC:
			l.Rain.Step(w, l.RainRows)
		}
	}
}

func (l *Loop) size() (int, int) {
	t := l.Spin.Torus()
	return t.Width, t.Height
}

func (l *Loop) draw() error {
	var b strings.Builder
	if !l.Raw {
		b.WriteString(cursorHome)
	}
	b.WriteString(l.Spin.Frame())
	b.WriteString("\n")
	if l.Rain != nil {
		w, _ := l.size()
		rain := l.Rain.Frame()
		if rain == "" {
			rain = strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", w)+"\n", l.RainRows), "\n")
		}
		b.WriteString(rain)
		b.WriteString("\n")
	}
	_, err := io.WriteString(l.out, b.String())
	return err
}
