package audio

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
)

// Levels are smoothed band shares in [0, 1] plus the block RMS.
type Levels struct {
	Bass, Mid, High float64
	RMS             float64
}

// Meter tracks the spectrum of the blocks being played.
type Meter struct {
	rate float64

	mu     sync.Mutex
	levels Levels
	mono   []float64
}

func NewMeter(rate float64) *Meter { return &Meter{rate: rate} }

func (m *Meter) Update(left, right []float32) {
	n := len(left)
	if n == 0 {
		return
	}
	if cap(m.mono) < n {
		m.mono = make([]float64, n)
	}
	mono := m.mono[:n]
	den := float64(n - 1)
	if den < 1 {
		den = 1
	}
	var sq float64
	for i := range left {
		v := float64(left[i])
		if i < len(right) {
			v = (v + float64(right[i])) / 2
		}
		sq += v * v
		// hann window
		mono[i] = v * 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/den))
	}

	var bass, mid, high float64
	binHz := m.rate / float64(n)
	for i, c := range fft.FFTReal(mono)[:n/2] {
		mag := cmplx.Abs(c)
		switch hz := float64(i) * binHz; {
		case hz < 250:
			bass += mag
		case hz < 2000:
			mid += mag
		case hz < 20000:
			high += mag
		}
	}

	target := Levels{RMS: math.Sqrt(sq / float64(n))}
	if total := bass + mid + high; total > 1e-9 {
		target.Bass, target.Mid, target.High = bass/total, mid/total, high/total
	}

	m.mu.Lock()
	m.levels.Bass = m.levels.Bass*0.9 + target.Bass*0.1
	m.levels.Mid = m.levels.Mid*0.9 + target.Mid*0.1
	m.levels.High = m.levels.High*0.9 + target.High*0.1
	m.levels.RMS = m.levels.RMS*0.8 + target.RMS*0.2
	m.mu.Unlock()
}

func (m *Meter) Levels() Levels {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels
}
