package audio

import "math"

// Gm7 add9: G2, Bb2, D3, F3, A3
var padChord = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

// Pad is a soft synthesized chord used when no loop file is configured.
type Pad struct {
	rate   float64
	time   float64
	filter [2]float64
	delay  [2][]float64
	head   int
}

func NewPad() *Pad {
	// 0.6 second delay for a larger space
	n := int(SampleRate * 0.6)
	return &Pad{rate: SampleRate, delay: [2][]float64{make([]float64, n), make([]float64, n)}}
}

func (p *Pad) SampleRate() float64 { return p.rate }

// triangle wave: smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	f := phase - math.Floor(phase)
	return 4.0*math.Abs(f-0.5) - 1.0
}

// one pole low pass
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

func (p *Pad) Fill(left, right []float32) {
	dt := 1.0 / p.rate
	g := 1.0 / float64(len(padChord))

	for i := range left {
		var l, r float64
		for j, f := range padChord {
			// very slow lfo, a breathing swell per voice
			lfo := math.Sin(p.time*0.2 + float64(j))
			l += triangle(p.time*f*0.999) * g * (0.7 + 0.3*lfo)
			r += triangle(p.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		cutoff := 450 + 150*math.Sin(p.time*0.05)
		p.filter[0] = lpf(l, cutoff, dt, p.filter[0])
		p.filter[1] = lpf(r, cutoff, dt, p.filter[1])

		dl, dr := p.delay[0][p.head], p.delay[1][p.head]
		// ping pong feedback smears the stereo image
		mixL := p.filter[0] + dl*0.3 + dr*0.1
		mixR := p.filter[1] + dr*0.3 + dl*0.1
		p.delay[0][p.head] = mixL * 0.7
		p.delay[1][p.head] = mixR * 0.7
		p.head = (p.head + 1) % len(p.delay[0])

		left[i] = float32(mixL)
		if i < len(right) {
			right[i] = float32(mixR)
		}
		p.time += dt
	}
}
