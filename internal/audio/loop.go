package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/mjibson/go-dsp/wav"
)

const readChunk = 4096

// Loop replays decoded sample frames forever.
type Loop struct {
	left, right []float32
	rate        float64
	pos         int
}

// NewLoop splits interleaved samples with one or two channels.
func NewLoop(samples []float32, channels int, rate float64) (*Loop, error) {
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, channels)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %v", ErrUnsupported, rate)
	}
	frames := len(samples) / channels
	if frames == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrUnsupported)
	}
	l := &Loop{left: make([]float32, frames), rate: rate}
	if channels == 1 {
		copy(l.left, samples)
		l.right = l.left
		return l, nil
	}
	l.right = make([]float32, frames)
	for i := 0; i < frames; i++ {
		l.left[i] = samples[2*i]
		l.right[i] = samples[2*i+1]
	}
	return l, nil
}

// LoadWAV decodes a PCM or float WAV file into a Loop.
func LoadWAV(path string) (*Loop, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w, err := wav.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupported, path, err)
	}

	// go-dsp reads exactly n samples, so the last chunk must be trimmed
	samples := make([]float32, 0, w.Samples)
	for len(samples) < w.Samples {
		n := w.Samples - len(samples)
		if n > readChunk {
			n = readChunk
		}
		buf, err := w.ReadFloats(n)
		samples = append(samples, buf...)
		if err == io.EOF || (err == nil && len(buf) == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("audio: read %s: %w", path, err)
		}
	}
	return NewLoop(samples, int(w.NumChannels), float64(w.SampleRate))
}

func (l *Loop) SampleRate() float64 { return l.rate }
func (l *Loop) Frames() int         { return len(l.left) }

func (l *Loop) Fill(left, right []float32) {
	for i := range left {
		left[i] = l.left[l.pos]
		if i < len(right) {
			right[i] = l.right[l.pos]
		}
		l.pos++
		if l.pos == len(l.left) {
			l.pos = 0
		}
	}
}
