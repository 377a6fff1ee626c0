package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// ErrUnsupported indicates an audio file the player cannot loop.
var ErrUnsupported = errors.New("audio: unsupported format")

// Source produces one stereo block per callback.
type Source interface {
	SampleRate() float64
	Fill(left, right []float32)
}

// Player streams a Source to the default output device. The stream callback
// runs on its own goroutine; Levels and the mute flag are the only state it
// shares with callers.
type Player struct {
	src    Source
	stream *portaudio.Stream
	meter  *Meter

	mu     sync.Mutex
	volume float64
	muted  bool
	active bool
}

func NewPlayer(src Source, volume float64) *Player {
	return &Player{src: src, volume: volume, meter: NewMeter(src.SampleRate())}
}

func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, p.src.SampleRate(), BufferSize, p.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}

	p.mu.Lock()
	p.stream = stream
	p.active = true
	p.mu.Unlock()
	return nil
}

// Stop halts playback and releases the device. Safe to call more than once.
func (p *Player) Stop() {
	p.mu.Lock()
	stream, active := p.stream, p.active
	p.stream, p.active = nil, false
	p.mu.Unlock()

	if !active {
		return
	}
	stream.Stop()
	stream.Close()
	portaudio.Terminate()
}

func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// ToggleMute flips the mute flag and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *Player) Levels() Levels { return p.meter.Levels() }

func (p *Player) process(out [][]float32) {
	left, right := out[0], out[1]
	p.src.Fill(left, right)

	p.mu.Lock()
	gain := float32(p.volume)
	if p.muted {
		gain = 0
	}
	p.mu.Unlock()

	for i := range left {
		left[i] *= gain
		right[i] *= gain
	}
	p.meter.Update(left, right)
}
