package anim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	TorusTrack = "torus"
	RainTrack  = "rain"

	TorusInterval = time.Second / 30
	RainInterval  = time.Second / 5

	statsCapacity = 120
)

// Animator computes the next frame for a region of the given size.
type Animator interface {
	Step(width, height int) string
}

// SizeFunc reports the current visible size of a track's region.
type SizeFunc func(track string) (width, height int)

// TickMsg fires once per track interval.
type TickMsg struct {
	Track string
	Gen   int
	Time  time.Time
}

// Track drives one animator on its own timer.
type Track struct {
	Name     string
	Interval time.Duration

	anim    Animator
	frame   string
	gen     int
	running bool
	ticks   uint64
	costs   []float64
}

type TrackStats struct {
	Ticks   uint64
	Running bool
	// Costs holds recent frame compute times in milliseconds, oldest first.
	Costs []float64
}

// Scheduler runs every track independently; a slow or stopped track never
// delays another one.
type Scheduler struct {
	tracks map[string]*Track
	order  []string
	now    func() time.Time
}

func NewScheduler() *Scheduler {
	return &Scheduler{tracks: make(map[string]*Track), now: time.Now}
}

func (s *Scheduler) Add(name string, interval time.Duration, a Animator) {
	if _, ok := s.tracks[name]; !ok {
		s.order = append(s.order, name)
	}
	s.tracks[name] = &Track{Name: name, Interval: interval, anim: a, costs: make([]float64, 0, statsCapacity)}
}

// Start arms every track and returns their batched timers.
func (s *Scheduler) Start() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(s.order))
	for _, name := range s.order {
		cmds = append(cmds, s.StartTrack(name))
	}
	return tea.Batch(cmds...)
}

func (s *Scheduler) StartTrack(name string) tea.Cmd {
	t, ok := s.tracks[name]
	if !ok || t.running {
		return nil
	}
	t.running = true
	t.gen++
	return t.next()
}

// Stop disarms a track at once. Ticks already in flight are dropped.
func (s *Scheduler) Stop(name string) {
	if t, ok := s.tracks[name]; ok {
		t.running = false
		t.gen++
	}
}

func (s *Scheduler) StopAll() {
	for _, name := range s.order {
		s.Stop(name)
	}
}

// Handle computes exactly one frame for the ticking track and re-arms its
// timer. It reports whether a new frame was published.
func (s *Scheduler) Handle(msg TickMsg, size SizeFunc) (tea.Cmd, bool) {
	t, ok := s.tracks[msg.Track]
	if !ok || !t.running || msg.Gen != t.gen {
		return nil, false
	}
	w, h := 0, 0
	if size != nil {
		w, h = size(t.Name)
	}
	start := s.now()
	frame := t.anim.Step(w, h)
	t.record(s.now().Sub(start))
	changed := frame != t.frame
	t.frame = frame
	t.ticks++
	return t.next(), changed
}

func (s *Scheduler) Frame(name string) string {
	if t, ok := s.tracks[name]; ok {
		return t.frame
	}
	return ""
}

func (s *Scheduler) Stats(name string) TrackStats {
	t, ok := s.tracks[name]
	if !ok {
		return TrackStats{}
	}
	costs := make([]float64, len(t.costs))
	copy(costs, t.costs)
	return TrackStats{Ticks: t.ticks, Running: t.running, Costs: costs}
}

func (s *Scheduler) Tracks() []string { return append([]string(nil), s.order...) }

func (t *Track) next() tea.Cmd {
	name, gen := t.Name, t.gen
	return tea.Tick(t.Interval, func(ts time.Time) tea.Msg {
		return TickMsg{Track: name, Gen: gen, Time: ts}
	})
}

func (t *Track) record(d time.Duration) {
	if len(t.costs) == statsCapacity {
		copy(t.costs, t.costs[1:])
		t.costs = t.costs[:statsCapacity-1]
	}
	t.costs = append(t.costs, float64(d.Microseconds())/1000)
}
