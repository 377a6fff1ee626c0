package anim

import (
	"testing"
	"time"
)

type countAnim struct {
	calls int
	sizes [][2]int
}

func (c *countAnim) Step(w, h int) string {
	c.calls++
	c.sizes = append(c.sizes, [2]int{w, h})
	return string(rune('a' + c.calls))
}

func fixedSize(w, h int) SizeFunc {
	return func(string) (int, int) { return w, h }
}

func TestSchedulerHandle(t *testing.T) {
	a := &countAnim{}
	s := NewScheduler()
	s.Add("x", time.Millisecond, a)
	if s.Start() == nil {
		t.Fatal("Start should return timers")
	}

	cmd, changed := s.Handle(TickMsg{Track: "x", Gen: 1}, fixedSize(8, 3))
	if cmd == nil || !changed {
		t.Fatalf("cmd=%v changed=%v", cmd, changed)
	}
	if a.calls != 1 || a.sizes[0] != [2]int{8, 3} {
		t.Errorf("animator saw %v", a.sizes)
	}
	if s.Frame("x") != "b" {
		t.Errorf("frame = %q", s.Frame("x"))
	}
	if st := s.Stats("x"); st.Ticks != 1 || len(st.Costs) != 1 || !st.Running {
		t.Errorf("stats = %+v", st)
	}
}

func TestSchedulerTracksIndependent(t *testing.T) {
	torus, rain := &countAnim{}, &countAnim{}
	s := NewScheduler()
	s.Add(TorusTrack, TorusInterval, torus)
	s.Add(RainTrack, RainInterval, rain)
	s.Start()

	for i := 0; i < 6; i++ {
		s.Handle(TickMsg{Track: TorusTrack, Gen: 1}, fixedSize(80, 22))
	}
	s.Handle(TickMsg{Track: RainTrack, Gen: 1}, fixedSize(40, 4))

	if torus.calls != 6 || rain.calls != 1 {
		t.Errorf("torus=%d rain=%d", torus.calls, rain.calls)
	}
}

func TestSchedulerStop(t *testing.T) {
	a := &countAnim{}
	s := NewScheduler()
	s.Add("x", time.Millisecond, a)
	s.Start()
	s.Stop("x")

	cmd, changed := s.Handle(TickMsg{Track: "x", Gen: 1}, fixedSize(1, 1))
	if cmd != nil || changed || a.calls != 0 {
		t.Error("stopped track must ignore in-flight ticks")
	}

	s.StartTrack("x")
	if _, changed := s.Handle(TickMsg{Track: "x", Gen: 1}, fixedSize(1, 1)); changed {
		t.Error("tick from an earlier generation must be ignored")
	}
	if _, changed := s.Handle(TickMsg{Track: "x", Gen: 3}, fixedSize(1, 1)); !changed {
		t.Error("tick from the current generation should render")
	}
}

func TestSchedulerUnknownTrack(t *testing.T) {
	s := NewScheduler()
	if cmd, changed := s.Handle(TickMsg{Track: "nope"}, nil); cmd != nil || changed {
		t.Error("unknown track should be ignored")
	}
	if s.Frame("nope") != "" {
		t.Error("unknown track has no frame")
	}
}

func TestSchedulerCostsBounded(t *testing.T) {
	s := NewScheduler()
	s.Add("x", time.Millisecond, &countAnim{})
	s.Start()
	for i := 0; i < statsCapacity+30; i++ {
		s.Handle(TickMsg{Track: "x", Gen: 1}, fixedSize(1, 1))
	}
	if n := len(s.Stats("x").Costs); n != statsCapacity {
		t.Errorf("kept %d costs, want %d", n, statsCapacity)
	}
}

func TestSchedulerSpinIdleWhenHidden(t *testing.T) {
	spin := NewSpin(NewTorus(DefaultWidth, DefaultHeight))
	s := NewScheduler()
	s.Add(TorusTrack, TorusInterval, spin)
	s.Start()

	s.Handle(TickMsg{Track: TorusTrack, Gen: 1}, fixedSize(0, 0))
	if spin.A != 0 || s.Frame(TorusTrack) != "" {
		t.Error("hidden torus should not advance")
	}
	s.Handle(TickMsg{Track: TorusTrack, Gen: 1}, fixedSize(80, 22))
	if spin.A == 0 || s.Frame(TorusTrack) == "" {
		t.Error("visible torus should render and advance")
	}
}
