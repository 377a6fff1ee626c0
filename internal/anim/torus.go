package anim

import "math"

const (
	DefaultWidth     = 80
	DefaultHeight    = 22
	DefaultTubeSteps = 90
	DefaultRingSteps = 314
	DefaultStepA     = 0.05
	DefaultStepB     = 0.03

	// Ramp orders glyphs from darkest to brightest.
	Ramp = ".,-~:;=!*#$@"
)

type vec3 struct{ x, y, z float64 }

func (v vec3) rotateX(c, s float64) vec3 { return vec3{v.x, v.y*c - v.z*s, v.y*s + v.z*c} }
func (v vec3) rotateZ(c, s float64) vec3 { return vec3{v.x*c - v.y*s, v.x*s + v.y*c, v.z} }

// Torus renders a rotating donut onto a fixed character canvas.
// A Torus reuses its canvas between frames and is not safe for concurrent use.
type Torus struct {
	Width, Height        int
	TubeSteps, RingSteps int
	TubeRadius           float64
	RingRadius           float64
	Distance             float64
	Ramp                 string

	canvas           *Canvas
	tubeS, tubeC     []float64
	ringS, ringC     []float64
	tabledT, tabledR int
}

func NewTorus(w, h int) *Torus {
	return &Torus{
		Width:      w,
		Height:     h,
		TubeSteps:  DefaultTubeSteps,
		RingSteps:  DefaultRingSteps,
		TubeRadius: 1,
		RingRadius: 2,
		Distance:   5,
		Ramp:       Ramp,
	}
}

// RenderFrame draws one frame of the reference 80x22 torus at angles a and b.
func RenderFrame(a, b float64) string {
	return NewTorus(DefaultWidth, DefaultHeight).Render(a, b)
}

// Render sweeps the surface at rotation (a, b) and returns the frame text.
// Output depends only on the angles and the torus parameters.
func (t *Torus) Render(a, b float64) string {
	if t.Width <= 0 || t.Height <= 0 {
		return ""
	}
	if t.canvas == nil || t.canvas.Width != t.Width || t.canvas.Height != t.Height {
		t.canvas = NewCanvas(t.Width, t.Height)
	} else {
		t.canvas.Reset()
	}
	t.tables()

	ramp := []rune(t.Ramp)
	if len(ramp) == 0 {
		ramp = []rune(Ramp)
	}
	cosA, sinA := math.Cos(a), math.Sin(a)
	cosB, sinB := math.Cos(b), math.Sin(b)

	w, h := float64(t.Width), float64(t.Height)
	k1x := w * 30 / DefaultWidth
	k1y := h * 15 / DefaultHeight
	cx := float64(t.Width / 2)
	cy := float64(t.Height/2 + 1)

	for i := range t.tubeS {
		cosT, sinT := t.tubeC[i], t.tubeS[i]
		circleX := t.RingRadius + t.TubeRadius*cosT
		circleY := t.TubeRadius * sinT
		for j := range t.ringS {
			cosP, sinP := t.ringC[j], t.ringS[j]

			p := vec3{circleX * cosP, circleY, circleX * sinP}.
				rotateX(cosA, sinA).
				rotateZ(cosB, sinB)
			ooz := 1 / (t.Distance + p.z)

			col := int(cx + k1x*ooz*p.x)
			row := int(cy - k1y*ooz*p.y)
			if col < 0 || row < 0 || col >= t.Width || row >= t.Height {
				continue
			}

			n := vec3{cosT * cosP, sinT, cosT * sinP}.
				rotateX(cosA, sinA).
				rotateZ(cosB, sinB)
			// light comes from behind the viewer and above: (0, 1, -1)
			lum := int(8 * (n.y - n.z))
			if lum < 0 {
				lum = 0
			}
			if lum >= len(ramp) {
				lum = len(ramp) - 1
			}
			t.canvas.Plot(col, row, ooz, ramp[lum])
		}
	}
	return t.canvas.String()
}

func (t *Torus) tables() {
	if t.TubeSteps < 1 {
		t.TubeSteps = DefaultTubeSteps
	}
	if t.RingSteps < 1 {
		t.RingSteps = DefaultRingSteps
	}
	if t.tabledT != t.TubeSteps {
		t.tubeS, t.tubeC = sweep(t.TubeSteps)
		t.tabledT = t.TubeSteps
	}
	if t.tabledR != t.RingSteps {
		t.ringS, t.ringC = sweep(t.RingSteps)
		t.tabledR = t.RingSteps
	}
}

func sweep(steps int) (sin, cos []float64) {
	sin = make([]float64, steps)
	cos = make([]float64, steps)
	for i := 0; i < steps; i++ {
		ang := 2 * math.Pi * float64(i) / float64(steps)
		sin[i], cos[i] = math.Sincos(ang)
	}
	return sin, cos
}

// Spin owns the rotation angles of a torus animation.
type Spin struct {
	A, B         float64
	StepA, StepB float64

	torus *Torus
	frame string
}

func NewSpin(t *Torus) *Spin {
	return &Spin{StepA: DefaultStepA, StepB: DefaultStepB, torus: t}
}

// Step renders the frame for the current angles and then advances them.
// A degenerate region leaves both the angles and the last frame untouched.
func (s *Spin) Step(width, height int) string {
	if width <= 0 || height <= 0 {
		return s.frame
	}
	s.frame = s.torus.Render(s.A, s.B)
	s.A += s.StepA
	s.B += s.StepB
	return s.frame
}

func (s *Spin) Frame() string { return s.frame }
func (s *Spin) Torus() *Torus { return s.torus }
