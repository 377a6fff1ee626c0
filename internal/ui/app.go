package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/cvterm/internal/anim"
	"github.com/san-kum/cvterm/internal/audio"
	"github.com/san-kum/cvterm/internal/config"
	"github.com/san-kum/cvterm/internal/resume"
)

const (
	headerHeight = 1
	tabBarHeight = 2
	footerHeight = 1

	minPaneWidth = 24
	aboutTab     = 0
)

// AudioControl is the part of the audio player the shell drives.
type AudioControl interface {
	Levels() audio.Levels
	ToggleMute() bool
	Muted() bool
}

// Env carries everything the shell needs; it is built once by the
// entry point and owned by the model for the life of the program.
type Env struct {
	Config *config.Config
	Resume *resume.Resume
	// Audio is nil when sound is disabled.
	Audio AudioControl
	// MarkdownStyle pins a glamour standard style; when empty the panes
	// follow the theme.
	MarkdownStyle string
}

type Model struct {
	env      Env
	sched    *anim.Scheduler
	torus    *anim.Torus
	sections []resume.Section
	panes    []viewport.Model
	active   int

	keys   keyMap
	help   help.Model
	theme  Theme
	styles styles
	md     *markdown

	width  int
	height int

	showStats bool
	showHelp  bool
	status    string
}

func New(c Env) Model {
	if c.Config == nil {
		c.Config = config.DefaultConfig()
	}
	if c.Resume == nil {
		c.Resume = &resume.Resume{}
	}
	cfg := c.Config

	t := anim.NewTorus(cfg.Torus.Width, cfg.Torus.Height)
	if cfg.Torus.TubeSteps > 0 {
		t.TubeSteps = cfg.Torus.TubeSteps
	}
	if cfg.Torus.RingSteps > 0 {
		t.RingSteps = cfg.Torus.RingSteps
	}
	spin := anim.NewSpin(t)
	spin.StepA = cfg.Torus.StepA
	spin.StepB = cfg.Torus.StepB

	seed := cfg.Rain.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rain := anim.NewRain(anim.NewField(cfg.Rain.Density, cfg.Rain.Glyphs, seed))

	sched := anim.NewScheduler()
	sched.Add(anim.TorusTrack, interval(cfg.Torus.FPS, anim.TorusInterval), spin)
	sched.Add(anim.RainTrack, interval(cfg.Rain.FPS, anim.RainInterval), rain)

	sections := resume.Sections(c.Resume)
	theme := GetTheme(cfg.Theme)
	m := Model{
		env:      c,
		sched:    sched,
		torus:    t,
		sections: sections,
		panes:    make([]viewport.Model, len(sections)),
		keys:     defaultKeys(),
		help:     help.New(),
		theme:    theme,
		styles:   newStyles(theme),
		md:       newMarkdown(markdownStyle(c, theme)),
	}
	for i := range m.panes {
		m.panes[i] = viewport.New(0, 0)
	}
	return m
}

func markdownStyle(c Env, t Theme) string {
	if c.MarkdownStyle != "" {
		return c.MarkdownStyle
	}
	return t.Glamour
}

func interval(fps int, fallback time.Duration) time.Duration {
	if fps <= 0 {
		return fallback
	}
	return time.Second / time.Duration(fps)
}

// Run blocks until the user quits.
func Run(c Env) error {
	p := tea.NewProgram(New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.sched.Start()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case anim.TickMsg:
		cmd, _ := m.sched.Handle(msg, m.regionSize)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sched.StopAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.setTab(m.active + 1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setTab(m.active - 1)
		return m, nil
	case key.Matches(msg, m.keys.Jump):
		m.setTab(int(msg.String()[0] - '1'))
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
		m.status = "theme: " + m.theme.Name
		m.md.setStyle(markdownStyle(m.env, m.theme))
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		if m.env.Audio == nil {
			m.status = "audio off"
		} else if m.env.Audio.ToggleMute() {
			m.status = "muted"
		} else {
			m.status = "unmuted"
		}
		return m, nil
	case key.Matches(msg, m.keys.Stats):
		m.showStats = !m.showStats
		m.showHelp = false
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.showStats = false
		return m, nil
	}

	if m.active < len(m.panes) {
		var cmd tea.Cmd
		m.panes[m.active], cmd = m.panes[m.active].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setTab(i int) {
	n := len(m.sections)
	if n == 0 {
		return
	}
	m.active = ((i % n) + n) % n
	m.status = ""
}

// ActiveTab returns the index of the visible tab.
func (m Model) ActiveTab() int { return m.active }

// Theme returns the current theme.
func (m Model) Theme() Theme { return m.theme }

// Scheduler exposes the animation scheduler.
func (m Model) Scheduler() *anim.Scheduler { return m.sched }

func (m Model) bodyHeight() int {
	h := m.height - headerHeight - tabBarHeight - footerHeight - m.rainRows()
	if h < 0 {
		return 0
	}
	return h
}

// rainRows is the docked rain height, dropped entirely on tiny terminals.
func (m Model) rainRows() int {
	rows := m.env.Config.Rain.Rows
	if m.height-headerHeight-tabBarHeight-footerHeight-rows < 3 {
		return 0
	}
	return rows
}

func (m Model) frameSize() (int, int) {
	return m.torus.Width + 4, m.torus.Height + 2
}

func (m Model) torusFits() bool {
	fw, fh := m.frameSize()
	return m.width >= fw && m.bodyHeight() >= fh
}

// sideBySide reports whether the about text fits right of the torus.
func (m Model) sideBySide() bool {
	fw, _ := m.frameSize()
	return m.torusFits() && m.width >= fw+1+minPaneWidth
}

// regionSize feeds the scheduler; a hidden region reports zero.
func (m Model) regionSize(track string) (int, int) {
	switch track {
	case anim.TorusTrack:
		if m.active != aboutTab || !m.torusFits() {
			return 0, 0
		}
		return m.torus.Width, m.torus.Height
	case anim.RainTrack:
		return m.width, m.rainRows()
	}
	return 0, 0
}

func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	bodyH := m.bodyHeight()
	fw, fh := m.frameSize()
	for i := range m.panes {
		w, h := m.width, bodyH
		if i == aboutTab && m.torusFits() {
			if m.sideBySide() {
				w = m.width - fw - 1
			} else {
				h = bodyH - fh
			}
		}
		if h < 0 {
			h = 0
		}
		m.panes[i].Width = w
		m.panes[i].Height = h
		m.panes[i].SetContent(m.md.render(m.sections[i].Markdown, w-2))
	}
}
