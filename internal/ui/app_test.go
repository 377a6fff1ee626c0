package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cvterm/internal/anim"
	"github.com/san-kum/cvterm/internal/audio"
	"github.com/san-kum/cvterm/internal/config"
	"github.com/san-kum/cvterm/internal/resume"
)

type fakeAudio struct {
	muted  bool
	levels audio.Levels
}

func (f *fakeAudio) Levels() audio.Levels { return f.levels }
func (f *fakeAudio) Muted() bool          { return f.muted }
func (f *fakeAudio) ToggleMute() bool {
	f.muted = !f.muted
	return f.muted
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick(track string) anim.TickMsg {
	return anim.TickMsg{Track: track, Gen: 1}
}

var _ = Describe("Model", func() {
	var (
		m  Model
		fa *fakeAudio
	)

	BeforeEach(func() {
		cfg := config.DefaultConfig()
		cfg.Rain.Seed = 7
		fa = &fakeAudio{levels: audio.Levels{Bass: 0.5, Mid: 0.3, High: 0.2, RMS: 0.2}}
		m = New(Env{
			Config: cfg,
			Resume: &resume.Resume{
				About:   "Builds terminal toys.",
				Contact: resume.Contact{Name: "Ada Lovelace", Nationality: "British"},
			},
			Audio:         fa,
			MarkdownStyle: "notty",
		})
		m.Init()
	})

	It("shows a placeholder until the terminal size is known", func() {
		Expect(m.View()).To(Equal("loading..."))
		w, h := m.regionSize(anim.TorusTrack)
		Expect(w).To(BeZero())
		Expect(h).To(BeZero())
	})

	Context("on a large terminal", func() {
		BeforeEach(func() {
			m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
		})

		It("renders the header and every tab", func() {
			view := m.View()
			Expect(view).To(ContainSubstring("Ada Lovelace"))
			for _, label := range []string{"1 About Me", "2 Contact", "3 Experience", "4 Education", "5 Skills"} {
				Expect(view).To(ContainSubstring(label))
			}
			Expect(view).To(ContainSubstring("Builds terminal toys."))
		})

		It("fills exactly the terminal height", func() {
			Expect(lipgloss.Height(m.View())).To(Equal(40))
		})

		It("gives the torus its canvas size on the About tab", func() {
			w, h := m.regionSize(anim.TorusTrack)
			Expect(w).To(Equal(anim.DefaultWidth))
			Expect(h).To(Equal(anim.DefaultHeight))

			w, h = m.regionSize(anim.RainTrack)
			Expect(w).To(Equal(120))
			Expect(h).To(Equal(anim.DefaultRows))
		})

		DescribeTable("switching tabs",
			func(keys []tea.KeyMsg, want int) {
				for _, k := range keys {
					m, _ = update(m, k)
				}
				Expect(m.ActiveTab()).To(Equal(want))
			},
			Entry("right", []tea.KeyMsg{{Type: tea.KeyRight}}, 1),
			Entry("ctrl+t twice", []tea.KeyMsg{{Type: tea.KeyCtrlT}, {Type: tea.KeyCtrlT}}, 2),
			Entry("tab", []tea.KeyMsg{{Type: tea.KeyTab}}, 1),
			Entry("left wraps", []tea.KeyMsg{{Type: tea.KeyLeft}}, 4),
			Entry("shift+tab wraps", []tea.KeyMsg{{Type: tea.KeyShiftTab}}, 4),
			Entry("ctrl+p", []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyRight}, {Type: tea.KeyCtrlP}}, 1),
			Entry("jump", []tea.KeyMsg{runes("4")}, 3),
			Entry("next wraps", []tea.KeyMsg{runes("5"), {Type: tea.KeyRight}}, 0),
		)

		It("shows the selected section body", func() {
			m, _ = update(m, runes("2"))
			view := m.View()
			Expect(view).To(ContainSubstring("Contact Information"))
			Expect(view).To(ContainSubstring("British"))
		})

		It("publishes a torus frame on tick", func() {
			var cmd tea.Cmd
			m, cmd = update(m, tick(anim.TorusTrack))
			Expect(cmd).NotTo(BeNil())
			frame := m.Scheduler().Frame(anim.TorusTrack)
			Expect(strings.Split(frame, "\n")).To(HaveLen(anim.DefaultHeight))
			Expect(strings.TrimSpace(frame)).NotTo(BeEmpty())
			Expect(m.View()).To(ContainSubstring(strings.TrimSpace(strings.Split(frame, "\n")[11])))
		})

		It("keeps the torus idle while its tab is hidden", func() {
			m, _ = update(m, tick(anim.TorusTrack))
			first := m.Scheduler().Frame(anim.TorusTrack)

			m, _ = update(m, runes("3"))
			w, h := m.regionSize(anim.TorusTrack)
			Expect(w).To(BeZero())
			Expect(h).To(BeZero())

			m, _ = update(m, tick(anim.TorusTrack))
			m, _ = update(m, tick(anim.TorusTrack))
			Expect(m.Scheduler().Frame(anim.TorusTrack)).To(Equal(first))

			// back on the tab the spin resumes from where it stopped
			m, _ = update(m, runes("1"))
			m, _ = update(m, tick(anim.TorusTrack))
			second := m.Scheduler().Frame(anim.TorusTrack)
			Expect(second).NotTo(Equal(first))
			Expect(second).To(Equal(anim.RenderFrame(anim.DefaultStepA, anim.DefaultStepB)))
		})

		It("docks the rain above the footer", func() {
			m, _ = update(m, tick(anim.RainTrack))
			rows := strings.Split(m.Scheduler().Frame(anim.RainTrack), "\n")
			Expect(rows).To(HaveLen(anim.DefaultRows))
			for _, r := range rows {
				Expect([]rune(r)).To(HaveLen(120))
			}
		})

		It("drops ticks from a stale generation", func() {
			_, cmd := update(m, anim.TickMsg{Track: anim.TorusTrack, Gen: 99})
			Expect(cmd).To(BeNil())
			Expect(m.Scheduler().Stats(anim.TorusTrack).Ticks).To(BeZero())
		})

		It("stops every track on quit", func() {
			var cmd tea.Cmd
			m, cmd = update(m, runes("q"))
			Expect(cmd).NotTo(BeNil())
			Expect(cmd()).To(Equal(tea.QuitMsg{}))
			for _, name := range m.Scheduler().Tracks() {
				Expect(m.Scheduler().Stats(name).Running).To(BeFalse())
			}
		})

		It("cycles themes", func() {
			Expect(m.Theme().Name).To(Equal("retro"))
			m, _ = update(m, runes("t"))
			Expect(m.Theme().Name).To(Equal("cyberpunk"))
			Expect(m.View()).To(ContainSubstring("theme: cyberpunk"))
		})

		It("keeps a pinned markdown style across themes", func() {
			m, _ = update(m, runes("t"))
			Expect(m.md.style).To(Equal("notty"))
		})

		It("toggles mute on the audio player", func() {
			Expect(m.View()).To(ContainSubstring("♪ "))
			m, _ = update(m, runes("m"))
			Expect(fa.muted).To(BeTrue())
			Expect(m.View()).To(ContainSubstring("♪ muted"))
		})

		It("shows the stats overlay", func() {
			m, _ = update(m, runes("s"))
			Expect(m.View()).To(ContainSubstring("collecting torus samples"))

			m, _ = update(m, tick(anim.TorusTrack))
			m, _ = update(m, tick(anim.TorusTrack))
			view := m.View()
			Expect(view).To(ContainSubstring("torus frame time"))
			Expect(view).To(ContainSubstring("ticks 2"))
		})

		It("shows the full key help", func() {
			m, _ = update(m, runes("?"))
			Expect(m.View()).To(ContainSubstring("jump to tab"))
			m, _ = update(m, runes("?"))
			Expect(m.View()).NotTo(ContainSubstring("jump to tab"))
		})
	})

	Context("on a small terminal", func() {
		BeforeEach(func() {
			m, _ = update(m, tea.WindowSizeMsg{Width: 60, Height: 10})
		})

		It("hides the torus and the rain", func() {
			w, h := m.regionSize(anim.TorusTrack)
			Expect(w).To(BeZero())
			Expect(h).To(BeZero())
			_, h = m.regionSize(anim.RainTrack)
			Expect(h).To(BeZero())
			Expect(m.View()).To(ContainSubstring("About Me"))
		})
	})

	Context("without a pinned markdown style", func() {
		It("renders the panes in the theme's glamour style", func() {
			m = New(Env{Config: config.DefaultConfig(), Resume: &resume.Resume{About: "Builds terminal toys."}})
			Expect(m.md.style).To(Equal(ThemeRetroGreen.Glamour))

			m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
			m, _ = update(m, runes("t"))
			Expect(m.Theme().Name).To(Equal(ThemeCyberpunk.Name))
			Expect(m.md.style).To(Equal(ThemeCyberpunk.Glamour))
			Expect(m.md.r).NotTo(BeNil())
		})
	})

	Context("without audio", func() {
		It("reports audio off on mute", func() {
			m = New(Env{Config: config.DefaultConfig(), MarkdownStyle: "notty"})
			m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
			m, _ = update(m, runes("m"))
			Expect(m.View()).To(ContainSubstring("audio off"))
			Expect(m.View()).NotTo(ContainSubstring("♪"))
		})
	})
})
