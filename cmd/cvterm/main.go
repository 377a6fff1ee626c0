package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/san-kum/cvterm/internal/anim"
	"github.com/san-kum/cvterm/internal/audio"
	"github.com/san-kum/cvterm/internal/config"
	"github.com/san-kum/cvterm/internal/export"
	"github.com/san-kum/cvterm/internal/resume"
	"github.com/san-kum/cvterm/internal/ui"
	"github.com/san-kum/cvterm/internal/web"
)

var (
	configFile string
	dataFile   string
	themeName  string
	preset     string
	noAudio    bool
	audioFile  string
	debug      bool

	frames   int
	withRain bool
	svgPath  string
	render   bool
	addr     string
	dbPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "cvterm",
		Short:        "terminal résumé with a spinning torus",
		SilenceUsage: true,
		RunE:         runViewer,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataFile, "data", "", "résumé file (json or yaml)")
	pf.StringVar(&themeName, "theme", "", "color theme")
	pf.StringVar(&preset, "preset", "", "visual preset")
	pf.BoolVar(&noAudio, "no-audio", false, "disable ambient audio")
	pf.StringVar(&audioFile, "audio-file", "", "wav file to loop instead of the synth pad")
	pf.BoolVar(&debug, "debug", false, "log to cvterm-debug.log")

	donutCmd := &cobra.Command{
		Use:   "donut",
		Short: "spin the torus on stdout",
		Args:  cobra.NoArgs,
		RunE:  runDonut,
	}
	donutCmd.Flags().IntVar(&frames, "frames", 0, "stop after n frames (0 runs until interrupted)")
	donutCmd.Flags().BoolVar(&withRain, "rain", false, "draw the rain field below the torus")
	donutCmd.Flags().StringVar(&svgPath, "svg", "", "save the last frame as svg")

	printCmd := &cobra.Command{
		Use:       "print [section]",
		Short:     "print résumé sections as markdown",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"about", "contact", "experience", "education", "skills"},
		RunE:      runPrint,
	}
	printCmd.Flags().BoolVar(&render, "render", false, "render markdown for the terminal")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the résumé and a live torus over http",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "visitor database (\"off\" disables tracking)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list visual presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTORUS FPS\tRAIN DENSITY\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\n", name, p.Torus.FPS, p.Rain.Density, p.Description)
			}
			w.Flush()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range ui.ThemeNames() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "cvterm.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(donutCmd, printCmd, serveCmd, presetsCmd, themesCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, environment, preset and
// flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data = dataFile
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Changed("audio-file") {
		cfg.Audio.File = audioFile
	}
	if noAudio {
		cfg.Audio.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadResume fails only when the file is missing; an unreadable file shows
// up as an error résumé.
func loadResume(path string) (*resume.Resume, error) {
	r, err := resume.Load(path)
	switch {
	case errors.Is(err, resume.ErrNotFound):
		return nil, fmt.Errorf("cannot find %s: %w", path, err)
	case err != nil:
		log.Printf("resume: %v", err)
		return resume.Fallback(err), nil
	}
	return r, nil
}

func startAudio(cfg *config.Config) *audio.Player {
	if !cfg.Audio.Enabled {
		return nil
	}
	var src audio.Source = audio.NewPad()
	if cfg.Audio.File != "" {
		loop, err := audio.LoadWAV(cfg.Audio.File)
		if err != nil {
			log.Printf("audio: %v, using synth pad", err)
		} else {
			src = loop
		}
	}
	p := audio.NewPlayer(src, cfg.Audio.Volume)
	if err := p.Start(); err != nil {
		log.Printf("audio disabled: %v", err)
		return nil
	}
	return p
}

func runViewer(cmd *cobra.Command, args []string) error {
	if debug {
		f, err := tea.LogToFile("cvterm-debug.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	r, err := loadResume(cfg.Data)
	if err != nil {
		return err
	}

	c := ui.Env{Config: cfg, Resume: r}
	if player := startAudio(cfg); player != nil {
		defer player.Stop()
		c.Audio = player
	}
	return ui.Run(c)
}

func runDonut(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := anim.NewTorus(cfg.Torus.Width, cfg.Torus.Height)
	t.TubeSteps = cfg.Torus.TubeSteps
	t.RingSteps = cfg.Torus.RingSteps
	spin := anim.NewSpin(t)
	spin.StepA = cfg.Torus.StepA
	spin.StepB = cfg.Torus.StepB

	loop := anim.NewLoop(os.Stdout, spin)
	loop.Frames = frames
	loop.TorusRate = time.Second / time.Duration(cfg.Torus.FPS)
	loop.RainRate = time.Second / time.Duration(cfg.Rain.FPS)
	if withRain {
		seed := cfg.Rain.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		loop.Rain = anim.NewRain(anim.NewField(cfg.Rain.Density, cfg.Rain.Glyphs, seed))
		loop.RainRows = cfg.Rain.Rows
	}

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if svgPath == "" {
		return nil
	}
	frame := spin.Frame()
	if frame == "" {
		return errors.New("no frame rendered, nothing to save")
	}
	st := export.DefaultStyle
	theme := ui.GetTheme(cfg.Theme)
	st.Foreground, st.Background = string(theme.Accent), string(theme.Background)
	if err := os.WriteFile(svgPath, []byte(export.FrameToSVG(frame, st)), 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", svgPath)
	return nil
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := resume.Load(cfg.Data)
	if err != nil {
		return err
	}

	sections := resume.Sections(r)
	if len(args) == 1 {
		sec, ok := resume.Find(r, args[0])
		if !ok {
			return fmt.Errorf("unknown section %q (available: about, contact, experience, education, skills)", args[0])
		}
		sections = []resume.Section{sec}
	}

	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = s.Markdown
	}
	out := strings.Join(parts, "\n")
	if render {
		out, err = glamour.Render(out, "dark")
		if err != nil {
			return err
		}
	}
	fmt.Print(out)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Serve.Addr = addr
	}
	if cmd.Flags().Changed("db") {
		cfg.Serve.DB = dbPath
	}
	r, err := loadResume(cfg.Data)
	if err != nil {
		return err
	}

	var visitors *web.Store
	if cfg.Serve.DB != "" && cfg.Serve.DB != "off" {
		visitors, err = web.OpenStore(cfg.Serve.DB)
		if err != nil {
			return err
		}
		defer visitors.Close()
		if n, err := visitors.Cleanup(); err != nil {
			log.Printf("visitor cleanup: %v", err)
		} else if n > 0 {
			log.Printf("removed %d visitor records older than 12 months", n)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.New(cfg, r, visitors).Run(ctx, cfg.Serve.Addr)
}
