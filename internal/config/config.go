package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cvterm/internal/anim"
)

const (
	DefaultData     = "resume.json"
	DefaultTheme    = "retro"
	DefaultVolume   = 0.25
	DefaultAddr     = ":8080"
	DefaultDB       = "visitors.db"
	DefaultRainFPS  = 5
	DefaultTorusFPS = 30
)

// ErrInvalid indicates a configuration value outside its valid range.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Data  string      `yaml:"data"`
	Theme string      `yaml:"theme"`
	Audio AudioConfig `yaml:"audio"`
	Torus TorusConfig `yaml:"torus"`
	Rain  RainConfig  `yaml:"rain"`
	Serve ServeConfig `yaml:"serve"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	File    string  `yaml:"file"`
	Volume  float64 `yaml:"volume"`
}

type TorusConfig struct {
	FPS       int     `yaml:"fps"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TubeSteps int     `yaml:"tube_steps"`
	RingSteps int     `yaml:"ring_steps"`
	StepA     float64 `yaml:"step_a"`
	StepB     float64 `yaml:"step_b"`
}

type RainConfig struct {
	FPS     int     `yaml:"fps"`
	Rows    int     `yaml:"rows"`
	Density float64 `yaml:"density"`
	Glyphs  string  `yaml:"glyphs"`
	Seed    int64   `yaml:"seed"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
	DB   string `yaml:"db"`
}

func DefaultConfig() *Config {
	return &Config{
		Data:  DefaultData,
		Theme: DefaultTheme,
		Audio: AudioConfig{Enabled: true, Volume: DefaultVolume},
		Torus: TorusConfig{
			FPS:       DefaultTorusFPS,
			Width:     anim.DefaultWidth,
			Height:    anim.DefaultHeight,
			TubeSteps: anim.DefaultTubeSteps,
			RingSteps: anim.DefaultRingSteps,
			StepA:     anim.DefaultStepA,
			StepB:     anim.DefaultStepB,
		},
		Rain: RainConfig{
			FPS:     DefaultRainFPS,
			Rows:    anim.DefaultRows,
			Density: anim.DefaultDensity,
			Glyphs:  anim.DefaultGlyphs,
		},
		Serve: ServeConfig{Addr: DefaultAddr, DB: DefaultDB},
	}
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from CVTERM_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CVTERM_DATA"); v != "" {
		c.Data = v
	}
	if v := os.Getenv("CVTERM_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("CVTERM_AUDIO"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = on
		} else {
			c.Audio.File = v
		}
	}
	if v := os.Getenv("CVTERM_ADDR"); v != "" {
		c.Serve.Addr = v
	}
	if v := os.Getenv("CVTERM_DB"); v != "" {
		c.Serve.DB = v
	}
}

// ApplyPreset copies the visual settings of a named preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalid, name)
	}
	c.Torus = p.Torus
	c.Rain = p.Rain
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Torus.FPS < 1 || c.Torus.FPS > 60:
		return fmt.Errorf("%w: torus fps out of range 1-60 (got %d)", ErrInvalid, c.Torus.FPS)
	case c.Rain.FPS < 1 || c.Rain.FPS > 60:
		return fmt.Errorf("%w: rain fps out of range 1-60 (got %d)", ErrInvalid, c.Rain.FPS)
	case c.Torus.Width < 1 || c.Torus.Height < 1:
		return fmt.Errorf("%w: torus canvas %dx%d", ErrInvalid, c.Torus.Width, c.Torus.Height)
	case c.Torus.TubeSteps < 1 || c.Torus.RingSteps < 1:
		return fmt.Errorf("%w: torus steps must be positive", ErrInvalid)
	case c.Rain.Density < 0 || c.Rain.Density > 1:
		return fmt.Errorf("%w: rain density out of range 0-1 (got %.2f)", ErrInvalid, c.Rain.Density)
	case c.Rain.Rows < 0:
		return fmt.Errorf("%w: rain rows must not be negative", ErrInvalid)
	case c.Rain.Glyphs == "":
		return fmt.Errorf("%w: rain glyphs cannot be empty", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: volume out of range 0-1 (got %.2f)", ErrInvalid, c.Audio.Volume)
	}
	return nil
}
