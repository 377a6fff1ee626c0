package config

import (
	"sort"

	"github.com/san-kum/cvterm/internal/anim"
)

type Preset struct {
	Description string
	Torus       TorusConfig
	Rain        RainConfig
}

func torus(fps int, stepA, stepB float64) TorusConfig {
	return TorusConfig{
		FPS:       fps,
		Width:     anim.DefaultWidth,
		Height:    anim.DefaultHeight,
		TubeSteps: anim.DefaultTubeSteps,
		RingSteps: anim.DefaultRingSteps,
		StepA:     stepA,
		StepB:     stepB,
	}
}

var Presets = map[string]Preset{
	"calm": {
		Description: "default spin, light drizzle",
		Torus:       torus(30, 0.05, 0.03),
		Rain:        RainConfig{FPS: 5, Rows: 4, Density: 0.05, Glyphs: anim.DefaultGlyphs},
	},
	"drizzle": {
		Description: "slow spin, sparse dots",
		Torus:       torus(24, 0.02, 0.01),
		Rain:        RainConfig{FPS: 3, Rows: 3, Density: 0.02, Glyphs: ".:"},
	},
	"storm": {
		Description: "fast spin, heavy rain",
		Torus:       torus(30, 0.09, 0.05),
		Rain:        RainConfig{FPS: 12, Rows: 6, Density: 0.25, Glyphs: "|/!:"},
	},
	"hypnotic": {
		Description: "smooth dense torus",
		Torus: TorusConfig{
			FPS: 60, Width: anim.DefaultWidth, Height: anim.DefaultHeight,
			TubeSteps: 180, RingSteps: 628, StepA: 0.02, StepB: 0.015,
		},
		Rain: RainConfig{FPS: 5, Rows: 4, Density: 0.05, Glyphs: anim.DefaultGlyphs},
	},
	"still": {
		Description: "barely moving, no rain",
		Torus:       torus(10, 0.005, 0.003),
		Rain:        RainConfig{FPS: 1, Rows: 0, Density: 0, Glyphs: anim.DefaultGlyphs},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
