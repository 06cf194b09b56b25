package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"dense": {
		ParticleCount: 100, ParticleSize: 6, Speed: 1.0, ColorScheme: "rainbow",
		MouseInfluence: 50, Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS,
	},
	"sparse": {
		ParticleCount: 10, ParticleSize: 16, Speed: 1.0, ColorScheme: "rainbow",
		MouseInfluence: 50, Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS,
	},
	"calm": {
		ParticleCount: 24, ParticleSize: 12, Speed: 0.5, ColorScheme: "blue",
		MouseInfluence: 0, Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS,
	},
	"storm": {
		ParticleCount: 80, ParticleSize: 8, Speed: 2.5, ColorScheme: "red",
		MouseInfluence: 150, Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS,
	},
	"outline": {
		ParticleCount: 40, ParticleSize: 10, Speed: 1.0, ColorScheme: "monochrome",
		MouseInfluence: 50, ShowHeartOutline: true,
		Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
