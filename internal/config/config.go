package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/heartswarm/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultParticleCount  = 32
	DefaultParticleSize   = 10
	DefaultSpeed          = 1.0
	DefaultColorScheme    = "rainbow"
	DefaultMouseInfluence = 50
	DefaultWidth          = 1280
	DefaultHeight         = 720
	DefaultFPS            = 60
	DefaultLogLevel       = "info"

	MinParticleCount = 10
	MaxParticleCount = 100
	MinParticleSize  = 1
)

type Config struct {
	ParticleCount    int     `yaml:"particle_count"`
	ParticleSize     int     `yaml:"particle_size"`
	Speed            float64 `yaml:"speed"`
	ColorScheme      string  `yaml:"color_scheme"`
	MouseInfluence   int     `yaml:"mouse_influence"`
	ShowHeartOutline bool    `yaml:"show_heart_outline"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	FPS              int     `yaml:"fps"`
	Seed             int64   `yaml:"seed"`
	LogLevel         string  `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		ParticleCount:  DefaultParticleCount,
		ParticleSize:   DefaultParticleSize,
		Speed:          DefaultSpeed,
		ColorScheme:    DefaultColorScheme,
		MouseInfluence: DefaultMouseInfluence,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		FPS:            DefaultFPS,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads a yaml file over the defaults, so missing keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Normalize clamps the tunables into their accepted ranges.
func (c Config) Normalize() Config {
	switch {
	case c.ParticleCount < MinParticleCount:
		c.ParticleCount = MinParticleCount
	case c.ParticleCount > MaxParticleCount:
		c.ParticleCount = MaxParticleCount
	}
	if c.ParticleSize < MinParticleSize {
		c.ParticleSize = MinParticleSize
	}
	if c.Speed < 0 {
		c.Speed = 0
	}
	if c.MouseInfluence < 0 {
		c.MouseInfluence = 0
	}
	c.ColorScheme = strings.ToLower(strings.TrimSpace(c.ColorScheme))
	if c.ColorScheme == "" {
		c.ColorScheme = DefaultColorScheme
	}
	return c
}

// Validate rejects values Normalize cannot repair.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", dynamo.ErrParameterBounds, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", dynamo.ErrParameterBounds, c.FPS)
	}
	return nil
}
