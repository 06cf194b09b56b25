package automation

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/dynamo"
	"github.com/san-kum/heartswarm/internal/render"
	"github.com/san-kum/heartswarm/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of reconfigurations and pointer paths
// played against one headless loop.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs Frames frames after applying its changes.
type ScenarioStep struct {
	Name         string       `yaml:"name"`
	Frames       int          `yaml:"frames"`
	Set          Overrides    `yaml:"set"`
	Resize       *Size        `yaml:"resize"`
	Pointer      *PointerPath `yaml:"pointer"`
	PointerLeave bool         `yaml:"pointer_leave"`
}

// Overrides holds the config fields a step may change. Nil fields are left
// untouched.
type Overrides struct {
	ParticleCount    *int     `yaml:"particle_count"`
	ParticleSize     *int     `yaml:"particle_size"`
	Speed            *float64 `yaml:"speed"`
	ColorScheme      *string  `yaml:"color_scheme"`
	MouseInfluence   *int     `yaml:"mouse_influence"`
	ShowHeartOutline *bool    `yaml:"show_heart_outline"`
}

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PointerPath moves the pointer linearly from From to To over a step.
type PointerPath struct {
	From [2]float64 `yaml:"from"`
	To   [2]float64 `yaml:"to"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Name    string
	Frames  int
	Stats   sim.Stats
	Metrics map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i, step := range scenario.Steps {
		if step.Frames <= 0 {
			return nil, fmt.Errorf("step %d: %w: frames %d", i+1, dynamo.ErrParameterBounds, step.Frames)
		}
		if step.Resize != nil && (step.Resize.Width <= 0 || step.Resize.Height <= 0) {
			return nil, fmt.Errorf("step %d: %w: resize %vx%v", i+1, dynamo.ErrParameterBounds, step.Resize.Width, step.Resize.Height)
		}
	}
	return &scenario, nil
}

// Apply writes the non-nil overrides into cfg.
func (o Overrides) Apply(cfg config.Config) config.Config {
	if o.ParticleCount != nil {
		cfg.ParticleCount = *o.ParticleCount
	}
	if o.ParticleSize != nil {
		cfg.ParticleSize = *o.ParticleSize
	}
	if o.Speed != nil {
		cfg.Speed = *o.Speed
	}
	if o.ColorScheme != nil {
		cfg.ColorScheme = *o.ColorScheme
	}
	if o.MouseInfluence != nil {
		cfg.MouseInfluence = *o.MouseInfluence
	}
	if o.ShowHeartOutline != nil {
		cfg.ShowHeartOutline = *o.ShowHeartOutline
	}
	return cfg
}

// At returns the pointer position at frame i of n.
func (p PointerPath) At(i, n int) (float64, float64) {
	t := 0.0
	if n > 1 {
		t = float64(i) / float64(n-1)
	}
	return p.From[0] + (p.To[0]-p.From[0])*t, p.From[1] + (p.To[1]-p.From[1])*t
}

// RunScenario plays every step against a running loop. metrics are reset
// before each step and read after it.
func RunScenario(ctx context.Context, scenario *Scenario, loop *sim.Loop, sched *sim.FrameScheduler, metrics []sim.Metric, logger *log.Logger) ([]StepResult, error) {
	if !loop.Running() {
		return nil, dynamo.ErrNotStarted
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name)

		if step.Resize != nil {
			loop.Resize(step.Resize.Width, step.Resize.Height)
		}
		loop.Configure(step.Set.Apply(loop.Config()))
		if step.PointerLeave {
			loop.PointerLeave()
		}
		for _, m := range metrics {
			m.Reset()
		}

		before := loop.Stats()
		for f := 0; f < step.Frames; f++ {
			if err := ctx.Err(); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			if step.Pointer != nil {
				loop.SetPointer(step.Pointer.At(f, step.Frames))
			}
			if !sched.Fire() {
				return results, fmt.Errorf("step %d: %w", i+1, dynamo.ErrNotStarted)
			}
		}

		values := make(map[string]float64, len(metrics))
		for _, m := range metrics {
			values[m.Name()] = m.Value()
		}
		results = append(results, StepResult{
			Name:    name,
			Frames:  step.Frames,
			Stats:   diffStats(loop.Stats(), before),
			Metrics: values,
		})
	}

	return results, nil
}

func diffStats(a, b sim.Stats) sim.Stats {
	return sim.Stats{
		Frames:   a.Frames - b.Frames,
		Advanced: a.Advanced - b.Advanced,
		Skipped:  a.Skipped - b.Skipped,
		Faulted:  a.Faulted - b.Faulted,
		Panics:   a.Panics - b.Panics,
	}
}

// ParameterSweep runs one headless loop per value of a config parameter.
type ParameterSweep struct {
	Base      config.Config
	ParamName string
	Values    []float64
	Frames    int
}

// SweepResult holds the throughput and metrics of one sweep point.
type SweepResult struct {
	ParamValue float64
	Elapsed    time.Duration
	FPS        float64
	Metrics    map[string]float64
}

// SetParam writes a named numeric parameter into cfg.
func SetParam(cfg config.Config, name string, v float64) (config.Config, error) {
	switch name {
	case "particle_count":
		cfg.ParticleCount = int(v)
	case "particle_size":
		cfg.ParticleSize = int(v)
	case "speed":
		cfg.Speed = v
	case "mouse_influence":
		cfg.MouseInfluence = int(v)
	default:
		return cfg, fmt.Errorf("unknown parameter %q", name)
	}
	return cfg, nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, newMetrics func() []sim.Metric, logger *log.Logger) ([]SweepResult, error) {
	results := make([]SweepResult, 0, len(sweep.Values))

	for i, v := range sweep.Values {
		cfg, err := SetParam(sweep.Base, sweep.ParamName, v)
		if err != nil {
			return nil, err
		}

		var metrics []sim.Metric
		if newMetrics != nil {
			metrics = newMetrics()
		}
		loop := sim.New(cfg, render.Discard{}, sim.WithLogger(logger))
		for _, m := range metrics {
			loop.AddObserver(m)
		}

		sched := &sim.FrameScheduler{}
		if err := loop.Start(sched); err != nil {
			return nil, err
		}
		start := time.Now()
		n, err := sim.RunFrames(ctx, sched, sweep.Frames)
		elapsed := time.Since(start)
		loop.Stop()
		if err != nil {
			return nil, err
		}

		values := make(map[string]float64, len(metrics))
		for _, m := range metrics {
			values[m.Name()] = m.Value()
		}
		fps := 0.0
		if elapsed > 0 {
			fps = float64(n) / elapsed.Seconds()
		}
		results = append(results, SweepResult{
			ParamValue: v,
			Elapsed:    elapsed,
			FPS:        fps,
			Metrics:    values,
		})

		logger.Info("sweep point done", "point", i+1, "of", len(sweep.Values), sweep.ParamName, v, "fps", fps)
	}

	return results, nil
}
