package experiment

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/render"
	"github.com/san-kum/heartswarm/internal/sim"
)

// Experiment is one headless run of a fixed number of frames.
type Experiment struct {
	cfg       config.Config
	frames    int
	surface   render.Surface
	metrics   []sim.Metric
	observers []sim.Observer
	logger    *log.Logger
	loop      *sim.Loop
}

// Result is what a finished run reports. Frames is lower than requested when
// the context was cancelled.
type Result struct {
	Frames  int
	Stats   sim.Stats
	Metrics map[string]float64
	State   *sim.State
}

func New(cfg config.Config, frames int) *Experiment {
	return &Experiment{cfg: cfg, frames: frames, surface: render.Discard{}}
}

// Setup attaches the paint target and observers. A nil surface discards
// drawing.
func (e *Experiment) Setup(surface render.Surface, metrics []sim.Metric, observers ...sim.Observer) {
	if surface != nil {
		e.surface = surface
	}
	e.metrics = metrics
	e.observers = observers
}

func (e *Experiment) SetLogger(l *log.Logger) { e.logger = l }

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.frames <= 0 {
		return nil, fmt.Errorf("experiment: frames must be positive, got %d", e.frames)
	}

	opts := []sim.Option{sim.WithLogger(e.logger)}
	for _, m := range e.metrics {
		opts = append(opts, sim.WithObserver(m))
	}
	for _, o := range e.observers {
		opts = append(opts, sim.WithObserver(o))
	}
	e.loop = sim.New(e.cfg, e.surface, opts...)

	sched := &sim.FrameScheduler{}
	if err := e.loop.Start(sched); err != nil {
		return nil, err
	}
	n, err := sim.RunFrames(ctx, sched, e.frames)
	e.loop.Stop()

	values := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		values[m.Name()] = m.Value()
	}
	return &Result{
		Frames:  n,
		Stats:   e.loop.Stats(),
		Metrics: values,
		State:   e.loop.State(),
	}, err
}

// Loop returns the loop of the last Run, or nil.
func (e *Experiment) Loop() *sim.Loop {
	return e.loop
}
