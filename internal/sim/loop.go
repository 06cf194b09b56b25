package sim

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/dynamo"
	"github.com/san-kum/heartswarm/internal/integrators"
	"github.com/san-kum/heartswarm/internal/physics"
	"github.com/san-kum/heartswarm/internal/render"
	"github.com/san-kum/heartswarm/internal/swarm"
)

// Loop drives one simulation: a trail update and a render per frame.
type Loop struct {
	state     *State
	stepper   *integrators.TrailStepper
	factory   *swarm.Factory
	renderer  *render.Renderer
	logger    *log.Logger
	sched     Scheduler
	observers []Observer
	running   bool
	frame     uint64
	stats     Stats
}

type Option func(*Loop)

func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) {
		if l != nil {
			lp.logger = l
		}
	}
}

// WithRand replaces the random source of both the factory and the stepper.
func WithRand(r dynamo.Rand) Option {
	return func(lp *Loop) {
		lp.factory.Rand = r
		lp.stepper.Rand = r
	}
}

func WithObserver(o Observer) Option {
	return func(lp *Loop) { lp.observers = append(lp.observers, o) }
}

// New builds a stopped loop painting onto surface. Nothing is generated until
// Start.
func New(cfg config.Config, surface render.Surface, opts ...Option) *Loop {
	cfg = cfg.Normalize()
	rng := dynamo.NewRand(cfg.Seed)

	renderer := render.NewRenderer(surface)
	l := &Loop{
		state: &State{
			Width:  float64(cfg.Width),
			Height: float64(cfg.Height),
			Config: cfg,
		},
		stepper:  integrators.NewTrailStepper(rng),
		factory:  swarm.NewFactory(rng),
		renderer: renderer,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) State() *State              { return l.state }
func (l *Loop) Config() config.Config      { return l.state.Config }
func (l *Loop) Running() bool              { return l.running }
func (l *Loop) Frame() uint64              { return l.frame }
func (l *Loop) Stats() Stats               { return l.stats }
func (l *Loop) Renderer() *render.Renderer { return l.renderer }

// Start generates the curve and trails and schedules the first tick.
// Calling Start on a running loop does nothing.
func (l *Loop) Start(sched Scheduler) error {
	if l.running {
		return nil
	}
	if err := l.state.Config.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	l.sched = sched
	l.regenerateCurve()
	l.regenerateTrails()
	l.running = true
	l.logger.Info("simulation started",
		"trails", len(l.state.Trails),
		"curve", l.state.Path.Len(),
		"width", l.state.Width,
		"height", l.state.Height,
	)
	sched.RequestFrame(l.tick)
	return nil
}

// Stop makes the next tick exit without rescheduling.
func (l *Loop) Stop() {
	if l.running {
		l.logger.Info("simulation stopping", "frame", l.frame)
	}
	l.running = false
}

func (l *Loop) tick() {
	if !l.running {
		return
	}
	l.step()
	l.sched.RequestFrame(l.tick)
}

// step runs one frame. A panic outside the trail updates is logged and
// counted; the caller still schedules the next frame.
func (l *Loop) step() {
	defer func() {
		if r := recover(); r != nil {
			l.stats.Panics++
			l.logger.Error("frame recovered", "frame", l.frame-1, "panic", r)
		}
	}()

	idx := l.frame
	l.frame++

	st := l.state
	l.renderer.FadeFrame()
	if st.Config.ShowHeartOutline {
		l.renderer.DrawOutline(st.Path)
	}

	env := integrators.Env{
		GlobalSpeed: st.Config.Speed,
		Pointer:     st.Pointer,
		Influence:   float64(st.Config.MouseInfluence),
	}

	results := make([]integrators.Result, 0, len(st.Trails))
	for i := range st.Trails {
		results = append(results, l.stepTrail(idx, i, env))
	}

	l.stats.Frames++
	f := Frame{Index: idx, State: st, Results: results}
	for _, o := range l.observers {
		o.OnFrame(f)
	}
}

// stepTrail updates and draws trail i. A panic is contained to that trail:
// it is counted in Panics and reported as Faulted, and the remaining trails
// still run.
func (l *Loop) stepTrail(frame uint64, i int, env integrators.Env) (res integrators.Result) {
	defer func() {
		if r := recover(); r != nil {
			l.stats.Panics++
			l.logger.Error("trail recovered", "frame", frame, "trail", i, "panic", r)
			res = integrators.Result{Status: integrators.Faulted, Err: fmt.Errorf("recovered: %v", r)}
		}
	}()

	t := &l.state.Trails[i]
	res = l.stepper.Step(t, l.state.Path, env)
	switch res.Status {
	case integrators.Advanced:
		l.stats.Advanced++
		l.renderer.DrawTrail(t)
	case integrators.Skipped:
		l.stats.Skipped++
		l.logger.Debug("trail skipped", "err", &dynamo.SimError{Frame: frame, Trail: i, Wrapped: res.Err})
	case integrators.Faulted:
		l.stats.Faulted++
		l.logger.Warn("trail faulted", "err", &dynamo.SimError{Frame: frame, Trail: i, Wrapped: res.Err})
		l.renderer.DrawTrail(t)
	}
	return res
}

// SetPointer records a pointer movement.
func (l *Loop) SetPointer(x, y float64) {
	l.state.Pointer = physics.Pointer{Pos: dynamo.Vec2{X: x, Y: y}, Active: true}
}

// PointerLeave deactivates pointer attraction.
func (l *Loop) PointerLeave() {
	l.state.Pointer.Active = false
}

// Resize regenerates the curve and trails for a new canvas size. Non-positive
// sizes are ignored.
func (l *Loop) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		l.logger.Warn("ignoring resize", "width", w, "height", h)
		return
	}
	if w == l.state.Width && h == l.state.Height && l.state.Path.Len() > 0 {
		return
	}
	l.state.Width, l.state.Height = w, h
	l.regenerateCurve()
	l.regenerateTrails()
	l.logger.Info("canvas resized", "width", w, "height", h)
}

// Configure applies a new configuration. A particle count change regenerates
// the curve and the trails, a size or color scheme change only the trails.
func (l *Loop) Configure(cfg config.Config) {
	cfg = cfg.Normalize()
	old := l.state.Config
	l.state.Config = cfg

	countChanged := cfg.ParticleCount != old.ParticleCount
	trailsChanged := countChanged ||
		cfg.ParticleSize != old.ParticleSize ||
		swarm.ParseScheme(cfg.ColorScheme) != swarm.ParseScheme(old.ColorScheme)

	if l.state.Path.Len() == 0 {
		return
	}
	if countChanged {
		l.regenerateCurve()
	}
	if trailsChanged {
		l.regenerateTrails()
		l.logger.Info("trails regenerated",
			"particles", cfg.ParticleCount,
			"size", cfg.ParticleSize,
			"scheme", swarm.ParseScheme(cfg.ColorScheme),
		)
	}
}

func (l *Loop) regenerateCurve() {
	n := physics.CurvePoints(l.state.Config.ParticleCount)
	l.state.Path = physics.HeartCurve(n, l.state.Center())
}

func (l *Loop) regenerateTrails() {
	cfg := l.state.Config
	l.state.Trails = l.factory.Build(swarm.Spec{
		Count:   cfg.ParticleCount,
		Size:    float64(cfg.ParticleSize),
		Width:   l.state.Width,
		Height:  l.state.Height,
		PathLen: l.state.Path.Len(),
		Scheme:  swarm.ParseScheme(cfg.ColorScheme),
	})
}
