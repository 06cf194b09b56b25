package sim_test

import (
	"context"
	"errors"
	"image/color"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/dynamo"
	"github.com/san-kum/heartswarm/internal/integrators"
	"github.com/san-kum/heartswarm/internal/sim"
)

type countingSurface struct {
	fades   int
	circles int
}

func (s *countingSurface) Fade(color.NRGBA) { s.fades++ }

func (s *countingSurface) FillCircle(_, _, _ float64, _ color.NRGBA) { s.circles++ }

type frameLog struct {
	frames []sim.Frame
}

func (l *frameLog) OnFrame(f sim.Frame) { l.frames = append(l.frames, f) }

type panicky struct{ at uint64 }

func (p panicky) OnFrame(f sim.Frame) {
	if f.Index == p.at {
		panic("observer blew up")
	}
}

// brittleSurface panics on its first circle, which lands in trail 0's draw.
type brittleSurface struct {
	countingSurface
	tripped bool
}

func (s *brittleSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	if !s.tripped {
		s.tripped = true
		panic("surface blew up")
	}
	s.countingSurface.FillCircle(x, y, r, c)
}

func testConfig() config.Config {
	cfg := *config.DefaultConfig()
	cfg.Width = 800
	cfg.Height = 600
	cfg.Seed = 42
	return cfg
}

var _ = Describe("Loop", func() {
	var (
		surface *countingSurface
		sched   *sim.FrameScheduler
		loop    *sim.Loop
	)

	BeforeEach(func() {
		surface = &countingSurface{}
		sched = &sim.FrameScheduler{}
		loop = sim.New(testConfig(), surface)
	})

	Describe("Start", func() {
		It("generates the curve and trails and requests a frame", func() {
			Expect(loop.Running()).To(BeFalse())
			Expect(loop.Start(sched)).To(Succeed())

			st := loop.State()
			Expect(loop.Running()).To(BeTrue())
			Expect(sched.Pending()).To(BeTrue())
			Expect(st.Path.Len()).To(Equal(32))
			Expect(st.Trails).To(HaveLen(32))
			for _, t := range st.Trails {
				Expect(t.Particles).To(HaveLen(32))
			}
		})

		It("is a no-op on a running loop", func() {
			Expect(loop.Start(sched)).To(Succeed())
			first := loop.State().Trails[0].Particles[0]

			other := &sim.FrameScheduler{}
			Expect(loop.Start(other)).To(Succeed())
			Expect(other.Pending()).To(BeFalse())
			Expect(loop.State().Trails[0].Particles[0]).To(Equal(first))
		})

		It("rejects an invalid canvas", func() {
			cfg := testConfig()
			cfg.Width = 0
			err := sim.New(cfg, surface).Start(sched)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
			Expect(sched.Pending()).To(BeFalse())
		})

		It("clamps the particle count", func() {
			cfg := testConfig()
			cfg.ParticleCount = 500
			l := sim.New(cfg, surface)
			Expect(l.Start(sched)).To(Succeed())
			Expect(l.State().Trails).To(HaveLen(100))
			Expect(l.State().Path.Len()).To(Equal(100))
		})
	})

	Describe("running frames", func() {
		It("keeps every particle finite, every radius fixed and every target on the curve for 100 frames", func() {
			log := &frameLog{}
			loop.AddObserver(log)
			Expect(loop.Start(sched)).To(Succeed())

			radii := make([][]float64, len(loop.State().Trails))
			for i, t := range loop.State().Trails {
				for _, p := range t.Particles {
					radii[i] = append(radii[i], p.Radius)
				}
			}

			n, err := sim.RunFrames(context.Background(), sched, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(100))

			st := loop.State()
			Expect(st.Trails).To(HaveLen(len(radii)))
			for i, t := range st.Trails {
				leader := t.Leader()
				Expect(leader.Target).To(BeNumerically(">=", 0))
				Expect(leader.Target).To(BeNumerically("<", st.Path.Len()))
				for k, p := range t.Particles {
					Expect(p.Radius).To(Equal(radii[i][k]))
					Expect(math.IsNaN(p.Pos.X) || math.IsInf(p.Pos.X, 0)).To(BeFalse())
					Expect(math.IsNaN(p.Pos.Y) || math.IsInf(p.Pos.Y, 0)).To(BeFalse())
				}
			}

			Expect(loop.Stats().Frames).To(Equal(uint64(100)))
			Expect(loop.Stats().Advanced).To(Equal(uint64(100 * 32)))
			Expect(surface.fades).To(Equal(100))
			Expect(surface.circles).To(Equal(100 * 32 * 32))
			Expect(log.frames).To(HaveLen(100))
			Expect(log.frames[99].Index).To(Equal(uint64(99)))
			Expect(log.frames[0].Results).To(HaveLen(32))
		})

		It("draws the outline when enabled", func() {
			cfg := testConfig()
			cfg.ShowHeartOutline = true
			l := sim.New(cfg, surface)
			Expect(l.Start(sched)).To(Succeed())
			Expect(sched.Fire()).To(BeTrue())
			Expect(surface.circles).To(Equal(32 + 32*32))
		})

		It("skips empty trails without drawing them", func() {
			Expect(loop.Start(sched)).To(Succeed())
			loop.State().Trails[3].Particles = nil

			Expect(sched.Fire()).To(BeTrue())
			Expect(loop.Stats().Skipped).To(Equal(uint64(1)))
			Expect(surface.circles).To(Equal(31 * 32))
			Expect(sched.Pending()).To(BeTrue())
		})

		It("reports faulted trails and keeps scheduling", func() {
			log := &frameLog{}
			loop.AddObserver(log)
			Expect(loop.Start(sched)).To(Succeed())
			loop.State().Trails[0].Particles[0].Pos = dynamo.Vec2{X: math.NaN(), Y: 0}

			_, err := sim.RunFrames(context.Background(), sched, 3)
			Expect(err).NotTo(HaveOccurred())
			Expect(loop.Stats().Faulted).To(Equal(uint64(3)))
			Expect(log.frames[0].Results[0].Status).To(Equal(integrators.Faulted))
			Expect(log.frames[0].Results[1].Status).To(Equal(integrators.Advanced))
			Expect(sched.Pending()).To(BeTrue())
		})

		It("recovers a panic and schedules the next frame", func() {
			loop.AddObserver(panicky{at: 1})
			Expect(loop.Start(sched)).To(Succeed())

			n, err := sim.RunFrames(context.Background(), sched, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(5))
			Expect(loop.Stats().Panics).To(Equal(uint64(1)))
			Expect(sched.Pending()).To(BeTrue())
		})

		It("contains a panic to the trail that raised it", func() {
			brittle := &brittleSurface{}
			log := &frameLog{}
			l := sim.New(testConfig(), brittle, sim.WithObserver(log))
			Expect(l.Start(sched)).To(Succeed())
			Expect(sched.Fire()).To(BeTrue())

			Expect(l.Stats().Panics).To(Equal(uint64(1)))
			Expect(l.Stats().Advanced).To(Equal(uint64(32)))
			Expect(brittle.circles).To(Equal(31 * 32))
			Expect(sched.Pending()).To(BeTrue())

			Expect(log.frames).To(HaveLen(1))
			results := log.frames[0].Results
			Expect(results).To(HaveLen(32))
			Expect(results[0].Status).To(Equal(integrators.Faulted))
			Expect(results[0].Err).To(HaveOccurred())
			for _, r := range results[1:] {
				Expect(r.Status).To(Equal(integrators.Advanced))
			}
		})

		It("stops at context cancellation", func() {
			Expect(loop.Start(sched)).To(Succeed())
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			n, err := sim.RunFrames(ctx, sched, 10)
			Expect(err).To(MatchError(context.Canceled))
			Expect(n).To(Equal(0))
		})
	})

	Describe("Stop", func() {
		It("lets the pending tick exit without rescheduling", func() {
			Expect(loop.Start(sched)).To(Succeed())
			Expect(sched.Fire()).To(BeTrue())

			loop.Stop()
			Expect(loop.Running()).To(BeFalse())
			Expect(sched.Fire()).To(BeTrue())
			Expect(sched.Pending()).To(BeFalse())
			Expect(loop.Stats().Frames).To(Equal(uint64(1)))

			loop.Stop()
			Expect(loop.Running()).To(BeFalse())
		})

		It("can be restarted", func() {
			Expect(loop.Start(sched)).To(Succeed())
			loop.Stop()
			sched.Fire()

			Expect(loop.Start(sched)).To(Succeed())
			Expect(sched.Pending()).To(BeTrue())
		})
	})

	Describe("Configure", func() {
		BeforeEach(func() {
			Expect(loop.Start(sched)).To(Succeed())
		})

		It("regenerates curve and trails on a count change", func() {
			cfg := loop.Config()
			cfg.ParticleCount = 64
			loop.Configure(cfg)

			st := loop.State()
			Expect(st.Path.Len()).To(Equal(64))
			Expect(st.Trails).To(HaveLen(64))
			Expect(st.Trails[0].Particles).To(HaveLen(64))
		})

		It("clamps counts below the minimum", func() {
			cfg := loop.Config()
			cfg.ParticleCount = 2
			loop.Configure(cfg)

			Expect(loop.Config().ParticleCount).To(Equal(10))
			Expect(loop.State().Trails).To(HaveLen(10))
			Expect(loop.State().Path.Len()).To(Equal(32))
		})

		It("regenerates only the trails on a size change", func() {
			path := loop.State().Path.Points()
			before := loop.State().Trails[0].Particles[0]

			cfg := loop.Config()
			cfg.ParticleSize = 20
			loop.Configure(cfg)

			Expect(loop.State().Path.Points()).To(Equal(path))
			after := loop.State().Trails[0].Particles[0]
			Expect(after.Radius).To(Equal(20.0))
			Expect(after.Pos).NotTo(Equal(before.Pos))
		})

		It("regenerates the trails on a scheme change", func() {
			cfg := loop.Config()
			cfg.ColorScheme = "monochrome"
			loop.Configure(cfg)

			for _, t := range loop.State().Trails {
				Expect(t.Particles[0].Color.S).To(Equal(0.0))
			}
		})

		It("applies speed and influence live", func() {
			_, err := sim.RunFrames(context.Background(), sched, 5)
			Expect(err).NotTo(HaveOccurred())
			before := loop.State().Trails[0].Particles[0]

			cfg := loop.Config()
			cfg.Speed = 3
			cfg.MouseInfluence = 0
			cfg.ShowHeartOutline = true
			loop.Configure(cfg)

			Expect(loop.State().Trails[0].Particles[0]).To(Equal(before))
			Expect(loop.Config().Speed).To(Equal(3.0))
		})

		It("is idempotent for an unchanged configuration", func() {
			before := loop.State().Trails[0].Particles[0]
			loop.Configure(loop.Config())
			loop.Configure(loop.Config())
			Expect(loop.State().Trails[0].Particles[0]).To(Equal(before))
		})
	})

	Describe("Resize", func() {
		BeforeEach(func() {
			Expect(loop.Start(sched)).To(Succeed())
		})

		It("moves the curve to the new center", func() {
			loop.Resize(400, 300)
			st := loop.State()
			Expect(st.Width).To(Equal(400.0))
			Expect(st.Center()).To(Equal(dynamo.Vec2{X: 200, Y: 150}))

			var sx, sy float64
			for _, p := range st.Path.Points() {
				sx += p.X
				sy += p.Y
				Expect(p.X).To(BeNumerically(">", 0))
				Expect(p.X).To(BeNumerically("<", 400))
			}
			Expect(sx / float64(st.Path.Len())).To(BeNumerically("~", 200, 1e-6))
		})

		It("ignores non-positive sizes", func() {
			loop.Resize(0, 300)
			loop.Resize(400, -1)
			Expect(loop.State().Width).To(Equal(800.0))
			Expect(loop.State().Height).To(Equal(600.0))
		})
	})

	Describe("pointer", func() {
		It("activates on move and deactivates on leave", func() {
			Expect(loop.Start(sched)).To(Succeed())
			loop.SetPointer(10, 20)
			Expect(loop.State().Pointer.Active).To(BeTrue())
			Expect(loop.State().Pointer.Pos).To(Equal(dynamo.Vec2{X: 10, Y: 20}))

			loop.PointerLeave()
			Expect(loop.State().Pointer.Active).To(BeFalse())
		})
	})
})

var _ = Describe("FrameScheduler", func() {
	It("holds at most one callback", func() {
		s := &sim.FrameScheduler{}
		calls := 0
		s.RequestFrame(func() { calls += 1 })
		s.RequestFrame(func() { calls += 10 })

		Expect(s.Fire()).To(BeTrue())
		Expect(calls).To(Equal(10))
		Expect(s.Fire()).To(BeFalse())
	})

	It("stops a headless run when nothing is pending", func() {
		n, err := sim.RunFrames(context.Background(), &sim.FrameScheduler{}, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(0))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs independent seeded loops", func() {
		cfg := testConfig()
		cfg.ParticleCount = 10
		e := sim.NewEnsemble(cfg, 4, 100, func() []sim.Metric { return nil })

		results, err := e.Run(context.Background(), 20)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for i, r := range results {
			Expect(r.Seed).To(Equal(int64(100 + i)))
			Expect(r.Frames).To(Equal(20))
			Expect(r.Stats.Advanced).To(Equal(uint64(20 * 10)))
		}
	})

	It("seeds every run of an unseeded ensemble from one clock base", func() {
		cfg := testConfig()
		cfg.ParticleCount = 10
		results, err := sim.NewEnsemble(cfg, 3, 0, nil).Run(context.Background(), 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))

		base := results[0].Seed
		Expect(base).NotTo(BeZero())
		for i, r := range results {
			Expect(r.Seed).To(Equal(base + int64(i)))
		}
	})

	It("fails when the configuration is invalid", func() {
		cfg := testConfig()
		cfg.FPS = 0
		_, err := sim.NewEnsemble(cfg, 2, 1, nil).Run(context.Background(), 5)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})
})
