package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/heartswarm/internal/dynamo"
	"github.com/san-kum/heartswarm/internal/integrators"
	"github.com/san-kum/heartswarm/internal/physics"
	"github.com/san-kum/heartswarm/internal/sim"
	"github.com/san-kum/heartswarm/internal/swarm"
)

func testState() *sim.State {
	path := physics.NewPath([]dynamo.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}})
	return &sim.State{
		Path: path,
		Trails: []swarm.Trail{
			{Particles: []swarm.Particle{{Pos: dynamo.Vec2{X: 3, Y: 4}, Vel: dynamo.Vec2{X: 3, Y: 4}, Target: 0}}},
			{Particles: []swarm.Particle{{Pos: dynamo.Vec2{X: 10, Y: 1}, Vel: dynamo.Vec2{X: 1, Y: 0}, Target: 1}}},
			{},
		},
	}
}

func TestTargetDistance(t *testing.T) {
	m := NewTargetDistance()
	if m.Value() != 0 {
		t.Errorf("expected 0 before samples, got %f", m.Value())
	}

	m.OnFrame(sim.Frame{State: testState()})
	if math.Abs(m.Value()-3) > 1e-9 {
		t.Errorf("expected mean distance 3, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestLeaderSpeed(t *testing.T) {
	m := NewLeaderSpeed()
	st := testState()
	m.OnFrame(sim.Frame{State: st})
	m.OnFrame(sim.Frame{State: st})

	if math.Abs(m.Value()-3) > 1e-9 {
		t.Errorf("expected mean speed 3, got %f", m.Value())
	}
}

func TestSkipRate(t *testing.T) {
	m := NewSkipRate()
	m.OnFrame(sim.Frame{Results: []integrators.Result{
		{Status: integrators.Advanced},
		{Status: integrators.Skipped},
		{Status: integrators.Advanced},
		{Status: integrators.Faulted},
	}})

	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
	if m.Name() != "skip_rate" {
		t.Errorf("unexpected name %s", m.Name())
	}
}

func TestSeries(t *testing.T) {
	s := NewSeries()
	st := testState()
	s.OnFrame(sim.Frame{Index: 7, State: st})
	s.OnFrame(sim.Frame{Index: 8, State: &sim.State{}})

	if s.Len() != 1 {
		t.Fatalf("expected 1 sample, got %d", s.Len())
	}
	got := s.Samples()[0]
	if got.Frame != 7 || got.LeaderX != 3 || got.LeaderY != 4 {
		t.Errorf("unexpected sample %+v", got)
	}

	xs := s.Column(func(smp Sample) float64 { return smp.LeaderX })
	if len(xs) != 1 || xs[0] != 3 {
		t.Errorf("unexpected column %v", xs)
	}

	s.Reset()
	if s.Len() != 0 {
		t.Error("expected empty series after reset")
	}
}

var (
	_ sim.Metric   = (*TargetDistance)(nil)
	_ sim.Metric   = (*LeaderSpeed)(nil)
	_ sim.Metric   = (*SkipRate)(nil)
	_ sim.Observer = (*Series)(nil)
)
