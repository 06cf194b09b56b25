package metrics

import (
	"github.com/san-kum/heartswarm/internal/integrators"
	"github.com/san-kum/heartswarm/internal/sim"
)

// TargetDistance is the mean distance between each leader and its current
// target, averaged over every observed frame.
type TargetDistance struct {
	name    string
	samples int
	total   float64
}

func NewTargetDistance() *TargetDistance {
	return &TargetDistance{name: "target_distance"}
}

func (m *TargetDistance) Name() string { return m.name }

func (m *TargetDistance) OnFrame(f sim.Frame) {
	d, ok := meanTargetDistance(f.State)
	if !ok {
		return
	}
	m.total += d
	m.samples++
}

func (m *TargetDistance) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *TargetDistance) Reset() {
	m.total = 0
	m.samples = 0
}

// LeaderSpeed is the mean leader velocity magnitude.
type LeaderSpeed struct {
	name    string
	samples int
	total   float64
}

func NewLeaderSpeed() *LeaderSpeed {
	return &LeaderSpeed{name: "leader_speed"}
}

func (m *LeaderSpeed) Name() string { return m.name }

func (m *LeaderSpeed) OnFrame(f sim.Frame) {
	s, ok := meanLeaderSpeed(f.State)
	if !ok {
		return
	}
	m.total += s
	m.samples++
}

func (m *LeaderSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *LeaderSpeed) Reset() {
	m.total = 0
	m.samples = 0
}

// SkipRate is the fraction of trail steps that did not advance.
type SkipRate struct {
	name    string
	steps   int
	skipped int
}

func NewSkipRate() *SkipRate {
	return &SkipRate{name: "skip_rate"}
}

func (m *SkipRate) Name() string { return m.name }

func (m *SkipRate) OnFrame(f sim.Frame) {
	for _, r := range f.Results {
		m.steps++
		if r.Status != integrators.Advanced {
			m.skipped++
		}
	}
}

func (m *SkipRate) Value() float64 {
	if m.steps == 0 {
		return 0
	}
	return float64(m.skipped) / float64(m.steps)
}

func (m *SkipRate) Reset() {
	m.steps = 0
	m.skipped = 0
}

func meanTargetDistance(st *sim.State) (float64, bool) {
	var total float64
	n := 0
	for i := range st.Trails {
		leader := st.Trails[i].Leader()
		if leader == nil {
			continue
		}
		target, ok := st.Path.At(leader.Target)
		if !ok {
			continue
		}
		total += leader.Pos.Dist(target)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

func meanLeaderSpeed(st *sim.State) (float64, bool) {
	var total float64
	n := 0
	for i := range st.Trails {
		leader := st.Trails[i].Leader()
		if leader == nil {
			continue
		}
		total += leader.Vel.Len()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}
