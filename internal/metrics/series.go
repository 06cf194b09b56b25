package metrics

import "github.com/san-kum/heartswarm/internal/sim"

// Sample is one recorded frame of the first trail's leader plus swarm means.
type Sample struct {
	Frame          uint64
	LeaderX        float64
	LeaderY        float64
	TargetDistance float64
	LeaderSpeed    float64
}

// Series records a Sample per frame. It is the input of run storage and
// spectrum analysis.
type Series struct {
	samples []Sample
}

func NewSeries() *Series { return &Series{} }

func (s *Series) OnFrame(f sim.Frame) {
	if len(f.State.Trails) == 0 {
		return
	}
	leader := f.State.Trails[0].Leader()
	if leader == nil {
		return
	}
	d, _ := meanTargetDistance(f.State)
	v, _ := meanLeaderSpeed(f.State)
	s.samples = append(s.samples, Sample{
		Frame:          f.Index,
		LeaderX:        leader.Pos.X,
		LeaderY:        leader.Pos.Y,
		TargetDistance: d,
		LeaderSpeed:    v,
	})
}

func (s *Series) Samples() []Sample { return s.samples }

func (s *Series) Len() int { return len(s.samples) }

func (s *Series) Reset() { s.samples = s.samples[:0] }

// Column extracts one field of every sample.
func (s *Series) Column(get func(Sample) float64) []float64 {
	out := make([]float64, len(s.samples))
	for i, smp := range s.samples {
		out[i] = get(smp)
	}
	return out
}
