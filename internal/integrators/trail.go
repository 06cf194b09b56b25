package integrators

import (
	"github.com/san-kum/heartswarm/internal/dynamo"
	"github.com/san-kum/heartswarm/internal/physics"
	"github.com/san-kum/heartswarm/internal/swarm"
)

const (
	DefaultCaptureRadius = 10.0
	DefaultJumpChance    = 0.05
	DefaultReverseChance = 0.01
	DefaultFollowFactor  = 0.7
)

// Status is the outcome of one trail update.
type Status int

const (
	Advanced Status = iota
	Skipped
	Faulted
)

func (s Status) String() string {
	switch s {
	case Advanced:
		return "advanced"
	case Skipped:
		return "skipped"
	case Faulted:
		return "faulted"
	}
	return "unknown"
}

// Result reports how a trail update went. Err carries the reason for
// Skipped and Faulted results.
type Result struct {
	Status Status
	Err    error
}

// Env is the per-frame input shared by every trail.
type Env struct {
	GlobalSpeed float64
	Pointer     physics.Pointer
	Influence   float64
}

// TrailStepper advances a trail by one frame with a unit time-step.
type TrailStepper struct {
	Force         physics.ForceModel
	Rand          dynamo.Rand
	CaptureRadius float64
	JumpChance    float64
	ReverseChance float64
	FollowFactor  float64
}

func NewTrailStepper(r dynamo.Rand) *TrailStepper {
	return &TrailStepper{
		Force:         physics.NewForceModel(),
		Rand:          r,
		CaptureRadius: DefaultCaptureRadius,
		JumpChance:    DefaultJumpChance,
		ReverseChance: DefaultReverseChance,
		FollowFactor:  DefaultFollowFactor,
	}
}

// Step moves the leader toward its curve point and drags every follower
// toward its predecessor.
func (s *TrailStepper) Step(t *swarm.Trail, path physics.Path, env Env) Result {
	leader := t.Leader()
	if leader == nil {
		return Result{Status: Skipped, Err: dynamo.ErrEmptyTrail}
	}
	target, ok := path.At(leader.Target)
	if !ok {
		return Result{Status: Skipped, Err: dynamo.ErrMissingTarget}
	}

	prev := *leader
	s.Retarget(leader, target, path)

	leader.Vel = leader.Vel.Add(s.Force.Delta(physics.ForceInput{
		Leader:      leader.Pos,
		Target:      target,
		SpeedFactor: leader.Speed,
		GlobalSpeed: env.GlobalSpeed,
		Pointer:     env.Pointer,
		Influence:   env.Influence,
	}))
	leader.Pos = leader.Pos.Add(leader.Vel)
	leader.Vel = leader.Vel.Scale(leader.Friction)

	if !leader.Pos.IsValid() || !leader.Vel.IsValid() {
		*leader = prev
		return Result{Status: Faulted, Err: dynamo.ErrInvalidState}
	}

	s.Follow(t)
	return Result{Status: Advanced}
}

// Retarget picks the leader's next curve index once it is within the capture
// radius of target: a rare jump to a random index, otherwise one step along
// the loop in the current direction, reversing the direction now and then.
func (s *TrailStepper) Retarget(leader *swarm.Particle, target dynamo.Vec2, path physics.Path) {
	if leader.Pos.Dist(target) >= s.CaptureRadius {
		return
	}

	if s.Rand.Float64() > 1-s.JumpChance {
		leader.Target = dynamo.Intn(s.Rand, path.Len())
		return
	}
	if s.Rand.Float64() > 1-s.ReverseChance {
		leader.Direction = -leader.Direction
	}
	leader.Target = path.Wrap(leader.Target + leader.Direction)
}

// Follow pulls each follower FollowFactor of the way toward its predecessor.
func (s *TrailStepper) Follow(t *swarm.Trail) {
	ps := t.Particles
	for k := 1; k < len(ps); k++ {
		d := ps[k].Pos.Sub(ps[k-1].Pos)
		ps[k].Pos = ps[k].Pos.Sub(d.Scale(s.FollowFactor))
	}
}
