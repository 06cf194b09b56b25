package swarm

import (
	"image/color"

	"github.com/san-kum/heartswarm/internal/dynamo"
)

// Particle is one disc of a trail. Radius and Friction are fixed at creation.
// Speed, Friction, Target and Direction only drive the leader.
type Particle struct {
	Pos       dynamo.Vec2
	Vel       dynamo.Vec2
	Radius    float64
	Speed     float64
	Friction  float64
	Target    int
	Direction int
	Color     HSLA
	Fill      color.NRGBA
}

// Trail is an ordered chain of particles; element 0 is the leader.
type Trail struct {
	Particles []Particle
}

// Leader returns the first particle, or nil for an empty trail.
func (t *Trail) Leader() *Particle {
	if len(t.Particles) == 0 {
		return nil
	}
	return &t.Particles[0]
}

func (t *Trail) Len() int { return len(t.Particles) }
