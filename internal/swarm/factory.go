package swarm

import "github.com/san-kum/heartswarm/internal/dynamo"

// Spec describes one trail-set generation.
type Spec struct {
	Count   int
	Size    float64
	Width   float64
	Height  float64
	PathLen int
	Scheme  Scheme
}

// Factory builds trail sets from a random source.
type Factory struct {
	Rand dynamo.Rand
}

func NewFactory(r dynamo.Rand) *Factory {
	return &Factory{Rand: r}
}

// Build returns spec.Count trails of spec.Count particles each. All particles
// of a trail start at the same random point of the canvas.
func (f *Factory) Build(spec Spec) []Trail {
	if spec.Count <= 0 {
		return nil
	}

	trails := make([]Trail, spec.Count)
	for i := range trails {
		start := dynamo.Vec2{
			X: f.Rand.Float64() * spec.Width,
			Y: f.Rand.Float64() * spec.Height,
		}

		particles := make([]Particle, spec.Count)
		for k := range particles {
			c := f.color(spec.Scheme, i, spec.Count)
			particles[k] = Particle{
				Pos:       start,
				Radius:    Radius(k, spec.Count, spec.Size),
				Speed:     f.Rand.Float64() + 1,
				Friction:  f.Rand.Float64()*0.2 + 0.7,
				Target:    dynamo.Intn(f.Rand, spec.PathLen),
				Direction: dynamo.Sign(f.Rand),
				Color:     c,
				Fill:      c.NRGBA(),
			}
		}
		trails[i] = Trail{Particles: particles}
	}
	return trails
}

// Radius is the disc radius of particle k in a trail of count particles. It
// falls linearly from size at the leader toward size/2 at the tail.
func Radius(k, count int, size float64) float64 {
	return ((1 - float64(k)/float64(count)) + 1) * (size / 2)
}

func (f *Factory) color(s Scheme, trail, count int) HSLA {
	c := HSLA{
		S: f.Rand.Float64()*40 + 60,
		L: f.Rand.Float64()*60 + 20,
		A: ParticleAlpha,
	}

	switch s {
	case Red:
		c.H = f.Rand.Float64()*20 + 350
	case Blue:
		c.H = f.Rand.Float64()*20 + 200
	case Green:
		c.H = f.Rand.Float64()*20 + 100
	case Monochrome:
		c.H, c.S = 0, 0
	default:
		c.H = float64(trail) / float64(count) * 360
	}
	return c
}
