package render

import (
	"image/color"
	"math"

	"github.com/san-kum/heartswarm/internal/physics"
	"github.com/san-kum/heartswarm/internal/swarm"
)

const (
	DefaultFadeAlpha     = 0.2
	DefaultOutlineRadius = 1.5
)

// Surface is the display target of a Renderer. Colors are non-premultiplied
// and composited with source-over.
type Surface interface {
	Fade(c color.NRGBA)
	FillCircle(x, y, r float64, c color.NRGBA)
}

type Renderer struct {
	Surface       Surface
	Background    color.NRGBA
	FadeAlpha     float64
	Outline       color.NRGBA
	OutlineRadius float64
}

func NewRenderer(s Surface) *Renderer {
	return &Renderer{
		Surface:       s,
		Background:    color.NRGBA{0, 0, 0, 255},
		FadeAlpha:     DefaultFadeAlpha,
		Outline:       color.NRGBA{255, 255, 255, 40},
		OutlineRadius: DefaultOutlineRadius,
	}
}

// FadeFrame composites the background at FadeAlpha over the previous frame.
func (r *Renderer) FadeFrame() {
	c := r.Background
	c.A = uint8(math.Round(math.Max(0, math.Min(1, r.FadeAlpha)) * 255))
	r.Surface.Fade(c)
}

// DrawTrail paints one disc per particle, leader first.
func (r *Renderer) DrawTrail(t *swarm.Trail) {
	for i := range t.Particles {
		p := &t.Particles[i]
		r.Surface.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, p.Fill)
	}
}

// DrawOutline marks every curve point with a faint dot.
func (r *Renderer) DrawOutline(path physics.Path) {
	for _, p := range path.Points() {
		r.Surface.FillCircle(p.X, p.Y, r.OutlineRadius, r.Outline)
	}
}

// Discard is a Surface that paints nothing, for headless runs.
type Discard struct{}

func (Discard) Fade(color.NRGBA) {}

func (Discard) FillCircle(_, _, _ float64, _ color.NRGBA) {}
