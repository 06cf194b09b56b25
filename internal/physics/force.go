package physics

import "github.com/san-kum/heartswarm/internal/dynamo"

const (
	DefaultPointerRange     = 300.0
	DefaultInfluenceDivisor = 20.0
)

// Pointer is the live pointer state fed by the host.
type Pointer struct {
	Pos    dynamo.Vec2
	Active bool
}

// ForceInput collects everything the force model reads for one leader.
type ForceInput struct {
	Leader      dynamo.Vec2
	Target      dynamo.Vec2
	SpeedFactor float64
	GlobalSpeed float64
	Pointer     Pointer
	Influence   float64
}

// ForceModel blends steering toward a curve point with pointer attraction.
type ForceModel struct {
	PointerRange     float64
	InfluenceDivisor float64
}

func NewForceModel() ForceModel {
	return ForceModel{
		PointerRange:     DefaultPointerRange,
		InfluenceDivisor: DefaultInfluenceDivisor,
	}
}

// Steer returns the velocity increment toward target. A leader sitting
// exactly on its target gets no increment.
func (f ForceModel) Steer(leader, target dynamo.Vec2, speedFactor, globalSpeed float64) dynamo.Vec2 {
	dir, ok := target.Sub(leader).Normalize()
	if !ok {
		return dynamo.Vec2{}
	}
	return dir.Scale(speedFactor * globalSpeed)
}

// Attract returns the pointer pull on a leader. It is zero when the pointer is
// inactive, influence is not positive, the pointer is out of range, or the
// pointer coincides with the leader.
func (f ForceModel) Attract(leader dynamo.Vec2, p Pointer, influence float64) dynamo.Vec2 {
	if !p.Active || influence <= 0 {
		return dynamo.Vec2{}
	}

	d := p.Pos.Sub(leader)
	dist := d.Len()
	if dist >= f.PointerRange {
		return dynamo.Vec2{}
	}
	dir, ok := d.Normalize()
	if !ok {
		return dynamo.Vec2{}
	}

	force := (1 - dist/f.PointerRange) * (influence / f.InfluenceDivisor)
	return dir.Scale(force)
}

// Delta is the total velocity increment for one frame. No cap is applied;
// friction alone bounds the velocity.
func (f ForceModel) Delta(in ForceInput) dynamo.Vec2 {
	steer := f.Steer(in.Leader, in.Target, in.SpeedFactor, in.GlobalSpeed)
	return steer.Add(f.Attract(in.Leader, in.Pointer, in.Influence))
}
