package physics

import (
	"math"

	"github.com/san-kum/heartswarm/internal/dynamo"
)

// MinCurvePoints is the floor applied to every requested curve size.
const MinCurvePoints = 32

// Fixed shape coefficients of the heart curve.
const (
	heartWidth = 180.0
	heartScale = 10.0
)

// Path is an immutable closed loop of curve points.
type Path struct {
	points []dynamo.Vec2
}

// NewPath copies pts into a Path.
func NewPath(pts []dynamo.Vec2) Path {
	c := make([]dynamo.Vec2, len(pts))
	copy(c, pts)
	return Path{points: c}
}

func (p Path) Len() int { return len(p.points) }

// Wrap maps any index, negative included, into [0, Len). An empty path wraps to 0.
func (p Path) Wrap(i int) int {
	n := len(p.points)
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// At returns the point at index i modulo Len. ok is false on an empty path.
func (p Path) At(i int) (dynamo.Vec2, bool) {
	if len(p.points) == 0 {
		return dynamo.Vec2{}, false
	}
	return p.points[p.Wrap(i)], true
}

// Points returns a copy of the curve points in order.
func (p Path) Points() []dynamo.Vec2 {
	c := make([]dynamo.Vec2, len(p.points))
	copy(c, p.points)
	return c
}

// CurvePoints returns the curve size used for a swarm of particleCount trails.
func CurvePoints(particleCount int) int {
	if particleCount < MinCurvePoints {
		return MinCurvePoints
	}
	return particleCount
}

// HeartCurve samples n points of the heart curve centered at center.
// n below MinCurvePoints is raised to MinCurvePoints.
func HeartCurve(n int, center dynamo.Vec2) Path {
	if n < MinCurvePoints {
		n = MinCurvePoints
	}

	pts := make([]dynamo.Vec2, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n) * 2 * math.Pi
		s := math.Sin(t)
		pts[i] = dynamo.Vec2{
			X: center.X + heartWidth*s*s*s,
			Y: center.Y + heartScale*-(15*math.Cos(t)-5*math.Cos(2*t)-2*math.Cos(3*t)-math.Cos(4*t)),
		}
	}
	return Path{points: pts}
}
