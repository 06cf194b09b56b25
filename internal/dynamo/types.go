package dynamo

import (
	"math"
	"math/rand"
	"time"
)

// Vec2 is a point or displacement in canvas space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return o.Sub(v).Len()
}

// Normalize returns the unit vector along v. ok is false for the zero vector,
// in which case the zero vector is returned.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// IsValid reports whether both components are finite.
func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rand is the uniform random source used by the factory and integrator.
// Float64 returns values in [0, 1).
type Rand interface {
	Float64() float64
}

// NewRand returns the production source. A zero seed means unseeded.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Intn draws an index in [0, n) from r. n <= 0 yields 0.
func Intn(r Rand, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Sign draws +1 or -1 with equal probability.
func Sign(r Rand) int {
	if r.Float64() < 0.5 {
		return -1
	}
	return 1
}

// FixedRand always returns the same value.
type FixedRand float64

func (f FixedRand) Float64() float64 { return float64(f) }

// SeqRand returns its values in order, then repeats the last one.
type SeqRand []float64

func (s *SeqRand) Float64() float64 {
	if len(*s) == 0 {
		return 0
	}
	v := (*s)[0]
	if len(*s) > 1 {
		*s = (*s)[1:]
	}
	return v
}
