package physics

import (
	"math"
	"testing"

	"github.com/san-kum/heartswarm/internal/dynamo"
)

func TestForceModel_SteerDirection(t *testing.T) {
	f := NewForceModel()

	for _, speedFactor := range []float64{1, 1.5, 2} {
		d := f.Delta(ForceInput{
			Leader:      dynamo.Vec2{},
			Target:      dynamo.Vec2{X: 10},
			SpeedFactor: speedFactor,
			GlobalSpeed: 1,
		})
		if d.Y != 0 {
			t.Errorf("speed %.1f: expected no y component, got %v", speedFactor, d.Y)
		}
		if math.Abs(d.X-speedFactor) > 1e-12 {
			t.Errorf("speed %.1f: expected x delta %.1f, got %v", speedFactor, speedFactor, d.X)
		}
	}
}

func TestForceModel_SteerScalesWithGlobalSpeed(t *testing.T) {
	f := NewForceModel()
	d := f.Steer(dynamo.Vec2{X: 5, Y: 5}, dynamo.Vec2{X: 5, Y: 0}, 1.25, 2)
	if math.Abs(d.Y+2.5) > 1e-12 || d.X != 0 {
		t.Errorf("expected (0, -2.5), got %v", d)
	}
}

func TestForceModel_SteerZeroDistance(t *testing.T) {
	f := NewForceModel()
	d := f.Steer(dynamo.Vec2{X: 3, Y: 4}, dynamo.Vec2{X: 3, Y: 4}, 1.5, 1)
	if d != (dynamo.Vec2{}) {
		t.Errorf("expected zero steering on target, got %v", d)
	}
}

func TestForceModel_Attract(t *testing.T) {
	f := NewForceModel()
	leader := dynamo.Vec2{}

	tests := []struct {
		name      string
		pointer   Pointer
		influence float64
		want      dynamo.Vec2
	}{
		{"inactive", Pointer{Pos: dynamo.Vec2{X: 100}}, 50, dynamo.Vec2{}},
		{"zero influence", Pointer{Pos: dynamo.Vec2{X: 100}, Active: true}, 0, dynamo.Vec2{}},
		{"out of range", Pointer{Pos: dynamo.Vec2{X: 300}, Active: true}, 50, dynamo.Vec2{}},
		{"coincident", Pointer{Pos: dynamo.Vec2{}, Active: true}, 50, dynamo.Vec2{}},
		{"in range", Pointer{Pos: dynamo.Vec2{X: 150}, Active: true}, 40, dynamo.Vec2{X: 1}},
		{"diagonal", Pointer{Pos: dynamo.Vec2{X: 0, Y: -60}, Active: true}, 20, dynamo.Vec2{Y: -0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Attract(leader, tt.pointer, tt.influence)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Attract = %v, want %v", got, tt.want)
			}
			if !got.IsValid() {
				t.Errorf("Attract produced non-finite force %v", got)
			}
		})
	}
}

func TestForceModel_DeltaAccumulates(t *testing.T) {
	f := NewForceModel()
	d := f.Delta(ForceInput{
		Leader:      dynamo.Vec2{},
		Target:      dynamo.Vec2{X: 10},
		SpeedFactor: 1,
		GlobalSpeed: 1,
		Pointer:     Pointer{Pos: dynamo.Vec2{Y: 150}, Active: true},
		Influence:   40,
	})
	if math.Abs(d.X-1) > 1e-12 || math.Abs(d.Y-1) > 1e-12 {
		t.Errorf("expected (1, 1), got %v", d)
	}
}

func TestForceModel_DeltaAllCoincident(t *testing.T) {
	f := NewForceModel()
	d := f.Delta(ForceInput{
		Pointer:     Pointer{Active: true},
		Influence:   100,
		SpeedFactor: 2,
		GlobalSpeed: 1,
	})
	if !d.IsValid() || d != (dynamo.Vec2{}) {
		t.Errorf("expected finite zero delta, got %v", d)
	}
}
