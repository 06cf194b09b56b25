package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
		ok   bool
	}{
		{"axis", Vec2{10, 0}, Vec2{1, 0}, true},
		{"diagonal", Vec2{3, 4}, Vec2{0.6, 0.8}, true},
		{"zero", Vec2{}, Vec2{}, false},
		{"nan", Vec2{math.NaN(), 1}, Vec2{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Normalize()
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if got := a.Add(b); got != (Vec2{5, 8}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec2{3, 4}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist failed: got %v", got)
	}
}

func TestVec2_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"normal", Vec2{1, 2}, true},
		{"zeros", Vec2{}, true},
		{"with NaN", Vec2{1, math.NaN()}, false},
		{"with +Inf", Vec2{math.Inf(1), 0}, false},
		{"with -Inf", Vec2{0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestIntn(t *testing.T) {
	tests := []struct {
		r    float64
		n    int
		want int
	}{
		{0, 10, 0},
		{0.96, 10, 9},
		{0.999999, 32, 31},
		{0.5, 0, 0},
	}

	for _, tt := range tests {
		if got := Intn(FixedRand(tt.r), tt.n); got != tt.want {
			t.Errorf("Intn(%v, %d) = %d, want %d", tt.r, tt.n, got, tt.want)
		}
	}
}

func TestSeqRand(t *testing.T) {
	s := SeqRand{0.1, 0.2}
	if v := s.Float64(); v != 0.1 {
		t.Errorf("first = %v", v)
	}
	if v := s.Float64(); v != 0.2 {
		t.Errorf("second = %v", v)
	}
	if v := s.Float64(); v != 0.2 {
		t.Errorf("repeat = %v", v)
	}
}

func TestNewRand_Range(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("value out of range: %v", v)
		}
	}
}

func TestSimError(t *testing.T) {
	err := &SimError{Frame: 12, Trail: 3, Wrapped: ErrMissingTarget}
	expected := "frame 12 trail 3: dynamo: target index resolves to no curve point"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrMissingTarget) {
		t.Error("SimError does not unwrap to its cause")
	}
}
