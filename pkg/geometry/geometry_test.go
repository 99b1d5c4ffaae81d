package geometry

import (
	"math"
	"testing"
)

func TestRectUnion(t *testing.T) {
	got := R(0, 0, 10, 10).Union(R(20, -5, 5, 5))
	if want := R(0, -5, 25, 15); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", R(0, 0, 10, 10), R(5, 5, 10, 10), true},
		{"touching edge", R(0, 0, 10, 10), R(10, 0, 10, 10), true},
		{"apart", R(0, 0, 10, 10), R(11, 0, 10, 10), false},
		{"contained", R(0, 0, 100, 100), R(10, 10, 1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSafeSize(t *testing.T) {
	got := SafeSize(Sz(-3, math.NaN()))
	if got.Width != Epsilon || got.Height != Epsilon {
		t.Errorf("SafeSize = %v, want both Epsilon", got)
	}
	if got := SafeSize(Sz(4, 5)); got != Sz(4, 5) {
		t.Errorf("SafeSize(valid) = %v", got)
	}
}

func TestLerpEndpointsExact(t *testing.T) {
	a, b := R(0.1, 0.7, 33.3, 12.9), R(50.05, 51, 200.7, 199.9)
	if got := LerpRect(a, b, 0); got != a {
		t.Errorf("LerpRect(t=0) = %v, want %v", got, a)
	}
	if got := LerpRect(a, b, 1); got != b {
		t.Errorf("LerpRect(t=1) = %v, want %v", got, b)
	}
}

func TestLerpRectMidpoint(t *testing.T) {
	got := LerpRect(R(0, 0, 100, 100), R(50, 50, 200, 200), 0.5)
	if want := R(25, 25, 150, 150); got != want {
		t.Errorf("LerpRect(0.5) = %v, want %v", got, want)
	}
}

func TestRemap(t *testing.T) {
	if got := Remap(1.75, 1, 2.5, 0, 1); !approx(got, 0.5, 1e-12) {
		t.Errorf("Remap = %v, want 0.5", got)
	}
	if got := Clamp(Remap(4, 1, 2.5, 0, 1), 0, 1); got != 1 {
		t.Errorf("Clamp(Remap) = %v, want 1", got)
	}
}
