package geometry

import (
	"math"
	"testing"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestBoundingSize(t *testing.T) {
	tests := []struct {
		name     string
		size     Size
		rotation float64
		want     Size
	}{
		{"no rotation", Sz(100, 50), 0, Sz(100, 50)},
		{"half turn", Sz(100, 50), math.Pi, Sz(100, 50)},
		{"quarter turn swaps", Sz(100, 50), math.Pi / 2, Sz(50, 100)},
		{"negative quarter turn", Sz(100, 50), -math.Pi / 2, Sz(50, 100)},
		{"square at 45deg", Sz(100, 100), math.Pi / 4, Sz(100*math.Sqrt2, 100*math.Sqrt2)},
		{"nan rotation", Sz(30, 40), math.NaN(), Sz(30, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundingSize(tt.size, tt.rotation)
			if !approx(got.Width, tt.want.Width, 1e-9) || !approx(got.Height, tt.want.Height, 1e-9) {
				t.Errorf("BoundingSize(%v, %v) = %v, want %v", tt.size, tt.rotation, got, tt.want)
			}
		})
	}
}

func TestBoundingSizeExactAtZero(t *testing.T) {
	s := Sz(123.456, 78.9)
	if got := BoundingSize(s, 0); got != s {
		t.Errorf("BoundingSize(s, 0) = %v, want %v", got, s)
	}
}

func TestBoundingSizePeriodicInPi(t *testing.T) {
	s := Sz(80, 120)
	for r := -2 * math.Pi; r <= 2*math.Pi; r += 0.1 {
		a := BoundingSize(s, r)
		b := BoundingSize(s, r+math.Pi)
		if !approx(a.Width, b.Width, 1e-9) || !approx(a.Height, b.Height, 1e-9) {
			t.Fatalf("rotation %v: %v != %v", r, a, b)
		}
	}
}

func TestInscribedWidthRoundTrip(t *testing.T) {
	ratios := []float64{0.25, 0.5, 1, 1.5, 4}
	for _, ratio := range ratios {
		for r := -2 * math.Pi; r <= 2*math.Pi; r += math.Pi / 12 {
			s := InscribedWidth(ratio, 100, r)
			if !approx(s.Height/s.Width, ratio, 1e-9) {
				t.Fatalf("ratio %v rotation %v: aspect = %v", ratio, r, s.Height/s.Width)
			}
			if got := BoundingSize(s, r).Width; !approx(got, 100, 1e-6) {
				t.Fatalf("ratio %v rotation %v: bounding width = %v, want 100", ratio, r, got)
			}
		}
	}
}

func TestInscribedWidthNoRotation(t *testing.T) {
	s := InscribedWidth(2, 100, 0)
	if s.Width != 100 || s.Height != 200 {
		t.Errorf("InscribedWidth(2, 100, 0) = %v, want {100 200}", s)
	}
}

func TestInscribedWidthScenario(t *testing.T) {
	ratio, rotation := 1.5, math.Pi/4
	wantW := 100 / (math.Abs(math.Sin(rotation)*ratio) + math.Abs(math.Cos(rotation)))

	s := InscribedWidth(ratio, 100, rotation)
	if !approx(s.Width, wantW, 1e-9) || !approx(s.Height, wantW*ratio, 1e-9) {
		t.Errorf("InscribedWidth = %v, want {%v %v}", s, wantW, wantW*ratio)
	}
	if got := BoundingSize(s, rotation).Width; !approx(got, 100, 1e-6) {
		t.Errorf("bounding width = %v, want 100", got)
	}
}

func TestInscribedHeightRoundTrip(t *testing.T) {
	for _, ratio := range []float64{0.5, 1, 2} {
		for r := -math.Pi; r <= math.Pi; r += math.Pi / 8 {
			s := InscribedHeight(ratio, 60, r)
			if got := BoundingSize(s, r).Height; !approx(got, 60, 1e-6) {
				t.Fatalf("ratio %v rotation %v: bounding height = %v, want 60", ratio, r, got)
			}
		}
	}
}

func TestInscribedDegenerateRatio(t *testing.T) {
	s := InscribedWidth(0, 100, math.Pi/3)
	if math.IsNaN(s.Width) || math.IsInf(s.Width, 0) || math.IsNaN(s.Height) {
		t.Errorf("InscribedWidth with zero ratio = %v, want finite", s)
	}
	s = InscribedHeight(-1, 100, math.Pi/3)
	if math.IsNaN(s.Width) || math.IsInf(s.Width, 0) {
		t.Errorf("InscribedHeight with negative ratio = %v, want finite", s)
	}
}

func TestInscribedIn(t *testing.T) {
	box := Sz(100, 100)
	for _, r := range []float64{0, 0.3, math.Pi / 4, 1.2} {
		for _, ratio := range []float64{0.3, 1, 3} {
			s := InscribedIn(ratio, box, r)
			b := BoundingSize(s, r)
			if b.Width > box.Width+1e-6 || b.Height > box.Height+1e-6 {
				t.Errorf("ratio %v rotation %v: bounding %v exceeds %v", ratio, r, b, box)
			}
		}
	}
}
