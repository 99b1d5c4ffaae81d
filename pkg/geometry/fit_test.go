package geometry

import (
	"math"
	"testing"
)

func TestFitToWidth(t *testing.T) {
	tests := []struct {
		name    string
		size    Size
		width   float64
		scaleUp bool
		want    Size
	}{
		{"narrower stays", Sz(50, 100), 100, false, Sz(50, 100)},
		{"equal stays", Sz(100, 30), 100, false, Sz(100, 30)},
		{"wider shrinks", Sz(200, 100), 100, false, Sz(100, 50)},
		{"scale up", Sz(50, 100), 100, true, Sz(100, 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitToWidth(tt.size, tt.width, tt.scaleUp); got != tt.want {
				t.Errorf("FitToWidth(%v, %v, %v) = %v, want %v", tt.size, tt.width, tt.scaleUp, got, tt.want)
			}
		})
	}
}

func TestFitToHeight(t *testing.T) {
	tests := []struct {
		name    string
		size    Size
		height  float64
		scaleUp bool
		want    Size
	}{
		{"shorter stays", Sz(50, 40), 100, false, Sz(50, 40)},
		{"taller shrinks", Sz(100, 400), 200, false, Sz(50, 200)},
		{"scale up", Sz(10, 20), 40, true, Sz(20, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitToHeight(tt.size, tt.height, tt.scaleUp); got != tt.want {
				t.Errorf("FitToHeight(%v, %v, %v) = %v, want %v", tt.size, tt.height, tt.scaleUp, got, tt.want)
			}
		})
	}
}

func TestFitToWidthDegenerate(t *testing.T) {
	got := FitToWidth(Sz(0, 10), 100, true)
	if got.Width != 100 || math.IsInf(got.Height, 0) || math.IsNaN(got.Height) {
		t.Errorf("FitToWidth(zero width) = %v, want finite", got)
	}
}

func TestFitToMaxDim(t *testing.T) {
	if got := FitToMaxDim(Sz(280, 140), 140, false); got != Sz(140, 70) {
		t.Errorf("landscape: got %v", got)
	}
	if got := FitToMaxDim(Sz(140, 280), 140, false); got != Sz(70, 140) {
		t.Errorf("portrait: got %v", got)
	}
	if got := FitToMaxDim(Sz(20, 10), 140, false); got != Sz(20, 10) {
		t.Errorf("small: got %v", got)
	}
}
