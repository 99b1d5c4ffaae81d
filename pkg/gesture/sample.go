package gesture

import "github.com/matzehuels/shelfview/pkg/geometry"

// Sample is one gesture update.
type Sample struct {
	// Scale is the cumulative pinch scale since the gesture began (1 = none).
	Scale float64 `json:"scale"`

	// Velocity is the rate of change of Scale, in scale units per second.
	Velocity float64 `json:"velocity"`

	// Translation is the focal point's movement since the gesture began,
	// with touch join/leave jumps removed.
	Translation geometry.Point `json:"translation"`

	// FirstLocation is where the focal point would be had the touch set never
	// changed: Location plus Adjustment.
	FirstLocation geometry.Point `json:"first_location"`

	// Location is the current focal point in viewport coordinates.
	Location geometry.Point `json:"location"`

	// Adjustment is the cumulative focal jump absorbed so far.
	Adjustment geometry.Point `json:"adjustment"`
}

// At returns a sample with the given scale whose focal point stays at loc.
func At(scale float64, loc geometry.Point) Sample {
	return Sample{Scale: scale, Location: loc, FirstLocation: loc}
}
