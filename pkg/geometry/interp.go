package geometry

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Remap maps v from the range [minFrom, maxFrom] onto [minTo, maxTo]
// without clamping.
func Remap(v, minFrom, maxFrom, minTo, maxTo float64) float64 {
	return (v-minFrom)/(maxFrom-minFrom)*(maxTo-minTo) + minTo
}

// Lerp returns a·(1−t) + b·t. At t == 0 and t == 1 the result is exactly a
// and b respectively.
func Lerp(a, b, t float64) float64 { return a*(1-t) + b*t }

// LerpPoint interpolates both coordinates.
func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// LerpSize interpolates both dimensions.
func LerpSize(a, b Size, t float64) Size {
	return Size{Width: Lerp(a.Width, b.Width, t), Height: Lerp(a.Height, b.Height, t)}
}

// LerpRect interpolates origin and size. For axis-aligned rects this equals
// interpolating center and size, and it is exact at both endpoints.
func LerpRect(a, b Rect, t float64) Rect {
	return Rect{
		X:      Lerp(a.X, b.X, t),
		Y:      Lerp(a.Y, b.Y, t),
		Width:  Lerp(a.Width, b.Width, t),
		Height: Lerp(a.Height, b.Height, t),
	}
}
