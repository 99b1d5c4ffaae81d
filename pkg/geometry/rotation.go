package geometry

import "math"

// trigSnap zeroes sine or cosine magnitudes below this, so that multiples of
// π/2 produce exact results instead of 1e-16 residue.
const trigSnap = 1e-12

// absSinCos returns |sin θ| and |cos θ|. NaN and infinite angles yield (0, 1).
func absSinCos(rotation float64) (float64, float64) {
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return 0, 1
	}
	s, c := math.Sincos(rotation)
	s, c = math.Abs(s), math.Abs(c)
	if s < trigSnap {
		s = 0
	}
	if c < trigSnap {
		c = 0
	}
	return s, c
}

// BoundingSize returns the axis-aligned size of s rotated by rotation
// radians about its own center.
func BoundingSize(s Size, rotation float64) Size {
	sin, cos := absSinCos(rotation)
	if sin == 0 {
		return s
	}
	if cos == 0 {
		return Size{Width: s.Height, Height: s.Width}
	}
	return Size{
		Width:  s.Width*cos + s.Height*sin,
		Height: s.Width*sin + s.Height*cos,
	}
}

// InscribedWidth returns the unrotated size with the given height/width
// ratio whose bounding box, once rotated by rotation, is exactly width wide.
//
// The bounding width is W·|cos θ| + H·|sin θ| and H = ratio·W, so
// W = width / (|sin θ·ratio| + |cos θ|).
func InscribedWidth(ratio, width, rotation float64) Size {
	ratio = safeDim(ratio)
	sin, cos := absSinCos(rotation)
	w := width / (sin*ratio + cos)
	return Size{Width: math.Abs(w), Height: math.Abs(w * ratio)}
}

// InscribedHeight is the height-keyed counterpart of InscribedWidth:
// H = height / (|cos θ| + |sin θ / ratio|), W = H / ratio.
func InscribedHeight(ratio, height, rotation float64) Size {
	ratio = safeDim(ratio)
	sin, cos := absSinCos(rotation)
	h := height / (cos + sin/ratio)
	return Size{Width: math.Abs(h / ratio), Height: math.Abs(h)}
}

// InscribedIn returns the largest size with ratio that, rotated by rotation,
// fits inside box.
func InscribedIn(ratio float64, box Size, rotation float64) Size {
	s := InscribedWidth(ratio, box.Width, rotation)
	if BoundingSize(s, rotation).Height > box.Height {
		s = InscribedHeight(ratio, box.Height, rotation)
	}
	return s
}
