package geometry

import "math"

// Epsilon is the smallest positive extent used in place of degenerate sizes.
const Epsilon = 1e-9

// Point is a 2D point or vector.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Mul scales p by s.
func (p Point) Mul(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

// DistanceSquared returns the squared distance between p and q.
func (p Point) DistanceSquared(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float64 { return math.Sqrt(p.DistanceSquared(q)) }

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h float64) Size { return Size{Width: w, Height: h} }

// Scale multiplies both dimensions by f.
func (s Size) Scale(f float64) Size { return Size{Width: s.Width * f, Height: s.Height * f} }

// Ratio returns height / width of a safe copy of s.
func (s Size) Ratio() float64 {
	s = SafeSize(s)
	return s.Height / s.Width
}

// IsEmpty reports whether either dimension is not strictly positive.
func (s Size) IsEmpty() bool { return !(s.Width > 0) || !(s.Height > 0) }

// SafeSize clamps each dimension to at least Epsilon. NaN and negative
// values are replaced as well.
func SafeSize(s Size) Size {
	return Size{Width: safeDim(s.Width), Height: safeDim(s.Height)}
}

func safeDim(v float64) float64 {
	if math.IsNaN(v) || v < Epsilon {
		return Epsilon
	}
	return v
}

// Insets are edge distances, named after the side they apply to.
type Insets struct {
	Top    float64 `json:"top" toml:"top"`
	Left   float64 `json:"left" toml:"left"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Right  float64 `json:"right" toml:"right"`
}

// Horizontal returns Left + Right.
func (i Insets) Horizontal() float64 { return i.Left + i.Right }

// Vertical returns Top + Bottom.
func (i Insets) Vertical() float64 { return i.Top + i.Bottom }

// Rect is an origin plus a size, origin at the top-left.
type Rect struct {
	X      float64 `json:"x" toml:"x"`
	Y      float64 `json:"y" toml:"y"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// R is shorthand for Rect{X: x, Y: y, Width: w, Height: h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// RectAround returns the rect of size s centered on c.
func RectAround(c Point, s Size) Rect {
	return Rect{X: c.X - s.Width/2, Y: c.Y - s.Height/2, Width: s.Width, Height: s.Height}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// MidX returns the horizontal center.
func (r Rect) MidX() float64 { return r.X + r.Width/2 }

// MidY returns the vertical center.
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rect's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Center returns the midpoint.
func (r Rect) Center() Point { return Point{X: r.MidX(), Y: r.MidY()} }

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.MinX(), o.MinX())
	minY := math.Min(r.MinY(), o.MinY())
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Intersects reports whether r and o overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX() <= o.MaxX() && o.MinX() <= r.MaxX() &&
		r.MinY() <= o.MaxY() && o.MinY() <= r.MaxY()
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// Offset translates r by d.
func (r Rect) Offset(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Inset shrinks r by in on every side.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Horizontal(),
		Height: r.Height - in.Vertical(),
	}
}
