// Package geometry provides the small set of 2D value types and pure
// functions the layout engine is built on.
//
// # Types
//
// [Point], [Size], [Rect] and [Insets] are plain float64 value types. Rect uses
// a top-left origin with Y increasing downward, matching the scroll surfaces
// the layouts target.
//
// # Rotation-Aware Sizing
//
// Items may be rotated about their own center. [BoundingSize] returns the
// axis-aligned box a rotated size occupies. [InscribedWidth] and
// [InscribedHeight] solve the inverse problem: given an aspect ratio and a
// rotation, find the unrotated size whose rotated bounding box has exactly
// the requested width (or height).
//
//	w := geometry.InscribedWidth(1.5, 100, math.Pi/4)
//	b := geometry.BoundingSize(w, math.Pi/4) // b.Width == 100 (within 1e-9)
//
// Both use absolute values of sine and cosine so that opposite signs never
// cancel out and invert the ratio.
//
// # Fitting
//
// [FitToWidth], [FitToHeight] and [FitToMaxDim] scale a size while keeping
// its aspect ratio. Small sizes are only scaled up when scaleUp is true.
//
// # Degenerate Input
//
// Nothing in this package returns an error. Zero, negative or NaN sizes are
// clamped to [Epsilon] by [SafeSize] before being used as a divisor, and a
// NaN rotation is treated as zero.
package geometry
