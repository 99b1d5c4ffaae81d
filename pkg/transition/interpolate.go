package transition

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/layout"
)

type interactive struct {
	source, dest *layout.Layout
	src, dst     *layout.Pass
	progress     float64
	anchor       Anchor
	viewport     geometry.Rect
	zoomIn       bool
}

type attrKey struct {
	kind layout.Kind
	ip   layout.IndexPath
}

// lookup returns the attributes of kind at ip at the current progress. At
// the endpoints the owning pass answers directly.
func (t *interactive) lookup(kind layout.Kind, ip layout.IndexPath) (layout.Attributes, bool) {
	switch t.progress {
	case 0:
		return t.src.Lookup(kind, ip)
	case 1:
		return t.dst.Lookup(kind, ip)
	}

	a, okA := t.src.Lookup(kind, ip)
	b, okB := t.dst.Lookup(kind, ip)
	switch {
	case okA && okB:
		return Interpolate(a, b, t.progress), true
	case okA:
		a.Hidden = true
		a.Alpha *= 1 - t.progress
		return a, true
	case okB:
		b.Hidden = true
		b.Alpha *= t.progress
		return b, true
	}
	return layout.Attributes{}, false
}

// all returns every attribute at the current progress: source order first,
// then destination-only entries.
func (t *interactive) all() []layout.Attributes {
	switch t.progress {
	case 0:
		return t.src.All()
	case 1:
		return t.dst.All()
	}

	srcAll, dstAll := t.src.All(), t.dst.All()
	seen := make(map[attrKey]bool, len(srcAll))
	out := make([]layout.Attributes, 0, len(srcAll)+len(dstAll))
	for _, a := range srcAll {
		k := attrKey{kind: a.Kind, ip: a.IndexPath}
		seen[k] = true
		if v, ok := t.lookup(k.kind, k.ip); ok {
			out = append(out, v)
		}
	}
	for _, b := range dstAll {
		k := attrKey{kind: b.Kind, ip: b.IndexPath}
		if seen[k] {
			continue
		}
		if v, ok := t.lookup(k.kind, k.ip); ok {
			out = append(out, v)
		}
	}
	return out
}

func (t *interactive) contentSize() geometry.Size {
	return geometry.LerpSize(t.src.ContentSize(), t.dst.ContentSize(), t.progress)
}

// Interpolate blends a toward b. Center, size, rotation, alpha and scale are
// linear in p; the discrete fields come from whichever side p is closer to.
func Interpolate(a, b layout.Attributes, p float64) layout.Attributes {
	out := a
	if p >= 0.5 {
		out = b
	}
	out.Center = geometry.LerpPoint(a.Center, b.Center, p)
	out.Size = geometry.LerpSize(a.Size, b.Size, p)
	out.Rotation = geometry.Lerp(a.Rotation, b.Rotation, p)
	out.Alpha = geometry.Lerp(a.Alpha, b.Alpha, p)
	out.Scale = geometry.Lerp(a.Scale, b.Scale, p)
	return out
}

// AttributesForItem returns the item's placement, interpolated while a
// transition is in flight.
func (e *Engine) AttributesForItem(ip layout.IndexPath) (layout.Attributes, bool) {
	if e.tr == nil {
		return e.active.AttributesForItem(ip)
	}
	return e.tr.lookup(layout.KindItem, ip)
}

// AttributesForHeader returns the header's placement, interpolated while a
// transition is in flight.
func (e *Engine) AttributesForHeader(ip layout.IndexPath) (layout.Attributes, bool) {
	if e.tr == nil {
		return e.active.AttributesForHeader(ip)
	}
	return e.tr.lookup(layout.KindHeader, ip)
}

// AttributesInRect returns the visible attributes intersecting r.
func (e *Engine) AttributesInRect(r geometry.Rect) []layout.Attributes {
	if e.tr == nil {
		return e.active.AttributesInRect(r)
	}
	switch e.tr.progress {
	case 0:
		return e.tr.src.InRect(r)
	case 1:
		return e.tr.dst.InRect(r)
	}
	var out []layout.Attributes
	for _, a := range e.tr.all() {
		if !a.Hidden && a.Frame().Intersects(r) {
			out = append(out, a)
		}
	}
	return out
}

// AllAttributes returns every attribute, hidden ones included.
func (e *Engine) AllAttributes() []layout.Attributes {
	if e.tr == nil {
		return e.active.Prepare().All()
	}
	return e.tr.all()
}

// ContentSize returns the scrollable extent, interpolated while interactive.
func (e *Engine) ContentSize() geometry.Size {
	if e.tr == nil {
		return e.active.ContentSize()
	}
	return e.tr.contentSize()
}

// ContentOffset returns the offset that keeps the anchor under the focal
// point at the current progress, clamped to the interpolated content size.
// It reports false while idle.
func (e *Engine) ContentOffset() (geometry.Point, bool) {
	t := e.tr
	if t == nil {
		return geometry.Point{}, false
	}
	if !t.anchor.Found {
		return t.viewport.Origin(), true
	}
	a, ok := t.lookup(layout.KindItem, t.anchor.IndexPath)
	if !ok {
		return t.viewport.Origin(), true
	}

	f := a.Frame()
	pt := geometry.Pt(f.X+t.anchor.Percent.X*f.Width, f.Y+t.anchor.Percent.Y*f.Height)
	off := pt.Sub(t.anchor.Focal)

	content := t.contentSize()
	return geometry.Pt(
		geometry.Clamp(off.X, 0, math.Max(0, content.Width-t.viewport.Width)),
		geometry.Clamp(off.Y, 0, math.Max(0, content.Height-t.viewport.Height)),
	), true
}
