package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// TargetContentOffset answers what content offset the surface should use
// after a re-layout, given the offset it proposes and the viewport size.
//
// Page layouts snap the main axis to the nearest page, except right after
// EndZoom, when the pinched spot is kept under the fingers. Other layouts
// keep TargetIndexPath stationary: the first call after a re-layout shifts
// the proposed offset by how far the target moved since the previous pass,
// or on a first layout places the target's section a fifth of the way down
// the viewport. Later calls against the same pass only clamp. The result is
// always clamped to the scrollable range.
func (l *Layout) TargetContentOffset(proposed geometry.Point, viewport geometry.Size) geometry.Point {
	pass := l.Prepare()
	if l.policy.Mode == ModePage {
		if st := l.settle; st != nil {
			l.settle = nil
			if a, ok := pass.Item(st.ip); ok {
				return clampOffset(anchorOffset(a, st.percent, st.location), pass.ContentSize(), viewport)
			}
		}
		return clampOffset(l.snapToPage(pass, proposed), pass.ContentSize(), viewport)
	}
	if l.TargetIndexPath == nil || l.anchored == pass {
		return clampOffset(proposed, pass.ContentSize(), viewport)
	}
	l.anchored = pass

	ip := *l.TargetIndexPath
	cur, ok := pass.Item(ip)
	if !ok {
		return clampOffset(proposed, pass.ContentSize(), viewport)
	}
	if l.prev != nil {
		if old, ok := l.prev.Item(ip); ok {
			delta := cur.Frame().Origin().Sub(old.Frame().Origin())
			return clampOffset(proposed.Add(delta), pass.ContentSize(), viewport)
		}
	}

	section := cur.Frame()
	if c, ok := pass.Section(ip.Section); ok {
		section = c.Frame()
	}
	y := section.Y - (viewport.Height-section.Height)/5
	return clampOffset(geometry.Pt(proposed.X, y), pass.ContentSize(), viewport)
}

// snapToPage moves the main-axis coordinate of proposed to the origin of the
// closest visible page.
func (l *Layout) snapToPage(pass *Pass, proposed geometry.Point) geometry.Point {
	horizontal := l.policy.Direction == Horizontal
	c, ok := pass.Section(l.policy.Section)
	if !ok {
		return proposed
	}

	want := proposed.Y
	if horizontal {
		want = proposed.X
	}
	best, bestDist := want, math.Inf(1)
	for _, a := range c.Visible() {
		if a.Kind != KindItem {
			continue
		}
		origin := a.Frame().Y
		if horizontal {
			origin = a.Frame().X
		}
		if d := math.Abs(origin - want); d < bestDist {
			best, bestDist = origin, d
		}
	}
	if horizontal {
		return geometry.Pt(best, proposed.Y)
	}
	return geometry.Pt(proposed.X, best)
}

func clampOffset(p geometry.Point, content, viewport geometry.Size) geometry.Point {
	return geometry.Pt(
		geometry.Clamp(p.X, 0, math.Max(0, content.Width-viewport.Width)),
		geometry.Clamp(p.Y, 0, math.Max(0, content.Height-viewport.Height)),
	)
}
