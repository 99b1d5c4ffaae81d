package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// placePage stacks the policy's section one item per page along the paging
// direction. Placement runs in flow coordinates (pages stacked along y) and
// is transposed for horizontal paging.
func (l *Layout) placePage(b *passBuilder) geometry.Size {
	s := l.policy.Section
	horizontal := l.policy.Direction == Horizontal
	b.touch(s)

	cross := l.contentWidth()
	lead, trail := l.cfg.SectionInsets.Top, l.cfg.SectionInsets.Bottom
	if horizontal {
		cross = l.contentHeight()
		lead, trail = l.cfg.SectionInsets.Left, l.cfg.SectionInsets.Right
	}

	main := 0.0
	if h := l.headerHeight(s); h > 0 {
		vertical := l.header(s, 0, h)
		side := Attributes{
			IndexPath: Path(s, 1),
			Kind:      KindHeader,
			Center:    geometry.Pt(h/2, l.bounds.Height/2),
			Size:      geometry.Sz(l.bounds.Height, h),
			Rotation:  -math.Pi / 2,
			Alpha:     1,
			Scale:     1,
		}
		if horizontal {
			vertical.Alpha, vertical.Hidden = 0, true
		} else {
			side.Alpha, side.Hidden = 0, true
		}
		b.add(s, vertical)
		b.add(s, side)
		main = h
	}

	if s < 0 || s >= l.source.NumberOfSections() || l.source.NumberOfItems(s) == 0 {
		return l.pageContent(main, cross)
	}

	attrs, end := l.flow(flowSpec{
		section:    s,
		origin:     main + lead,
		avail:      cross,
		capacity:   1,
		transposed: horizontal,
		measure: func(ip IndexPath, it Item) placement {
			return l.measurePage(ip, it, cross)
		},
	})

	// Pages are centered in a column as wide as the zoomed container. When
	// every page is narrower than that, pull them back so the content stays
	// as narrow as the widest page (or the container).
	column, widest := cross, cross
	for _, a := range attrs {
		if a.Hidden {
			continue
		}
		column = math.Max(column, cross*a.Scale)
		bb := geometry.BoundingSize(a.Size, a.Rotation)
		if horizontal {
			widest = math.Max(widest, bb.Height)
		} else {
			widest = math.Max(widest, bb.Width)
		}
	}
	shift := 0.0
	if widest < column {
		shift = (column - widest) / 2
		column = widest
	}

	for _, a := range attrs {
		c := geometry.Pt(a.Center.X-shift, a.Center.Y)
		if a.Hidden {
			c.X = a.Center.X
		}
		if horizontal {
			c = geometry.Pt(c.Y, c.X)
		}
		a.Center = c
		b.add(s, a)
	}
	return l.pageContent(end+trail, column)
}

func (l *Layout) pageContent(main, cross float64) geometry.Size {
	cross = math.Max(cross, 0)
	if l.policy.Direction == Horizontal {
		return geometry.Sz(main, math.Max(cross, l.bounds.Height))
	}
	return geometry.Sz(math.Max(cross, l.bounds.Width), main)
}

// measurePage fits the item to the cross extent (always when FitWidth,
// otherwise only when too large) and applies its zoom scale.
func (l *Layout) measurePage(ip IndexPath, it Item, cross float64) placement {
	base := it.IdealSize
	bound := geometry.BoundingSize(base, it.Rotation)
	if cross > 0 {
		if l.policy.Direction == Horizontal {
			fitted := geometry.FitToHeight(bound, cross, l.policy.FitWidth)
			base = base.Scale(fitted.Height / bound.Height)
		} else {
			fitted := geometry.FitToWidth(bound, cross, l.policy.FitWidth)
			base = base.Scale(fitted.Width / bound.Width)
		}
	}

	scale := l.cfg.clampZoom(l.zoomScaleFor(ip))
	size := base.Scale(scale)
	bb := geometry.BoundingSize(size, it.Rotation)
	extent := bb.Height
	if l.policy.Direction == Horizontal {
		extent = bb.Width
	}
	return placement{
		size:     size,
		rotation: it.Rotation,
		scale:    scale,
		reserve:  geometry.Sz(cross*scale, extent),
	}
}
