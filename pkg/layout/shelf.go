package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// placeShelf lays out every section as wrapped rows under its header.
func (l *Layout) placeShelf(b *passBuilder) geometry.Size {
	in := l.cfg.SectionInsets
	y := l.cfg.ContentInsets.Top

	for s, n := 0, l.source.NumberOfSections(); s < n; s++ {
		b.touch(s)
		if h := l.headerHeight(s); h > 0 {
			b.add(s, l.header(s, y, h))
			y += h
		}
		if l.source.NumberOfItems(s) == 0 {
			continue
		}

		attrs, end := l.flow(flowSpec{
			section: s,
			origin:  y + in.Top,
			lead:    l.cfg.ContentInsets.Left + in.Left,
			avail:   math.Max(0, l.contentWidth()-in.Horizontal()),
			gap:     l.cfg.ItemSpacing.Horizontal(),
			lineGap: l.cfg.PageSpacing,
			measure: l.measureShelf,
		})
		for _, a := range attrs {
			b.add(s, a)
		}
		y = end + in.Bottom
	}
	return geometry.Sz(l.bounds.Width, y+l.cfg.ContentInsets.Bottom)
}

// measureShelf keeps the item's own proportions, capped at MaxDim, and
// reserves its rotated bounding box.
func (l *Layout) measureShelf(_ IndexPath, it Item) placement {
	size := it.IdealSize.Scale(it.PhysicalScale)
	if l.cfg.MaxDim > 0 {
		size = geometry.FitToMaxDim(size, l.cfg.MaxDim, false)
	}
	return placement{
		size:     size,
		rotation: it.Rotation,
		scale:    1,
		reserve:  geometry.BoundingSize(size, it.Rotation),
	}
}
