package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// placeGrid lays out the policy's section in fixed cells starting at y = 0.
func (l *Layout) placeGrid(b *passBuilder) geometry.Size {
	s := l.policy.Section
	b.touch(s)

	y := l.cfg.ContentInsets.Top
	if h := l.headerHeight(s); h > 0 {
		b.add(s, l.header(s, y, h))
		y += h
	}
	if s < 0 || s >= l.source.NumberOfSections() || l.source.NumberOfItems(s) == 0 {
		return geometry.Sz(l.bounds.Width, y+l.cfg.ContentInsets.Bottom)
	}

	in := l.cfg.SectionInsets
	cell := geometry.SafeSize(l.cfg.GridItemSize)
	avail := math.Max(0, l.contentWidth()-in.Horizontal())
	gap := l.cfg.ItemSpacing.Horizontal()

	attrs, end := l.flow(flowSpec{
		section:  s,
		origin:   y + in.Top,
		lead:     l.cfg.ContentInsets.Left + in.Left,
		avail:    avail,
		gap:      gap,
		lineGap:  l.cfg.ItemSpacing.Vertical(),
		capacity: gridCapacity(avail, cell.Width, gap),
		measure: func(_ IndexPath, it Item) placement {
			return placement{
				size:     geometry.InscribedIn(it.IdealSize.Ratio(), cell, it.Rotation),
				rotation: it.Rotation,
				scale:    1,
				reserve:  cell,
			}
		},
	})
	for _, a := range attrs {
		b.add(s, a)
	}
	return geometry.Sz(l.bounds.Width, end+in.Bottom+l.cfg.ContentInsets.Bottom)
}

// gridCapacity is the number of cells per row, never less than one.
func gridCapacity(avail, cellWidth, gap float64) int {
	n := math.Floor((avail + gap) / (cellWidth + gap))
	if !(n >= 1) {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
