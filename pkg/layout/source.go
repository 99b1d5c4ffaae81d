package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// Item is what the data source reports for one item.
type Item struct {
	IdealSize geometry.Size
	Rotation  float64
	// PhysicalScale multiplies IdealSize on shelves so items of different
	// real-world sizes keep their proportions. Zero means 1.
	PhysicalScale float64
}

func (it Item) sanitized() Item {
	it.IdealSize = geometry.SafeSize(it.IdealSize)
	if math.IsNaN(it.Rotation) || math.IsInf(it.Rotation, 0) {
		it.Rotation = 0
	}
	if !(it.PhysicalScale > 0) || math.IsInf(it.PhysicalScale, 0) {
		it.PhysicalScale = 1
	}
	return it
}

// DataSource supplies the items to lay out. It is read on every pass and
// never modified by the layout.
type DataSource interface {
	NumberOfSections() int
	NumberOfItems(section int) int
	Item(ip IndexPath) Item
}

// Versioned is implemented by data sources that can report a content
// version. The version must change whenever any item's size or rotation
// changes. Sources without it are fingerprinted item by item.
type Versioned interface {
	Version() uint64
}

// Delegate customizes a layout. Every field is optional.
//
// Results of the callbacks are not part of the pass stamp: call
// [Layout.Invalidate] when their answers change.
type Delegate struct {
	// HeaderHeight overrides Config.HeaderHeight per section. Zero hides the
	// header band.
	HeaderHeight func(section int) float64

	// ItemSize overrides the ideal size the data source reports.
	ItemSize func(ip IndexPath, ideal geometry.Size) geometry.Size

	// ZoomScale is the page zoom of an item. Defaults to the layout's own
	// zoom scale (initially 1).
	ZoomScale func(ip IndexPath) float64

	// ShouldIgnore excludes an item from flow. Ignored items stay queryable
	// as hidden attributes.
	ShouldIgnore func(ip IndexPath) bool
}

func (l *Layout) headerHeight(section int) float64 {
	h := l.cfg.HeaderHeight
	if l.delegate.HeaderHeight != nil {
		h = l.delegate.HeaderHeight(section)
	}
	if !(h > 0) || math.IsInf(h, 0) {
		return 0
	}
	return h
}

func (l *Layout) item(ip IndexPath) Item {
	it := l.source.Item(ip)
	if l.delegate.ItemSize != nil {
		it.IdealSize = l.delegate.ItemSize(ip, it.IdealSize)
	}
	return it.sanitized()
}

func (l *Layout) ignored(ip IndexPath) bool {
	return l.delegate.ShouldIgnore != nil && l.delegate.ShouldIgnore(ip)
}

func (l *Layout) zoomScaleFor(ip IndexPath) float64 {
	s := l.zoomScale
	if l.delegate.ZoomScale != nil {
		s = l.delegate.ZoomScale(ip)
	}
	if !(s > 0) || math.IsInf(s, 0) {
		return 1
	}
	return s
}
