package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/gesture"
)

// ZoomFrame is the result of one zoom sample: the focused page's new
// placement and the content offset that keeps the pinched point under the
// focal location.
type ZoomFrame struct {
	IndexPath     IndexPath      `json:"index_path"`
	Scale         float64        `json:"scale"`
	Attributes    Attributes     `json:"attributes"`
	ContentOffset geometry.Point `json:"content_offset"`
}

type zoomSession struct {
	ip        IndexPath
	baseScale float64
	percent   geometry.Point
	location  geometry.Point
	current   Attributes
	hasFrame  bool
	scale     float64
}

// zoomSettle is what a finished zoom leaves for the next
// TargetContentOffset: the page and the spot in it under the fingers.
type zoomSettle struct {
	ip       IndexPath
	percent  geometry.Point
	location geometry.Point
}

// BeginZoom records the page under the gesture's focal point and the
// fractional position within it. viewport is the visible content rect; the
// sample's locations are relative to its origin.
func (l *Layout) BeginZoom(s gesture.Sample, viewport geometry.Rect) error {
	if l.policy.Mode != ModePage {
		return errors.New(errors.ErrCodeInvalidMode, "zoom requires a page layout, have %s", l.policy)
	}
	pass := l.Prepare()
	focal := viewport.Origin().Add(s.Location)
	ip, ok := pass.Nearest(focal)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no page to zoom")
	}
	a, _ := pass.Item(ip)
	f := a.Frame()

	base := a.Scale
	if !(base > 0) {
		base = 1
	}
	l.settle = nil
	l.zoom = &zoomSession{
		ip:        ip,
		baseScale: base,
		location:  s.Location,
		percent: geometry.Pt(
			(focal.X-f.X)/math.Max(f.Width, geometry.Epsilon),
			(focal.Y-f.Y)/math.Max(f.Height, geometry.Epsilon),
		),
		scale: base,
	}
	return nil
}

// Zooming reports whether a zoom gesture is in progress.
func (l *Layout) Zooming() bool { return l.zoom != nil }

// StartingPercentOffset returns the fractional position within the focused
// page that was under the focal point when the zoom began.
func (l *Layout) StartingPercentOffset() (geometry.Point, bool) {
	if l.zoom == nil {
		return geometry.Point{}, false
	}
	return l.zoom.percent, true
}

// UpdateZoom applies a sample. The focused page is placed exactly where a
// full pass at the sample's scale would put it, so releasing the pinch does
// not move it. Other pages keep their cached placement until EndZoom.
func (l *Layout) UpdateZoom(s gesture.Sample) (ZoomFrame, error) {
	z := l.zoom
	if z == nil {
		return ZoomFrame{}, errors.New(errors.ErrCodeInvalidInput, "no zoom in progress")
	}

	scale := l.cfg.clampZoom(z.baseScale * s.Scale)
	a, ok := l.previewPage(z.ip, scale)
	if !ok {
		return ZoomFrame{}, errors.New(errors.ErrCodeNotFound, "page %s is gone", z.ip)
	}
	z.current, z.hasFrame, z.scale, z.location = a, true, scale, s.Location

	return ZoomFrame{
		IndexPath:     z.ip,
		Scale:         scale,
		Attributes:    a,
		ContentOffset: anchorOffset(a, z.percent, s.Location),
	}, nil
}

// previewPage places the policy's section at scale without touching the
// cached pass and returns the page at ip. A delegate ZoomScale still takes
// precedence, as it does in a full pass.
func (l *Layout) previewPage(ip IndexPath, scale float64) (Attributes, bool) {
	saved := l.zoomScale
	l.zoomScale = scale
	defer func() { l.zoomScale = saved }()

	b := newPassBuilder(l.policy, 0, l.bounds)
	l.placePage(b)
	return b.pass.Item(ip)
}

// anchorOffset is the content offset that puts the fractional spot percent
// of a's frame under location.
func anchorOffset(a Attributes, percent, location geometry.Point) geometry.Point {
	f := a.Frame()
	return geometry.Pt(f.X+percent.X*f.Width, f.Y+percent.Y*f.Height).Sub(location)
}

// EndZoom stores the final scale as the layout's zoom scale and returns it.
// The next query runs a full pass at that scale, and the next
// TargetContentOffset keeps the pinched spot under the last focal location
// instead of snapping to a page edge.
func (l *Layout) EndZoom() float64 {
	z := l.zoom
	if z == nil {
		return l.zoomScale
	}
	l.zoom = nil
	if z.hasFrame {
		l.settle = &zoomSettle{ip: z.ip, percent: z.percent, location: z.location}
	}
	l.SetZoomScale(z.scale)
	l.Invalidate()
	return l.zoomScale
}
