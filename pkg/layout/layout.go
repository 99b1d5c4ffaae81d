package layout

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/observability"
)

// State is the validity of a layout's cached pass.
type State int

const (
	// StateStale means the next query recomputes the pass.
	StateStale State = iota
	// StateComputing is reported while a pass is being built.
	StateComputing
	// StateValid means the cached pass matches the current inputs.
	StateValid
)

func (s State) String() string {
	switch s {
	case StateStale:
		return "stale"
	case StateComputing:
		return "computing"
	case StateValid:
		return "valid"
	}
	return "unknown"
}

// Layout computes and caches passes for one policy over one data source.
// A Layout is owned by a single goroutine.
type Layout struct {
	policy   Policy
	source   DataSource
	delegate Delegate
	cfg      Config
	bounds   geometry.Size

	zoomScale float64
	zoom      *zoomSession

	// TargetIndexPath, when set, is kept visually stationary across
	// re-layouts by TargetContentOffset.
	TargetIndexPath *IndexPath

	pass     *Pass
	prev     *Pass
	anchored *Pass // pass TargetContentOffset last adjusted for
	settle   *zoomSettle
	invalid  bool
	state    State
}

// Option configures a Layout.
type Option func(*Layout)

// WithConfig replaces the default metrics.
func WithConfig(cfg Config) Option {
	return func(l *Layout) { l.cfg = cfg }
}

// WithDelegate installs host callbacks.
func WithDelegate(d Delegate) Option {
	return func(l *Layout) { l.delegate = d }
}

// WithBounds sets the initial container size.
func WithBounds(s geometry.Size) Option {
	return func(l *Layout) { l.bounds = s }
}

// New creates a layout for policy over src.
func New(policy Policy, src DataSource, opts ...Option) *Layout {
	l := &Layout{
		policy:    policy,
		source:    src,
		cfg:       DefaultConfig(),
		zoomScale: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Policy returns the placement policy.
func (l *Layout) Policy() Policy { return l.policy }

// Config returns the metrics in use.
func (l *Layout) Config() Config { return l.cfg }

// Source returns the data source.
func (l *Layout) Source() DataSource { return l.source }

// Delegate returns the installed callbacks.
func (l *Layout) Delegate() Delegate { return l.delegate }

// Bounds returns the container size.
func (l *Layout) Bounds() geometry.Size { return l.bounds }

// ZoomScale returns the layout's own page zoom scale.
func (l *Layout) ZoomScale() float64 { return l.zoomScale }

// SetZoomScale sets the page zoom used when the delegate does not supply one.
func (l *Layout) SetZoomScale(s float64) {
	s = l.cfg.clampZoom(s)
	if s != l.zoomScale {
		l.zoomScale = s
		l.Invalidate()
	}
}

// SetBounds changes the container size. The pass goes stale only when the
// size actually differs.
func (l *Layout) SetBounds(s geometry.Size) {
	if l.ShouldInvalidateForBounds(s) {
		l.bounds = s
	}
}

// ShouldInvalidateForBounds reports whether moving to s would change
// placement. Scrolling changes the origin only and never invalidates.
func (l *Layout) ShouldInvalidateForBounds(s geometry.Size) bool {
	return s != l.bounds
}

// SetConfig replaces the metrics and invalidates.
func (l *Layout) SetConfig(cfg Config) {
	l.cfg = cfg
	l.Invalidate()
}

// SetDelegate replaces the callbacks and invalidates.
func (l *Layout) SetDelegate(d Delegate) {
	l.delegate = d
	l.Invalidate()
}

// Invalidate forces the next query to recompute.
func (l *Layout) Invalidate() {
	if !l.invalid {
		observability.Layout().OnInvalidate(l.policy.Mode.String())
	}
	l.invalid = true
	l.state = StateStale
}

// State reports whether the cached pass matches the current inputs.
func (l *Layout) State() State {
	if l.state == StateComputing {
		return StateComputing
	}
	if l.pass == nil || l.invalid {
		return StateStale
	}
	sh := l.shallowStamp()
	if l.pass.shallow != sh || l.pass.stamp != l.deepStamp(sh) {
		return StateStale
	}
	return StateValid
}

// Prepare returns the current pass, computing it if the inputs changed.
func (l *Layout) Prepare() *Pass { return l.current(true) }

// current returns the cached pass when it still matches the inputs. A
// shallow check compares bounds, section counts and the source version; a
// deep check also fingerprints every item of an unversioned source.
// Per-item lookups use the shallow check so that querying each item of a
// pass in turn stays linear.
func (l *Layout) current(deep bool) *Pass {
	sh := l.shallowStamp()
	if l.pass != nil && !l.invalid && l.pass.shallow == sh {
		if !deep || l.pass.stamp == l.deepStamp(sh) {
			l.state = StateValid
			return l.pass
		}
	}

	l.state = StateComputing
	start := time.Now()
	b := newPassBuilder(l.policy, l.deepStamp(sh), l.bounds)
	b.pass.shallow = sh
	var content geometry.Size
	switch l.policy.Mode {
	case ModeGrid:
		content = l.placeGrid(b)
	case ModePage:
		content = l.placePage(b)
	default:
		content = l.placeShelf(b)
	}
	pass := b.build(content)

	if l.pass != nil {
		l.prev = l.pass
	}
	l.pass = pass
	l.invalid = false
	l.state = StateValid
	observability.Layout().OnPrepare(l.policy.Mode.String(), pass.ItemCount(), time.Since(start))
	return pass
}

// Pass returns the current pass.
func (l *Layout) Pass() *Pass { return l.Prepare() }

// ContentSize returns the scrollable extent.
func (l *Layout) ContentSize() geometry.Size { return l.Prepare().ContentSize() }

// AttributesInRect returns visible items and headers intersecting r. During
// a page zoom the focused page is reported at its zoomed placement.
func (l *Layout) AttributesInRect(r geometry.Rect) []Attributes {
	out := l.Prepare().InRect(r)
	z := l.zoom
	if z == nil || !z.hasFrame {
		return out
	}

	hit := z.current.Frame().Intersects(r)
	merged := make([]Attributes, 0, len(out)+1)
	replaced := false
	for _, a := range out {
		if a.Kind == KindItem && a.IndexPath == z.ip {
			replaced = true
			if hit {
				merged = append(merged, z.current)
			}
			continue
		}
		merged = append(merged, a)
	}
	if hit && !replaced {
		merged = append(merged, z.current)
	}
	return merged
}

// AttributesForItem returns the placement of the item at ip.
func (l *Layout) AttributesForItem(ip IndexPath) (Attributes, bool) {
	if l.zoom != nil && ip == l.zoom.ip && l.zoom.hasFrame {
		return l.zoom.current, true
	}
	return l.current(false).Item(ip)
}

// AttributesForHeader returns the placement of the header at ip.
func (l *Layout) AttributesForHeader(ip IndexPath) (Attributes, bool) {
	return l.current(false).Header(ip)
}

// SectionAttributes returns the cache of one section.
func (l *Layout) SectionAttributes(section int) (*AttributeCache, bool) {
	return l.Prepare().Section(section)
}

// shallowStamp hashes the bounds, the section item counts and the source
// version when the source is Versioned.
func (l *Layout) shallowStamp() uint64 {
	d := xxhash.New()
	putF(d, l.bounds.Width)
	putF(d, l.bounds.Height)
	n := l.source.NumberOfSections()
	putU(d, uint64(n))
	for s := 0; s < n; s++ {
		putU(d, uint64(l.source.NumberOfItems(s)))
	}
	if v, ok := l.source.(Versioned); ok {
		putU(d, v.Version())
	}
	return d.Sum64()
}

// deepStamp extends sh with every item's size, rotation and physical scale.
// Versioned sources are trusted and cost nothing extra.
func (l *Layout) deepStamp(sh uint64) uint64 {
	if _, ok := l.source.(Versioned); ok {
		return sh
	}
	d := xxhash.New()
	putU(d, sh)
	for s, n := 0, l.source.NumberOfSections(); s < n; s++ {
		for i, c := 0, l.source.NumberOfItems(s); i < c; i++ {
			it := l.source.Item(Path(s, i))
			putF(d, it.IdealSize.Width)
			putF(d, it.IdealSize.Height)
			putF(d, it.Rotation)
			putF(d, it.PhysicalScale)
		}
	}
	return d.Sum64()
}

func putU(d *xxhash.Digest, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = d.Write(buf[:])
}

func putF(d *xxhash.Digest, v float64) { putU(d, math.Float64bits(v)) }

// contentWidth is the bounds width less the content insets.
func (l *Layout) contentWidth() float64 {
	return math.Max(0, l.bounds.Width-l.cfg.ContentInsets.Horizontal())
}

func (l *Layout) contentHeight() float64 {
	return math.Max(0, l.bounds.Height-l.cfg.ContentInsets.Vertical())
}

// previousFrame returns where ip sat in the last pass, if it was placed.
func (l *Layout) previousFrame(ip IndexPath) (Attributes, bool) {
	if l.pass == nil {
		return Attributes{}, false
	}
	return l.pass.Item(ip)
}
