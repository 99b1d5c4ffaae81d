package transition

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/layout"
	"github.com/matzehuels/shelfview/pkg/observability"
)

// State is the engine's position in the transition lifecycle.
type State int

const (
	StateIdle State = iota
	StateInteractive
	StateCommitting
	StateCancelling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInteractive:
		return "interactive"
	case StateCommitting:
		return "committing"
	case StateCancelling:
		return "cancelling"
	}
	return "unknown"
}

// Anchor is the item and the fractional position within it that stays under
// the focal point while progress changes.
type Anchor struct {
	IndexPath layout.IndexPath `json:"index_path"`
	Percent   geometry.Point   `json:"percent"`
	// Focal is relative to the viewport origin.
	Focal geometry.Point `json:"focal"`
	// Found is false when the source pass had no visible item to anchor on.
	Found bool `json:"found"`
}

// BeginOptions describes where the user is looking when a transition starts.
type BeginOptions struct {
	// Viewport is the visible content rect. Zero means the layout bounds at
	// offset zero.
	Viewport geometry.Rect
	// Focal is the gesture's focal point relative to Viewport. Nil selects
	// the viewport center.
	Focal *geometry.Point
}

// Finalized describes a transition that has settled.
type Finalized struct {
	From, To  *layout.Layout
	Progress  float64
	Committed bool
}

// Observer receives change notifications. Every field is optional.
type Observer struct {
	// WillChange fires before a switch begins.
	WillChange func(to, from *layout.Layout)
	// DidChange fires after a switch commits.
	DidChange func(to, from *layout.Layout)
	// DidFinalize fires once an interactive transition has committed or
	// been cancelled.
	DidFinalize func(f Finalized)
}

// Engine owns the active layout and any in-flight transition.
// Like layouts, an Engine is owned by a single goroutine.
type Engine struct {
	active   *layout.Layout
	observer Observer
	opts     Options
	state    State
	tr       *interactive
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver installs change notifications.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithOptions replaces the gesture mapping options.
func WithOptions(o Options) Option {
	return func(e *Engine) { e.opts = o }
}

// New returns an idle engine showing active.
func New(active *layout.Layout, opts ...Option) *Engine {
	e := &Engine{active: active, opts: DefaultOptions()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// ActiveLayout returns the committed layout, ignoring any pending switch.
func (e *Engine) ActiveLayout() *layout.Layout { return e.active }

// CurrentLayout returns the destination while interactive, otherwise the
// active layout.
func (e *Engine) CurrentLayout() *layout.Layout {
	if e.tr != nil {
		return e.tr.dest
	}
	return e.active
}

// Source returns the layout being transitioned away from, if any.
func (e *Engine) Source() (*layout.Layout, bool) {
	if e.tr == nil {
		return nil, false
	}
	return e.tr.source, true
}

// Anchor returns the anchor of the in-flight transition.
func (e *Engine) Anchor() (Anchor, bool) {
	if e.tr == nil {
		return Anchor{}, false
	}
	return e.tr.anchor, true
}

// SetLayout switches to l without an interactive phase.
func (e *Engine) SetLayout(l *layout.Layout) error {
	if l == nil {
		return errors.New(errors.ErrCodeInvalidInput, "layout is nil")
	}
	if e.state != StateIdle {
		return errors.New(errors.ErrCodeTransitionInProgress, "cannot switch layouts during a transition")
	}
	from := e.active
	if l == from {
		return nil
	}
	if from != nil {
		l.SetBounds(from.Bounds())
	}
	if e.observer.WillChange != nil {
		e.observer.WillChange(l, from)
	}
	e.active = l
	if e.observer.DidChange != nil {
		e.observer.DidChange(l, from)
	}
	return nil
}

// Begin starts an interactive transition to dest and returns its anchor.
func (e *Engine) Begin(dest *layout.Layout, opts BeginOptions) (Anchor, error) {
	if dest == nil {
		return Anchor{}, errors.New(errors.ErrCodeInvalidInput, "destination layout is nil")
	}
	if e.state != StateIdle {
		return Anchor{}, errors.New(errors.ErrCodeTransitionInProgress, "a transition is already in progress")
	}
	if dest == e.active {
		return Anchor{}, errors.New(errors.ErrCodeInvalidInput, "destination is already the active layout")
	}

	source := e.active
	dest.SetBounds(source.Bounds())
	src, dst := source.Prepare(), dest.Prepare()

	vp := opts.Viewport
	if vp.Width == 0 && vp.Height == 0 {
		b := source.Bounds()
		vp = geometry.R(vp.X, vp.Y, b.Width, b.Height)
	}
	focal := geometry.Pt(vp.Width/2, vp.Height/2)
	if opts.Focal != nil {
		focal = *opts.Focal
	}
	anchor := pickAnchor(src, vp.Origin().Add(focal))
	anchor.Focal = focal

	if e.observer.WillChange != nil {
		e.observer.WillChange(dest, source)
	}
	e.tr = &interactive{
		source:   source,
		dest:     dest,
		src:      src,
		dst:      dst,
		anchor:   anchor,
		viewport: vp,
		zoomIn:   dest.Policy().Mode >= source.Policy().Mode,
	}
	e.state = StateInteractive
	observability.Transition().OnBegin(source.Policy().String(), dest.Policy().String())
	return anchor, nil
}

func pickAnchor(src *layout.Pass, pt geometry.Point) Anchor {
	ip, ok := src.Nearest(pt)
	if !ok {
		return Anchor{}
	}
	a, _ := src.Item(ip)
	f := a.Frame()
	return Anchor{
		IndexPath: ip,
		Percent: geometry.Pt(
			(pt.X-f.X)/math.Max(f.Width, geometry.Epsilon),
			(pt.Y-f.Y)/math.Max(f.Height, geometry.Epsilon),
		),
		Found: true,
	}
}

// SetProgress moves the transition, clamped to [0, 1]. It does nothing while
// idle.
func (e *Engine) SetProgress(p float64) {
	if e.tr == nil {
		return
	}
	if math.IsNaN(p) {
		p = 0
	}
	e.tr.progress = geometry.Clamp(p, 0, 1)
}

// Progress returns the current progress, or 0 while idle.
func (e *Engine) Progress() float64 {
	if e.tr == nil {
		return 0
	}
	return e.tr.progress
}

// Finish commits the transition: the destination becomes active and the
// source is released. It returns false when idle.
func (e *Engine) Finish() bool {
	if e.state != StateInteractive {
		return false
	}
	t := e.tr
	e.state = StateCommitting
	e.active = t.dest
	e.tr = nil

	observability.Transition().OnFinish(t.source.Policy().String(), t.dest.Policy().String(), t.progress)
	if e.observer.DidChange != nil {
		e.observer.DidChange(t.dest, t.source)
	}
	e.finalize(Finalized{From: t.source, To: t.dest, Progress: t.progress, Committed: true})
	return true
}

// Cancel abandons the transition and restores the source layout with the
// pass it already had. It returns false when idle.
func (e *Engine) Cancel() bool {
	if e.state != StateInteractive {
		return false
	}
	t := e.tr
	e.state = StateCancelling
	e.active = t.source
	e.tr = nil

	observability.Transition().OnCancel(t.source.Policy().String(), t.dest.Policy().String(), t.progress)
	e.finalize(Finalized{From: t.source, To: t.dest, Progress: t.progress})
	return true
}

func (e *Engine) finalize(f Finalized) {
	if e.observer.DidFinalize != nil {
		e.observer.DidFinalize(f)
	}
	e.state = StateIdle
}
