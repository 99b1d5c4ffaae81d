package gesture

import (
	"math"
	"sort"
	"time"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// lowPass weights the previous scale direction when smoothing.
const lowPass = 0.8

// Phase is the tracker's recognition state.
type Phase int

const (
	PhasePossible Phase = iota
	PhaseChanged
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhasePossible:
		return "possible"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// Tracker derives pinch samples from raw touches. The zero value is not
// usable; call NewTracker.
type Tracker struct {
	touches map[int]geometry.Point
	phase   Phase

	scale     float64
	lastScale float64
	velocity  float64
	direction float64
	startSpan float64
	baseScale float64
	lastMove  time.Time

	start            geometry.Point
	adjustment       geometry.Point
	scaledAdjustment geometry.Point
	adjustWait       geometry.Point
}

// NewTracker returns an idle tracker.
func NewTracker() *Tracker {
	t := &Tracker{touches: make(map[int]geometry.Point)}
	t.reset()
	return t
}

func (t *Tracker) reset() {
	t.phase = PhasePossible
	t.scale, t.lastScale, t.baseScale = 1, 1, 1
	t.velocity, t.direction, t.startSpan = 0, 0, 0
	t.adjustment = geometry.Point{}
	t.scaledAdjustment = geometry.Point{}
	t.adjustWait = geometry.Point{}
}

// Phase returns the current recognition state.
func (t *Tracker) Phase() Phase { return t.phase }

// Scale returns the cumulative scale.
func (t *Tracker) Scale() float64 { return t.scale }

// ScaleDirection returns the low-pass filtered per-move scale delta.
// Positive means the fingers are spreading.
func (t *Tracker) ScaleDirection() float64 { return t.direction }

// ScaledAdjustment returns the adjustment divided by the scale at the time it
// was absorbed, for content that scales along with the gesture.
func (t *Tracker) ScaledAdjustment() geometry.Point { return t.scaledAdjustment }

// Location returns the averaged touch location plus any pending adjustment.
func (t *Tracker) Location() geometry.Point {
	var loc geometry.Point
	for _, p := range t.touches {
		loc = loc.Add(p)
	}
	if n := len(t.touches); n > 0 {
		loc = loc.Mul(1 / float64(n))
	}
	return loc.Add(t.adjustWait)
}

// ScaledFirstLocation is FirstLocation using the scaled adjustment.
func (t *Tracker) ScaledFirstLocation() geometry.Point {
	return t.Location().Add(t.scaledAdjustment.Mul(t.scale))
}

// Begin registers a new touch.
func (t *Tracker) Begin(id int, p geometry.Point, at time.Time) {
	if t.phase == PhaseEnded {
		t.reset()
	}
	before := t.Location()
	t.touches[id] = p
	after := t.Location()

	switch {
	case t.phase == PhasePossible && len(t.touches) >= 2:
		t.phase = PhaseChanged
		t.startSpan = t.span()
		t.start = after
		t.lastMove = at
	case t.phase == PhaseChanged:
		jump := before.Sub(after)
		t.adjustment = t.adjustment.Add(t.adjustWait).Add(jump)
		t.scaledAdjustment = t.adjustWait.Add(jump).Mul(1 / t.scale)
		t.adjustWait = geometry.Point{}
		t.rebase()
	}
}

// Move updates a touch's position and recomputes scale and velocity.
func (t *Tracker) Move(id int, p geometry.Point, at time.Time) {
	if _, ok := t.touches[id]; !ok {
		return
	}
	t.touches[id] = p
	if t.phase != PhaseChanged || t.startSpan <= 0 {
		return
	}

	t.lastScale = t.scale
	t.scale = t.baseScale * t.span() / t.startSpan
	if dt := at.Sub(t.lastMove).Seconds(); dt > 0 {
		t.velocity = (t.scale - t.lastScale) / dt
	}
	t.lastMove = at
	t.direction = t.direction*lowPass + (t.scale-t.lastScale)*(1-lowPass)
}

// End removes a touch. The gesture ends once no touches remain.
func (t *Tracker) End(id int) {
	if _, ok := t.touches[id]; !ok {
		return
	}
	before := t.Location()
	delete(t.touches, id)
	after := t.Location()

	t.adjustWait = t.adjustWait.Add(before.Sub(after))
	t.finishIfEmpty()
	if t.phase == PhaseChanged {
		t.rebase()
	}
}

// Cancel removes a touch without carrying its focal jump forward.
func (t *Tracker) Cancel(id int) {
	delete(t.touches, id)
	t.finishIfEmpty()
	if t.phase == PhaseChanged {
		t.rebase()
	}
}

func (t *Tracker) finishIfEmpty() {
	if len(t.touches) > 0 {
		return
	}
	if t.phase == PhaseChanged {
		t.phase = PhaseEnded
	}
	t.adjustment = geometry.Point{}
	t.scaledAdjustment = geometry.Point{}
	t.adjustWait = geometry.Point{}
}

// rebase keeps the reported scale continuous when the touch set changes.
func (t *Tracker) rebase() {
	t.baseScale = t.scale
	t.startSpan = t.span()
}

// span is the mean distance of the touches from their centroid.
func (t *Tracker) span() float64 {
	if len(t.touches) < 2 {
		return 0
	}
	var c geometry.Point
	for _, p := range t.touches {
		c = c.Add(p)
	}
	c = c.Mul(1 / float64(len(t.touches)))

	ids := make([]int, 0, len(t.touches))
	for id := range t.touches {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var sum float64
	for _, id := range ids {
		sum += t.touches[id].Distance(c)
	}
	return math.Max(sum/float64(len(ids)), geometry.Epsilon)
}

// Sample snapshots the gesture for consumers.
func (t *Tracker) Sample() Sample {
	loc := t.Location()
	first := loc.Add(t.adjustment)
	return Sample{
		Scale:         t.scale,
		Velocity:      t.velocity,
		Translation:   first.Sub(t.start),
		FirstLocation: first,
		Location:      loc,
		Adjustment:    t.adjustment,
	}
}
