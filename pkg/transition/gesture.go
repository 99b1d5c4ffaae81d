package transition

import (
	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/gesture"
)

// Default gesture mapping.
const (
	DefaultTargetScale    = 2.5
	DefaultCommitProgress = 0.5
	DefaultCommitVelocity = 0.5
)

// Options maps pinch gestures onto transition progress.
type Options struct {
	// TargetScale is the pinch scale at which progress reaches 1 when
	// zooming in; zooming out uses its reciprocal.
	TargetScale float64 `json:"target_scale" toml:"target_scale"`

	// CommitProgress is the progress beyond which a released gesture
	// commits.
	CommitProgress float64 `json:"commit_progress" toml:"commit_progress"`

	// CommitVelocity is the scale velocity (per second) toward the
	// destination that commits regardless of progress. The same speed away
	// from it cancels.
	CommitVelocity float64 `json:"commit_velocity" toml:"commit_velocity"`
}

// DefaultOptions returns the standard gesture mapping.
func DefaultOptions() Options {
	return Options{
		TargetScale:    DefaultTargetScale,
		CommitProgress: DefaultCommitProgress,
		CommitVelocity: DefaultCommitVelocity,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if !(o.TargetScale > 1) {
		return errors.New(errors.ErrCodeInvalidInput, "target_scale must be greater than 1 (got %g)", o.TargetScale)
	}
	if err := errors.ValidateProgress(o.CommitProgress); err != nil {
		return err
	}
	return errors.ValidateDimension("commit_velocity", o.CommitVelocity)
}

// ProgressForScale maps a cumulative pinch scale to progress. Layouts that
// show items larger (shelf to grid to page) are reached by spreading the
// fingers; the reverse direction by pinching.
func (e *Engine) ProgressForScale(scale float64) float64 {
	if e.tr == nil {
		return 0
	}
	target := e.opts.TargetScale
	if !(target > 1) {
		target = DefaultTargetScale
	}
	if !e.tr.zoomIn {
		target = 1 / target
	}
	return geometry.Clamp(geometry.Remap(scale, 1, target, 0, 1), 0, 1)
}

// UpdateGesture applies a gesture sample and returns the new progress.
func (e *Engine) UpdateGesture(s gesture.Sample) float64 {
	e.SetProgress(e.ProgressForScale(s.Scale))
	return e.Progress()
}

// EndGesture settles the transition when the fingers lift. It commits when
// the gesture is flung toward the destination, or when progress is past
// CommitProgress and the gesture is not flung back; otherwise it cancels. It
// reports whether the transition committed.
func (e *Engine) EndGesture(s gesture.Sample) bool {
	if e.tr == nil {
		return false
	}
	e.UpdateGesture(s)

	v := s.Velocity
	if !e.tr.zoomIn {
		v = -v
	}
	commit := v > e.opts.CommitVelocity ||
		(e.tr.progress > e.opts.CommitProgress && v >= -e.opts.CommitVelocity)
	if commit {
		return e.Finish()
	}
	e.Cancel()
	return false
}
