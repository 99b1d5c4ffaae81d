package pipeline

import (
	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/layout"
	"github.com/matzehuels/shelfview/pkg/scene"
	"github.com/matzehuels/shelfview/pkg/snapshot"
	"github.com/matzehuels/shelfview/pkg/transition"
)

// Bounds returns the container size for sc after width and height overrides.
func Bounds(sc *scene.Scene, opts Options) geometry.Size {
	b := sc.Bounds
	if opts.Width > 0 {
		b.Width = opts.Width
	}
	if opts.Height > 0 {
		b.Height = opts.Height
	}
	return b
}

// ComputeSnapshot lays out sc and captures the result. With a From policy
// the snapshot is the transition frame at opts.Progress.
func ComputeSnapshot(sc *scene.Scene, opts Options) (*snapshot.Snapshot, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	bounds := Bounds(sc, opts)

	dest := sc.Layout(opts.Policy())
	dest.SetBounds(bounds)

	from, ok := opts.FromPolicy()
	if !ok {
		snap := snapshot.FromLayout(dest)
		snap.Scene = sc.Name
		return snap, nil
	}

	source := sc.Layout(from)
	source.SetBounds(bounds)
	e, err := NewEngine(sc, source, dest, opts.Focal)
	if err != nil {
		return nil, err
	}
	e.SetProgress(opts.Progress)

	snap := snapshot.FromEngine(e)
	snap.Scene = sc.Name
	return snap, nil
}

// NewEngine starts an interactive transition from source to dest using the
// scene's gesture options.
func NewEngine(sc *scene.Scene, source, dest *layout.Layout, focal *geometry.Point) (*transition.Engine, error) {
	e := transition.New(source, transition.WithOptions(sc.Transition))
	if _, err := e.Begin(dest, transition.BeginOptions{Focal: focal}); err != nil {
		return nil, err
	}
	return e, nil
}
