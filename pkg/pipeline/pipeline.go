// Package pipeline runs the scene → layout → snapshot → render pipeline.
//
// It is shared by the CLI and the HTTP server so both compute and cache
// layouts the same way.
//
// # Stages
//
//  1. Load: read a scene file (or take an in-memory scene) and validate it
//  2. Layout: build the requested layout, or an interpolated transition
//     frame between two layouts, and capture it as a snapshot
//  3. Render: encode the snapshot in the requested formats (SVG, JSON)
//
// Stages 2 and 3 are cached through [cache.Cache], keyed by the scene's
// content hash and the options that affect each result.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    ScenePath: "library.toml",
//	    Layout:    "grid[0]",
//	    From:      "shelf",
//	    Progress:  0.5,
//	    Formats:   []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/shelfview/pkg/cache"
	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/layout"
	"github.com/matzehuels/shelfview/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultLayout is the layout computed when none is requested.
const DefaultLayout = "shelf"

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. It supports JSON for API requests.
type Options struct {
	// Load options
	ScenePath string       `json:"scene_path,omitempty"`
	Scene     *scene.Scene `json:"-"`

	// Layout options
	Layout   string          `json:"layout,omitempty"`
	From     string          `json:"from,omitempty"`
	Progress float64         `json:"progress,omitempty"`
	Focal    *geometry.Point `json:"focal,omitempty"`
	Width    float64         `json:"width,omitempty"`
	Height   float64         `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Hidden  bool     `json:"hidden,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	policy    layout.Policy
	from      *layout.Policy
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Scene        *scene.Scene
	SceneHash    string
	Snapshot     []byte
	SnapshotHash string
	Artifacts    map[string][]byte
	Stats        Stats
	CacheInfo    CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Sections   int
	Items      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool `json:"layout_hit"`
	RenderHit bool `json:"render_hit"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ScenePath == "" && o.Scene == nil {
		return errors.New(errors.ErrCodeInvalidInput, "scene or scene_path is required")
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout parses the layout policies and checks the bounds and
// progress.
func (o *Options) ValidateForLayout() error {
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	p, err := layout.ParsePolicy(o.Layout)
	if err != nil {
		return err
	}
	o.policy = p
	o.Layout = p.String()

	o.from = nil
	if o.From != "" {
		f, err := layout.ParsePolicy(o.From)
		if err != nil {
			return err
		}
		if f == p {
			return errors.New(errors.ErrCodeInvalidInput, "from and layout are both %s", p)
		}
		o.from = &f
		o.From = f.String()
		if err := errors.ValidateProgress(o.Progress); err != nil {
			return err
		}
		o.Progress = geometry.Clamp(o.Progress, 0, 1)
	} else if o.Progress != 0 {
		return errors.New(errors.ErrCodeInvalidInput, "progress requires from")
	}

	if err := errors.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", o.Height); err != nil {
		return err
	}
	return nil
}

// ValidateForRender sets the default format and checks the list.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	return ValidateFormats(o.Formats)
}

// Policy returns the parsed destination layout. Valid after ValidateForLayout.
func (o *Options) Policy() layout.Policy { return o.policy }

// FromPolicy returns the parsed transition source, if any.
func (o *Options) FromPolicy() (layout.Policy, bool) {
	if o.from == nil {
		return layout.Policy{}, false
	}
	return *o.from, true
}

// IsTransition reports whether the run captures a transition frame.
func (o *Options) IsTransition() bool { return o.from != nil }

// SnapshotKeyOpts returns cache key options for the layout stage.
func (o *Options) SnapshotKeyOpts(bounds geometry.Size) cache.SnapshotKeyOpts {
	k := cache.SnapshotKeyOpts{
		Layout: o.Layout,
		Width:  bounds.Width,
		Height: bounds.Height,
	}
	if o.from != nil {
		k.From = o.From
		k.Progress = o.Progress
	}
	return k
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Hidden: o.Hidden, Labels: o.Labels}
}

func (o *Options) String() string {
	if o.from != nil {
		return fmt.Sprintf("%s→%s@%.2f", o.From, o.Layout, o.Progress)
	}
	return o.Layout
}
