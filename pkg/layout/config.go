package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/geometry"
)

// Default layout constants.
const (
	DefaultHeaderHeight = 50
	DefaultMaxDim       = 140
	DefaultPageSpacing  = 40
	DefaultItemSpacing  = 10
	DefaultGridItemSize = 140
	DefaultMinZoom      = 1
	DefaultMaxZoom      = 300
)

// Config holds the tunable metrics shared by every policy.
type Config struct {
	// HeaderHeight is the section header band height. Zero disables headers.
	HeaderHeight float64 `json:"header_height" toml:"header_height"`

	// MaxDim caps the longer side of a shelf item. Zero disables the cap.
	MaxDim float64 `json:"max_dim" toml:"max_dim"`

	// SectionInsets surround the item region of each section.
	SectionInsets geometry.Insets `json:"section_insets" toml:"section_insets"`

	// ContentInsets are subtracted from the bounds to get the content width.
	ContentInsets geometry.Insets `json:"content_insets" toml:"content_insets"`

	// PageSpacing separates shelves.
	PageSpacing float64 `json:"page_spacing" toml:"page_spacing"`

	// ItemSpacing surrounds each item; neighbours on a line are separated by
	// Left+Right, grid rows by Top+Bottom.
	ItemSpacing geometry.Insets `json:"item_spacing" toml:"item_spacing"`

	// GridItemSize is the fixed cell of grid layouts.
	GridItemSize geometry.Size `json:"grid_item_size" toml:"grid_item_size"`

	// MinZoom and MaxZoom bound the page zoom scale.
	MinZoom float64 `json:"min_zoom" toml:"min_zoom"`
	MaxZoom float64 `json:"max_zoom" toml:"max_zoom"`
}

// DefaultConfig returns the standard metrics.
func DefaultConfig() Config {
	return Config{
		HeaderHeight:  DefaultHeaderHeight,
		MaxDim:        DefaultMaxDim,
		SectionInsets: geometry.Insets{Top: 10, Left: 40, Bottom: 40, Right: 40},
		PageSpacing:   DefaultPageSpacing,
		ItemSpacing: geometry.Insets{
			Top: DefaultItemSpacing, Left: DefaultItemSpacing,
			Bottom: DefaultItemSpacing, Right: DefaultItemSpacing,
		},
		GridItemSize: geometry.Sz(DefaultGridItemSize, DefaultGridItemSize),
		MinZoom:      DefaultMinZoom,
		MaxZoom:      DefaultMaxZoom,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	dims := []struct {
		name string
		v    float64
	}{
		{"header_height", c.HeaderHeight},
		{"max_dim", c.MaxDim},
		{"page_spacing", c.PageSpacing},
		{"section_insets.top", c.SectionInsets.Top},
		{"section_insets.left", c.SectionInsets.Left},
		{"section_insets.bottom", c.SectionInsets.Bottom},
		{"section_insets.right", c.SectionInsets.Right},
		{"content_insets.top", c.ContentInsets.Top},
		{"content_insets.left", c.ContentInsets.Left},
		{"content_insets.bottom", c.ContentInsets.Bottom},
		{"content_insets.right", c.ContentInsets.Right},
		{"item_spacing.top", c.ItemSpacing.Top},
		{"item_spacing.left", c.ItemSpacing.Left},
		{"item_spacing.bottom", c.ItemSpacing.Bottom},
		{"item_spacing.right", c.ItemSpacing.Right},
		{"grid_item_size.width", c.GridItemSize.Width},
		{"grid_item_size.height", c.GridItemSize.Height},
	}
	for _, d := range dims {
		if err := errors.ValidateDimension(d.name, d.v); err != nil {
			return err
		}
	}
	if !(c.MinZoom > 0) || !(c.MaxZoom >= c.MinZoom) || math.IsInf(c.MaxZoom, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "zoom range must satisfy 0 < min_zoom <= max_zoom")
	}
	return nil
}

func (c Config) clampZoom(s float64) float64 {
	return geometry.Clamp(s, c.MinZoom, c.MaxZoom)
}
