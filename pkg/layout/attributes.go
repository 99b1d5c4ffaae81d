package layout

import (
	"fmt"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// IndexPath identifies an item by section and position.
type IndexPath struct {
	Section int `json:"section"`
	Item    int `json:"item"`
}

// Path is shorthand for IndexPath{Section: section, Item: item}.
func Path(section, item int) IndexPath { return IndexPath{Section: section, Item: item} }

// String formats ip as "section.item", e.g. "0.3".
func (ip IndexPath) String() string { return fmt.Sprintf("%d.%d", ip.Section, ip.Item) }

// Kind distinguishes items from supplementary header views.
type Kind int

const (
	KindItem Kind = iota
	KindHeader
)

func (k Kind) String() string {
	if k == KindHeader {
		return "header"
	}
	return "item"
}

// Attributes is the placement of one item or header. Values are produced by a
// pass and never changed afterwards.
type Attributes struct {
	IndexPath IndexPath      `json:"index_path"`
	Kind      Kind           `json:"kind"`
	Center    geometry.Point `json:"center"`
	// Size is the unrotated displayed size.
	Size     geometry.Size `json:"size"`
	Rotation float64       `json:"rotation"`
	Alpha    float64       `json:"alpha"`
	Hidden   bool          `json:"hidden"`
	ZIndex   int           `json:"z_index"`
	// Scale is the page zoom applied to Size; 1 outside page layouts.
	Scale float64 `json:"scale"`
}

// Frame returns the axis-aligned bounding box of Size rotated around Center.
func (a Attributes) Frame() geometry.Rect {
	return geometry.RectAround(a.Center, geometry.BoundingSize(a.Size, a.Rotation))
}

type key struct {
	kind Kind
	ip   IndexPath
}

func (a Attributes) key() key { return key{kind: a.Kind, ip: a.IndexPath} }
