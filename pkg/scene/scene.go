package scene

import (
	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/layout"
	"github.com/matzehuels/shelfview/pkg/transition"
)

// Default container size when a scene has no bounds.
const (
	DefaultWidth  = 390
	DefaultHeight = 844
)

// Scene is a decoded scene file.
type Scene struct {
	Name       string             `json:"name,omitempty" toml:"name"`
	Bounds     geometry.Size      `json:"bounds" toml:"bounds"`
	Config     layout.Config      `json:"config" toml:"config"`
	Transition transition.Options `json:"transition" toml:"transition"`
	Sections   []Section          `json:"sections" toml:"sections"`

	version uint64
}

// Section is one group of items.
type Section struct {
	Title        string   `json:"title,omitempty" toml:"title"`
	HeaderHeight *float64 `json:"header_height,omitempty" toml:"header_height"`
	Items        []Item   `json:"items" toml:"items"`
}

// Item describes one item.
type Item struct {
	Width    float64 `json:"width" toml:"width"`
	Height   float64 `json:"height" toml:"height"`
	Rotation float64 `json:"rotation,omitempty" toml:"rotation"`
	Scale    float64 `json:"scale,omitempty" toml:"scale"`
	Zoom     float64 `json:"zoom,omitempty" toml:"zoom"`
	Ignored  bool    `json:"ignored,omitempty" toml:"ignored"`
	Count    int     `json:"count,omitempty" toml:"count"`
}

// New returns an empty scene with default bounds and metrics.
func New() *Scene {
	return &Scene{
		Bounds:     geometry.Sz(DefaultWidth, DefaultHeight),
		Config:     layout.DefaultConfig(),
		Transition: transition.DefaultOptions(),
	}
}

// expand replaces repeated items by their copies.
func (s *Scene) expand() {
	for i := range s.Sections {
		var out []Item
		for _, it := range s.Sections[i].Items {
			n := it.Count
			if n < 1 {
				n = 1
			}
			it.Count = 0
			for j := 0; j < n; j++ {
				out = append(out, it)
			}
		}
		s.Sections[i].Items = out
	}
}

// Validate expands repeated items and checks the scene for values the
// layouts cannot use.
func (s *Scene) Validate() error {
	s.expand()
	if err := errors.ValidateDimension("bounds.width", s.Bounds.Width); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "invalid bounds")
	}
	if err := errors.ValidateDimension("bounds.height", s.Bounds.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "invalid bounds")
	}
	if err := s.Config.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "invalid config")
	}
	if err := s.Transition.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "invalid transition options")
	}
	for si, sec := range s.Sections {
		if sec.HeaderHeight != nil {
			if err := errors.ValidateDimension("header_height", *sec.HeaderHeight); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScene, err, "section %d", si)
			}
		}
		for ii, it := range sec.Items {
			if !(it.Width > 0) || !(it.Height > 0) {
				return errors.New(errors.ErrCodeInvalidScene, "section %d item %d: width and height must be positive", si, ii)
			}
			for _, v := range []struct {
				name string
				v    float64
			}{{"rotation", it.Rotation}, {"width", it.Width}, {"height", it.Height}} {
				if err := errors.ValidateFinite(v.name, v.v); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidScene, err, "section %d item %d", si, ii)
				}
			}
			if it.Scale < 0 || it.Zoom < 0 {
				return errors.New(errors.ErrCodeInvalidScene, "section %d item %d: scale and zoom cannot be negative", si, ii)
			}
		}
	}
	return nil
}

// ItemCount returns the number of items across all sections.
func (s *Scene) ItemCount() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Items)
	}
	return n
}

// =============================================================================
// layout.DataSource
// =============================================================================

func (s *Scene) NumberOfSections() int { return len(s.Sections) }

func (s *Scene) NumberOfItems(section int) int {
	if section < 0 || section >= len(s.Sections) {
		return 0
	}
	return len(s.Sections[section].Items)
}

func (s *Scene) Item(ip layout.IndexPath) layout.Item {
	it, ok := s.lookup(ip)
	if !ok {
		return layout.Item{}
	}
	return layout.Item{
		IdealSize:     geometry.Sz(it.Width, it.Height),
		Rotation:      it.Rotation,
		PhysicalScale: it.Scale,
	}
}

// Version changes whenever the scene is edited through its setters.
func (s *Scene) Version() uint64 { return s.version }

func (s *Scene) lookup(ip layout.IndexPath) (*Item, bool) {
	if ip.Section < 0 || ip.Section >= len(s.Sections) {
		return nil, false
	}
	items := s.Sections[ip.Section].Items
	if ip.Item < 0 || ip.Item >= len(items) {
		return nil, false
	}
	return &items[ip.Item], true
}

// =============================================================================
// Editing
// =============================================================================

// SetItemSize changes an item's ideal size.
func (s *Scene) SetItemSize(ip layout.IndexPath, size geometry.Size) error {
	it, ok := s.lookup(ip)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no item at %s", ip)
	}
	if !(size.Width > 0) || !(size.Height > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "item size must be positive")
	}
	it.Width, it.Height = size.Width, size.Height
	s.version++
	return nil
}

// SetIgnored marks an item as excluded from flow.
func (s *Scene) SetIgnored(ip layout.IndexPath, ignored bool) error {
	it, ok := s.lookup(ip)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no item at %s", ip)
	}
	it.Ignored = ignored
	s.version++
	return nil
}

// AppendItem adds an item to the end of a section.
func (s *Scene) AppendItem(section int, it Item) error {
	if section < 0 || section >= len(s.Sections) {
		return errors.New(errors.ErrCodeNotFound, "no section %d", section)
	}
	s.Sections[section].Items = append(s.Sections[section].Items, it)
	s.version++
	return nil
}

// =============================================================================
// Layout wiring
// =============================================================================

// Delegate returns callbacks answering from the scene. Callbacks are only
// installed for features the scene uses.
func (s *Scene) Delegate() layout.Delegate {
	var d layout.Delegate

	for _, sec := range s.Sections {
		if sec.HeaderHeight != nil {
			d.HeaderHeight = func(section int) float64 {
				if section >= 0 && section < len(s.Sections) && s.Sections[section].HeaderHeight != nil {
					return *s.Sections[section].HeaderHeight
				}
				return s.Config.HeaderHeight
			}
			break
		}
	}

	d.ShouldIgnore = func(ip layout.IndexPath) bool {
		it, ok := s.lookup(ip)
		return ok && it.Ignored
	}

	for _, sec := range s.Sections {
		for _, it := range sec.Items {
			if it.Zoom > 0 {
				d.ZoomScale = func(ip layout.IndexPath) float64 {
					if it, ok := s.lookup(ip); ok && it.Zoom > 0 {
						return it.Zoom
					}
					return 1
				}
				return d
			}
		}
	}
	return d
}

// Layout builds a layout for policy over the scene.
func (s *Scene) Layout(policy layout.Policy) *layout.Layout {
	return layout.New(policy, s,
		layout.WithConfig(s.Config),
		layout.WithDelegate(s.Delegate()),
		layout.WithBounds(s.Bounds),
	)
}
