package snapshot

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/matzehuels/shelfview/pkg/geometry"
	"github.com/matzehuels/shelfview/pkg/layout"
	"github.com/matzehuels/shelfview/pkg/transition"
)

// Snapshot is a serializable copy of one layout state.
type Snapshot struct {
	Scene         string          `json:"scene,omitempty"`
	Layout        string          `json:"layout"`
	From          string          `json:"from,omitempty"`
	Progress      *float64        `json:"progress,omitempty"`
	Bounds        geometry.Size   `json:"bounds"`
	ContentSize   geometry.Size   `json:"content_size"`
	ContentOffset *geometry.Point `json:"content_offset,omitempty"`
	Sections      []Section       `json:"sections"`
	Entries       []Entry         `json:"entries"`
}

// Section summarizes one section.
type Section struct {
	Section int           `json:"section"`
	Frame   geometry.Rect `json:"frame"`
	Items   int           `json:"items"`
	Hidden  int           `json:"hidden,omitempty"`
}

// Entry is one placed item or header.
type Entry struct {
	Kind     string         `json:"kind"`
	Section  int            `json:"section"`
	Item     int            `json:"item"`
	Frame    geometry.Rect  `json:"frame"`
	Center   geometry.Point `json:"center"`
	Size     geometry.Size  `json:"size"`
	Rotation float64        `json:"rotation,omitempty"`
	Alpha    float64        `json:"alpha"`
	Hidden   bool           `json:"hidden,omitempty"`
	ZIndex   int            `json:"z_index"`
	Scale    float64        `json:"scale"`
}

// IndexPath returns the entry's index path.
func (e Entry) IndexPath() layout.IndexPath { return layout.Path(e.Section, e.Item) }

// FromLayout captures the current pass of l.
func FromLayout(l *layout.Layout) *Snapshot {
	p := l.Prepare()
	return build(p.Policy().String(), p.Bounds(), p.ContentSize(), p.All())
}

// FromEngine captures the engine's current state, interpolated if a
// transition is in flight.
func FromEngine(e *transition.Engine) *Snapshot {
	cur := e.CurrentLayout()
	s := build(cur.Policy().String(), cur.Bounds(), e.ContentSize(), e.AllAttributes())
	if src, ok := e.Source(); ok {
		p := e.Progress()
		s.From = src.Policy().String()
		s.Progress = &p
		if off, ok := e.ContentOffset(); ok {
			s.ContentOffset = &off
		}
	}
	return s
}

func build(name string, bounds, content geometry.Size, attrs []layout.Attributes) *Snapshot {
	s := &Snapshot{
		Layout:      name,
		Bounds:      bounds,
		ContentSize: content,
		Entries:     make([]Entry, 0, len(attrs)),
	}

	sections := make(map[int]*Section)
	for _, a := range attrs {
		e := NewEntry(a)
		f := e.Frame
		s.Entries = append(s.Entries, e)

		sec, ok := sections[a.IndexPath.Section]
		if !ok {
			sec = &Section{Section: a.IndexPath.Section, Frame: f}
			sections[a.IndexPath.Section] = sec
		} else {
			sec.Frame = sec.Frame.Union(f)
		}
		if a.Kind == layout.KindItem {
			sec.Items++
			if a.Hidden {
				sec.Hidden++
			}
		}
	}

	for _, sec := range sections {
		s.Sections = append(s.Sections, *sec)
	}
	sort.Slice(s.Sections, func(i, j int) bool { return s.Sections[i].Section < s.Sections[j].Section })
	return s
}

// NewEntry flattens one attribute set.
func NewEntry(a layout.Attributes) Entry {
	return Entry{
		Kind:     a.Kind.String(),
		Section:  a.IndexPath.Section,
		Item:     a.IndexPath.Item,
		Frame:    a.Frame(),
		Center:   a.Center,
		Size:     a.Size,
		Rotation: a.Rotation,
		Alpha:    a.Alpha,
		Hidden:   a.Hidden,
		ZIndex:   a.ZIndex,
		Scale:    a.Scale,
	}
}

// Entries flattens attrs in order.
func Entries(attrs []layout.Attributes) []Entry {
	out := make([]Entry, len(attrs))
	for i, a := range attrs {
		out[i] = NewEntry(a)
	}
	return out
}

// Entry finds an entry by kind and index path.
func (s *Snapshot) Entry(kind layout.Kind, ip layout.IndexPath) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Kind == kind.String() && e.Section == ip.Section && e.Item == ip.Item {
			return e, true
		}
	}
	return Entry{}, false
}

// ItemCount returns the number of item entries.
func (s *Snapshot) ItemCount() int {
	n := 0
	for _, sec := range s.Sections {
		n += sec.Items
	}
	return n
}

// RenderJSON encodes the snapshot as indented JSON.
func RenderJSON(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ParseJSON decodes a snapshot produced by RenderJSON.
func ParseJSON(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
