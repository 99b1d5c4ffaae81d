package layout

import "github.com/matzehuels/shelfview/pkg/geometry"

// AttributeCache holds the attributes of one section of one pass.
//
// Append is the only mutator. The frame is the union of every appended
// attribute's frame and is maintained on each append. Visible and hidden are
// disjoint views whose union is All.
type AttributeCache struct {
	frame    geometry.Rect
	hasFrame bool
	all      []Attributes
	visible  []Attributes
	hidden   []Attributes
	index    map[key]int
}

// NewAttributeCache returns a cache seeded with the given attributes.
func NewAttributeCache(seed ...Attributes) *AttributeCache {
	c := &AttributeCache{index: make(map[key]int, len(seed))}
	for _, a := range seed {
		c.Append(a)
	}
	return c
}

// Append adds a to the cache and extends the frame to cover it.
func (c *AttributeCache) Append(a Attributes) {
	if c.index == nil {
		c.index = make(map[key]int)
	}
	f := a.Frame()
	if c.hasFrame {
		c.frame = c.frame.Union(f)
	} else {
		c.frame, c.hasFrame = f, true
	}
	c.index[a.key()] = len(c.all)
	c.all = append(c.all, a)
	if a.Hidden {
		c.hidden = append(c.hidden, a)
	} else {
		c.visible = append(c.visible, a)
	}
}

// Frame returns the union of all appended frames, or the zero rect when empty.
func (c *AttributeCache) Frame() geometry.Rect { return c.frame }

// Len returns the number of appended attributes.
func (c *AttributeCache) Len() int { return len(c.all) }

// All returns every attribute in append order. Callers must not modify it.
func (c *AttributeCache) All() []Attributes { return c.all }

// Visible returns the attributes not marked hidden.
func (c *AttributeCache) Visible() []Attributes { return c.visible }

// Hidden returns the attributes marked hidden.
func (c *AttributeCache) Hidden() []Attributes { return c.hidden }

// Lookup finds the attributes of kind at ip.
func (c *AttributeCache) Lookup(kind Kind, ip IndexPath) (Attributes, bool) {
	i, ok := c.index[key{kind: kind, ip: ip}]
	if !ok {
		return Attributes{}, false
	}
	return c.all[i], true
}

// Intersecting returns the visible attributes whose frame intersects r.
func (c *AttributeCache) Intersecting(r geometry.Rect) []Attributes {
	if !c.hasFrame || !c.frame.Intersects(r) {
		return nil
	}
	var out []Attributes
	for _, a := range c.visible {
		if a.Frame().Intersects(r) {
			out = append(out, a)
		}
	}
	return out
}
