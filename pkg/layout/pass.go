package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// Pass is the immutable result of one layout computation.
type Pass struct {
	policy   Policy
	stamp    uint64
	shallow  uint64
	bounds   geometry.Size
	content  geometry.Size
	sections map[int]*AttributeCache
	order    []int
	index    map[key]Attributes
}

// Policy returns the policy the pass was computed with.
func (p *Pass) Policy() Policy { return p.policy }

// Stamp returns the version stamp the pass was computed against.
func (p *Pass) Stamp() uint64 { return p.stamp }

// Bounds returns the container size the pass was computed for.
func (p *Pass) Bounds() geometry.Size { return p.bounds }

// ContentSize returns the scrollable extent.
func (p *Pass) ContentSize() geometry.Size { return p.content }

// Sections returns the laid out section numbers in ascending order.
func (p *Pass) Sections() []int { return p.order }

// Section returns the cache of one section.
func (p *Pass) Section(section int) (*AttributeCache, bool) {
	c, ok := p.sections[section]
	return c, ok
}

// Item returns the attributes of the item at ip.
func (p *Pass) Item(ip IndexPath) (Attributes, bool) {
	a, ok := p.index[key{kind: KindItem, ip: ip}]
	return a, ok
}

// Header returns the attributes of the header at ip.
func (p *Pass) Header(ip IndexPath) (Attributes, bool) {
	a, ok := p.index[key{kind: KindHeader, ip: ip}]
	return a, ok
}

// Lookup returns the attributes of kind at ip.
func (p *Pass) Lookup(kind Kind, ip IndexPath) (Attributes, bool) {
	a, ok := p.index[key{kind: kind, ip: ip}]
	return a, ok
}

// All returns every attribute, section by section in append order.
func (p *Pass) All() []Attributes {
	out := make([]Attributes, 0, len(p.index))
	for _, s := range p.order {
		out = append(out, p.sections[s].All()...)
	}
	return out
}

// InRect returns the visible attributes intersecting r.
func (p *Pass) InRect(r geometry.Rect) []Attributes {
	var out []Attributes
	for _, s := range p.order {
		out = append(out, p.sections[s].Intersecting(r)...)
	}
	return out
}

// ItemCount returns the number of item attributes, hidden included.
func (p *Pass) ItemCount() int {
	n := 0
	for k := range p.index {
		if k.kind == KindItem {
			n++
		}
	}
	return n
}

// Nearest returns the visible item whose frame contains pt, or failing that
// the visible item whose center is closest to pt.
func (p *Pass) Nearest(pt geometry.Point) (IndexPath, bool) {
	best, found := IndexPath{}, false
	bestDist := math.Inf(1)
	for _, s := range p.order {
		for _, a := range p.sections[s].Visible() {
			if a.Kind != KindItem {
				continue
			}
			if a.Frame().Contains(pt) {
				return a.IndexPath, true
			}
			if d := a.Center.DistanceSquared(pt); d < bestDist {
				best, bestDist, found = a.IndexPath, d, true
			}
		}
	}
	return best, found
}

// passBuilder accumulates section caches before freezing them into a Pass.
type passBuilder struct {
	pass *Pass
}

func newPassBuilder(policy Policy, stamp uint64, bounds geometry.Size) *passBuilder {
	return &passBuilder{pass: &Pass{
		policy:   policy,
		stamp:    stamp,
		bounds:   bounds,
		sections: make(map[int]*AttributeCache),
		index:    make(map[key]Attributes),
	}}
}

func (b *passBuilder) add(section int, a Attributes) {
	c, ok := b.pass.sections[section]
	if !ok {
		c = NewAttributeCache()
		b.pass.sections[section] = c
		b.pass.order = append(b.pass.order, section)
	}
	c.Append(a)
	b.pass.index[a.key()] = a
}

// touch registers an empty section so it is reported even without attributes.
func (b *passBuilder) touch(section int) {
	if _, ok := b.pass.sections[section]; !ok {
		b.pass.sections[section] = NewAttributeCache()
		b.pass.order = append(b.pass.order, section)
	}
}

func (b *passBuilder) build(content geometry.Size) *Pass {
	b.pass.content = content
	return b.pass
}
