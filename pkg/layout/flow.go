package layout

import (
	"math"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

// placement is a policy's answer for one item.
type placement struct {
	size     geometry.Size // unrotated displayed size
	rotation float64
	scale    float64
	// reserve is the box the item occupies in flow coordinates; the item is
	// centered inside it.
	reserve geometry.Size
}

// flowSpec describes one section's item region. Flow coordinates stack lines
// along y and pack items along x; page layouts with horizontal paging
// transpose the result.
type flowSpec struct {
	section int
	origin  float64 // y of the first line
	lead    float64 // x of the first item on a line
	avail   float64 // line extent
	gap     float64 // between items on a line
	lineGap float64 // between lines
	// capacity caps items per line; zero packs greedily by avail.
	capacity int
	// transposed is set when the caller swaps axes after flowing.
	transposed bool
	measure  func(ip IndexPath, it Item) placement
}

type flowItem struct {
	ip     IndexPath
	place  placement
	x      float64
	hidden bool
	center geometry.Point
}

// flow places one section's items and returns them in index order together
// with the y just past the last line. With no visible items the end is the
// origin.
func (l *Layout) flow(spec flowSpec) ([]Attributes, float64) {
	count := l.source.NumberOfItems(spec.section)
	items := make([]flowItem, 0, count)

	y := spec.origin
	end := spec.origin
	var line []int
	lineWidth, lineHeight := 0.0, 0.0

	closeLine := func() {
		if len(line) == 0 {
			return
		}
		for _, i := range line {
			fi := &items[i]
			fi.center = geometry.Pt(fi.x+fi.place.reserve.Width/2, y+lineHeight/2)
		}
		end = y + lineHeight
		y = end + spec.lineGap
		line = line[:0]
		lineWidth, lineHeight = 0, 0
	}

	for i := 0; i < count; i++ {
		ip := Path(spec.section, i)
		pl := spec.measure(ip, l.item(ip))

		if l.ignored(ip) {
			fi := flowItem{ip: ip, place: pl, hidden: true}
			if prev, ok := l.previousFrame(ip); ok {
				fi.center = prev.Center
				if spec.transposed {
					fi.center = geometry.Pt(prev.Center.Y, prev.Center.X)
				}
			} else {
				x := spec.lead + lineWidth
				if len(line) > 0 {
					x += spec.gap
				}
				fi.center = geometry.Pt(x+pl.reserve.Width/2, y+pl.reserve.Height/2)
			}
			items = append(items, fi)
			continue
		}

		if len(line) > 0 {
			full := spec.capacity > 0 && len(line) >= spec.capacity
			over := spec.capacity == 0 && lineWidth+spec.gap+pl.reserve.Width > spec.avail
			if full || over {
				closeLine()
			}
		}

		x := spec.lead + lineWidth
		if len(line) > 0 {
			x += spec.gap
			lineWidth += spec.gap
		}
		lineWidth += pl.reserve.Width
		lineHeight = math.Max(lineHeight, pl.reserve.Height)
		line = append(line, len(items))
		items = append(items, flowItem{ip: ip, place: pl, x: x})
	}
	closeLine()

	out := make([]Attributes, len(items))
	for i, fi := range items {
		a := Attributes{
			IndexPath: fi.ip,
			Kind:      KindItem,
			Center:    fi.center,
			Size:      fi.place.size,
			Rotation:  fi.place.rotation,
			Alpha:     1,
			ZIndex:    count - i,
			Scale:     fi.place.scale,
		}
		if fi.hidden {
			a.Hidden = true
			a.Alpha = 0
		}
		out[i] = a
	}
	return out, end
}

// header returns the full-width header band of section at y.
func (l *Layout) header(section int, y, height float64) Attributes {
	return Attributes{
		IndexPath: Path(section, 0),
		Kind:      KindHeader,
		Center:    geometry.Pt(l.bounds.Width/2, y+height/2),
		Size:      geometry.Sz(l.bounds.Width, height),
		Alpha:     1,
		Scale:     1,
	}
}
