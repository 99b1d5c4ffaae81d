package snapshot

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/matzehuels/shelfview/pkg/geometry"
)

var palette = []string{"#4e79a7", "#f28e2b", "#59a14f", "#e15759", "#76b7b2", "#edc948", "#b07aa1"}

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	hidden   bool
	labels   bool
	viewport *geometry.Rect
}

// WithHidden draws hidden entries as dashed outlines.
func WithHidden() SVGOption { return func(r *svgRenderer) { r.hidden = true } }

// WithLabels writes each item's index path inside it.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithViewport outlines the visible rect.
func WithViewport(v geometry.Rect) SVGOption { return func(r *svgRenderer) { r.viewport = &v } }

// RenderSVG draws the snapshot. Entries are painted in z order.
func RenderSVG(s *Snapshot, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w := math.Max(s.ContentSize.Width, s.Bounds.Width)
	h := math.Max(s.ContentSize.Height, 1)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%.1f" height="%.1f" fill="#fafafa"/>`+"\n", w, h)

	entries := append([]Entry(nil), s.Entries...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ZIndex < entries[j].ZIndex })

	for _, e := range entries {
		if e.Kind == "header" {
			r.renderHeader(&buf, e)
		}
	}
	for _, e := range entries {
		if e.Kind == "item" {
			r.renderItem(&buf, e)
		}
	}
	if r.viewport != nil {
		v := *r.viewport
		fmt.Fprintf(&buf, `  <rect class="viewport" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#d62728" stroke-width="2"/>`+"\n",
			v.X, v.Y, v.Width, v.Height)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderHeader(buf *bytes.Buffer, e Entry) {
	if e.Hidden && !r.hidden {
		return
	}
	x, y := e.Center.X-e.Size.Width/2, e.Center.Y-e.Size.Height/2
	fmt.Fprintf(buf, `  <rect class="header" id="header-%d-%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#dddddd" fill-opacity="%.2f"%s/>`+"\n",
		e.Section, e.Item, x, y, e.Size.Width, e.Size.Height, e.Alpha, rotate(e))
}

func (r *svgRenderer) renderItem(buf *bytes.Buffer, e Entry) {
	x, y := e.Center.X-e.Size.Width/2, e.Center.Y-e.Size.Height/2
	if e.Hidden {
		if !r.hidden {
			return
		}
		fmt.Fprintf(buf, `  <rect class="item hidden" id="item-%d-%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#999999" stroke-dasharray="4 3"%s/>`+"\n",
			e.Section, e.Item, x, y, e.Size.Width, e.Size.Height, rotate(e))
		return
	}

	color := palette[((e.Section%len(palette))+len(palette))%len(palette)]
	fmt.Fprintf(buf, `  <rect class="item" id="item-%d-%d" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%.2f" stroke="#333333"%s/>`+"\n",
		e.Section, e.Item, x, y, e.Size.Width, e.Size.Height, color, e.Alpha, rotate(e))
	if r.labels {
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="monospace" font-size="12" text-anchor="middle" dominant-baseline="middle">%d.%d</text>`+"\n",
			e.Center.X, e.Center.Y, e.Section, e.Item)
	}
}

func rotate(e Entry) string {
	if e.Rotation == 0 {
		return ""
	}
	return fmt.Sprintf(` transform="rotate(%.3f %.2f %.2f)"`, e.Rotation*180/math.Pi, e.Center.X, e.Center.Y)
}
