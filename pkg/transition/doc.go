// Package transition drives interactive, cancelable switches between two
// layouts.
//
// An [Engine] owns the active [layout.Layout]. Begin captures the passes of
// the active and destination layouts, computed against the same bounds, and
// picks an anchor: the item under the focal point (or the viewport center)
// and the fractional position within it. While the transition is
// interactive, attribute queries interpolate center and size between the two
// passes at the current progress, and ContentOffset keeps the anchor under the
// focal point. Progress 0 reproduces the source pass exactly and progress 1
// the destination pass.
//
//	e := transition.New(shelf)
//	e.Begin(grid, transition.BeginOptions{Viewport: visible})
//	for s := range samples {
//	    e.UpdateGesture(s)
//	    redraw(e.AttributesInRect(visible))
//	}
//	e.EndGesture(last) // commits or cancels
//
// Finish and Cancel are no-ops returning false when nothing is in flight.
// Cancel restores the source layout and its existing pass; nothing is
// recomputed.
package transition
