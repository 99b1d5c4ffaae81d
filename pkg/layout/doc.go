// Package layout computes item placement for a scrollable surface in three
// arrangements: a shelf flow, a fixed-cell grid, and one item per page.
//
// # Overview
//
// A [Layout] is a single engine parameterized by a [Policy]. The policy
// decides per-item size and how many items share a line; everything else
// (header bands, cache building, content size) is shared.
//
//	l := layout.New(layout.Shelf(), src, layout.WithBounds(geometry.Sz(390, 844)))
//	for _, a := range l.AttributesInRect(viewport) {
//	    draw(a.IndexPath, a.Frame())
//	}
//
// # Passes
//
// Each computation produces an immutable [Pass]: one [AttributeCache] per
// section plus an index by kind and index path. A pass is stamped with the
// bounds, the per-section item counts and the data version. Queries compare
// the stamp against the current inputs and rebuild the whole pass on any
// mismatch; an old pass is never patched, so a reader holding one always
// sees a consistent result.
//
// # Data and Delegates
//
// Items come from a [DataSource]. Sources that can report a version
// cheaply implement [Versioned], which is the fast path. Otherwise every
// item's size and rotation is fingerprinted on whole-pass queries
// ([Layout.Prepare], [Layout.AttributesInRect], [Layout.State]); per-item
// lookups only compare bounds and counts. Host customization goes through [Delegate],
// a struct of optional callbacks where a nil field means "use the default".
//
// # Page Zoom
//
// Page layouts couple to a pinch gesture through [Layout.BeginZoom],
// [Layout.UpdateZoom] and [Layout.EndZoom]. Updates report the focused page
// where a full pass at the new scale will put it, plus the content offset
// that keeps the pinched point under the fingers. The cached pass is rebuilt
// once the gesture ends, and the next [Layout.TargetContentOffset] restores
// the same point under the fingers.
package layout
