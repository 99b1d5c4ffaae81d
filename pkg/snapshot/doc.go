// Package snapshot captures computed layouts for storage and inspection.
//
// A [Snapshot] is a flat, serializable copy of a pass: every attribute with
// its frame, per-section frames, and the content size. Snapshots can also be
// taken of a transition in flight, in which case they record the source
// layout and the progress.
//
// Two sinks are provided: [RenderJSON] for machine consumption (and for the
// snapshot cache) and [RenderSVG], a debug drawing of the placement with
// rotated item boxes, header bands and optionally hidden items and the
// viewport.
package snapshot
