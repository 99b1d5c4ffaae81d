// Package gesture describes pinch input as the layout engine consumes it.
//
// The layouts never see raw touches. They read [Sample] values: a cumulative
// scale, its velocity, and focal locations expressed in the coordinate space
// of the scrolling viewport. [Tracker] turns raw touch points into samples.
// It follows the behavior of a pinch recognizer that tracks an adjustment:
// when a finger joins or leaves mid-gesture the averaged focal point jumps,
// and the tracker absorbs that jump instead of reporting it as movement, so
// consumers never apply the same delta twice.
package gesture
