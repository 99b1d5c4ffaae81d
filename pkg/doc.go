// Package pkg provides the libraries behind shelfview.
//
// # Overview
//
// Shelfview places a collection of variably sized, optionally rotated items
// in one of three arrangements and animates between them under a pinch
// gesture. The pkg directory is organized into three areas:
//
//  1. Core: [geometry], [layout], [gesture] and [transition] compute
//     placements and interpolate between layouts. They do not log or
//     perform I/O.
//  2. Data: [scene] reads scene files that act as data source and delegate,
//     and [snapshot] captures a pass or transition frame as JSON or SVG.
//  3. Infrastructure: [pipeline] runs scene → layout → render with a
//     [cache], reporting through [observability] hooks and failing with
//     [errors] codes.
//
// # Architecture
//
//	scene file
//	    ↓
//	layout.Layout (shelf | grid[N] | page[N,dir])
//	    ↓
//	layout.Pass ──→ transition.Engine (while a switch is in progress)
//	    ↓
//	snapshot.Snapshot ──→ SVG / JSON
//
// The command-line program and HTTP API live under internal/ and are built
// from these packages.
package pkg
