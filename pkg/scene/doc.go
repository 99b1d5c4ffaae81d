// Package scene reads scene files: a declarative description of sections,
// items, container bounds and layout metrics.
//
// A [Scene] plays the part a host application normally plays for a layout:
// it is the [layout.DataSource] (and [layout.Versioned]) and it builds the
// [layout.Delegate]. That lets layouts and transitions be computed outside a
// UI, from the command line or the HTTP session API.
//
// # Format
//
// Scenes are TOML or JSON, chosen by file extension:
//
//	name = "library"
//
//	[bounds]
//	width = 390
//	height = 844
//
//	[config]
//	header_height = 44
//
//	[[sections]]
//	title = "Unread"
//
//	  [[sections.items]]
//	  width = 120
//	  height = 180
//	  rotation = 0.05
//
//	  [[sections.items]]
//	  width = 200
//	  height = 140
//	  count = 6
//
// Omitted config fields keep their defaults from [layout.DefaultConfig].
// Per-item fields:
//   - width, height: ideal size (required, positive)
//   - rotation: radians
//   - scale: physical scale on shelves (default 1)
//   - zoom: page zoom scale
//   - ignored: exclude from flow
//   - count: repeat the item this many times
//
// Per-section header_height overrides the configured header height.
package scene
