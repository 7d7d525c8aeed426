// Package viz draws the particle field in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: the field behind a scrollable project list; hovering a project
//     shows its floating preview
//   - [Canvas]: Braille-based pixel canvas with per-cell colour layers
//   - [Surface]: the scene's Renderer and Compositor for the terminal
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reseed the field
//	T     - Cycle color themes
//	J/K   - Scroll the project list
//	G     - Toggle the edge-count graph
//	S     - Save a snapshot
//	?     - Show full help
//
// # Coordinates
//
// Pointer positions are virtual pixels, CellWidth x CellHeight per terminal
// cell, so offsets such as the preview's track offset keep their size.
package viz
