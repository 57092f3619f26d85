// Package viz provides the terminal view of a running scene.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live scene view with a stats panel and energy sparkline
//   - [Canvas]: Braille-based pixel canvas with glyph markers
//
// Awake bodies render as circles with a rotation tick; sleeping bodies
// collapse to a 'z' marker so settled islands are easy to spot.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the scene
//	S     - Put every awake body to sleep
//	W     - Wake everything
//	+/-   - Zoom
//	Q     - Quit
package viz
