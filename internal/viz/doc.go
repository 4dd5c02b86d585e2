// Package viz renders googly eye rigs in the terminal.
//
//   - [Canvas]: braille dot canvas
//   - [Camera] and [Wireframe]: projection of scene meshes onto the canvas
//   - [Model]: bubbletea live view that steps a [sim.Simulator] every frame
//   - [Menu]: preset picker in front of the live view
//   - [CanvasSVG] and [PathSVG]: vector output of the canvas and iris paths
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	R      - Reset to the initial pose and parameters
//	Tab    - Select gravity or damping
//	K/J    - Raise/lower the selected parameter
//	Arrows - Nudge the head
//	T      - Cycle colour themes
//	G      - Toggle GIF recording
//	S      - Save an SVG snapshot
//	?      - Help overlay
package viz
