// Package viz renders running integrations in the terminal.
//
// The live view is a Bubble Tea program:
//
//   - [Model]: steps a leapfrog integrator on every tick and draws it
//   - [Canvas]: Braille dot canvas; 1D fields are plotted as a line, 2D
//     fields are shaded by |φ|, 3D fields are drawn as a rotating cloud
//   - [RunMenu]: scenario picker that opens a live view
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from the initial condition
//	+/-   - Steps per tick
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
package viz
