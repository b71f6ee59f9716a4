// Package viz draws a running gravity simulation in the terminal.
//
// [Model] is a Bubble Tea program that advances a space every tick and plots
// its bodies on a braille [Canvas]. A side panel shows a kinetic energy graph
// and timing statistics. The quadtree can be overlaid as cell outlines and as
// links from each body to the centre of its leaf. [App] wraps Model in a
// menu of presets.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	.     - Single step while paused
//	R     - Reset to the initial bodies
//	O     - Toggle quadtree outlines
//	L     - Toggle body to leaf links
//	+/-   - Steps per tick
//	T     - Cycle colour themes
//	?     - Help overlay
package viz
