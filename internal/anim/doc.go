// Package anim is the frame engine behind the viewer's decorations.
//
//   - [Torus]: depth-tested ASCII donut, one pure frame per pair of angles
//   - [Spin]: owns the torus angles, advancing them after every frame
//   - [Field] and [Rain]: a scrolling rain buffer sampled one row per tick
//   - [Scheduler]: one bubbletea timer per animation, frames published as
//     immutable strings
//   - [Loop]: the same animations written straight to a terminal
//
// # Rates
//
// The torus ticks 30 times per second and the rain 5 times per second.
// Neither timer catches up on missed ticks.
package anim
