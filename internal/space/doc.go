// Package space owns the simulated bodies and advances them one step at a
// time using a Barnes-Hut approximation of their mutual gravity.
//
// Each call to [Space.Update] rebuilds the quadtree from current positions,
// computes every body's net force against that frozen tree, integrates all
// velocities before any position (semi-implicit Euler) and finally wraps
// positions at the viewport edges.
//
// # Boundary wrap
//
// The wrap is a single hard snap per axis: a coordinate below zero becomes the
// viewport extent and one above the extent becomes zero. A body fast enough to
// cross the whole viewport in one step is not wrapped a second time.
//
// # Concurrency
//
// A Space is not safe for concurrent use. With Params.Workers > 1 the force
// pass fans out across goroutines internally; the result is identical to the
// serial pass because each body writes only its own velocity.
package space
