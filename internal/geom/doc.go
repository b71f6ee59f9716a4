// Package geom provides the 2D primitives the simulator is built on.
//
//   - [Vector2]: value-semantics vector with componentwise arithmetic
//   - [BoundingBox]: axis-aligned square region used as the quadtree predicate
//
// All Vector2 operations return new values; no method mutates its receiver.
// Prefer [Vector2.MagnitudeSquared] when only a comparison is needed.
package geom
