// Package quadtree implements the spatial index behind the Barnes-Hut force
// solver.
//
// A [Node] is either a leaf holding bodies directly or an internal node
// owning exactly four children (top-left, top-right, bottom-left,
// bottom-right). A leaf that would exceed its capacity subdivides; an internal
// node whose subtree falls below capacity after a removal merges back into a
// leaf. Leaves at the maximum depth keep accepting bodies past capacity so
// coincident bodies cannot recurse without bound.
//
// Child routing always picks the first child, in that fixed order, whose
// boundary contains the position. Boundaries are inclusive, so a point on a
// shared edge belongs to the earliest matching child.
//
// # Aggregates
//
// [Node.TotalMass] and [Node.CenterOfMass] are cached per node and invalidated
// by any mutation passing through the node. Call [Node.Summarize] before
// reading aggregates from several goroutines.
package quadtree
