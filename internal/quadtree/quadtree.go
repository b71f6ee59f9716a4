package quadtree

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/geom"
)

// Quadrant indexes the children of an internal node.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// Node is a quadtree node. children is nil for a leaf and otherwise points to
// a fully populated array; bodies is only used while the node is a leaf.
type Node struct {
	boundary geom.BoundingBox
	depth    int
	bodies   []*body.Body
	children *[4]*Node
	cfg      *settings

	aggValid bool
	mass     float64
	com      geom.Vector2
}

// New returns an empty root leaf covering boundary.
func New(boundary geom.BoundingBox, opts ...Option) *Node {
	cfg := newSettings(opts)
	return newNode(boundary, 1, cfg)
}

func newNode(boundary geom.BoundingBox, depth int, cfg *settings) *Node {
	return &Node{
		boundary: boundary,
		depth:    depth,
		bodies:   make([]*body.Body, 0, cfg.capacity),
		cfg:      cfg,
	}
}

func (n *Node) Boundary() geom.BoundingBox { return n.boundary }
func (n *Node) Depth() int                 { return n.depth }
func (n *Node) IsLeaf() bool               { return n.children == nil }
func (n *Node) Capacity() int              { return n.cfg.capacity }
func (n *Node) MaxDepth() int              { return n.cfg.maxDepth }

// Width is the side length of the node, used as its size in the opening-angle
// test.
func (n *Node) Width() float64 { return n.boundary.Width() }

// Children returns the four children of an internal node in quadrant order,
// or ok=false for a leaf.
func (n *Node) Children() (children [4]*Node, ok bool) {
	if n.children == nil {
		return children, false
	}
	return *n.children, true
}

// Child returns a single child of an internal node, or nil for a leaf.
func (n *Node) Child(q Quadrant) *Node {
	if n.children == nil {
		return nil
	}
	return n.children[q]
}

// LeafBodies returns the bodies stored directly in a leaf. The slice is owned
// by the node and must not be modified. Internal nodes return nil.
func (n *Node) LeafBodies() []*body.Body {
	if n.children != nil {
		return nil
	}
	return n.bodies
}

// Insert places b in the subtree. It returns false when b lies outside the
// node or, after subdivision, no child accepts it; the latter is logged.
func (n *Node) Insert(b *body.Body) bool {
	if !n.boundary.Contains(b.Position) {
		return false
	}
	n.aggValid = false

	if n.children == nil {
		if len(n.bodies) < n.cfg.capacity || n.depth >= n.cfg.maxDepth {
			n.bodies = append(n.bodies, b)
			return true
		}
		n.Subdivide()
	}

	if c := n.childFor(b.Position); c != nil {
		return c.Insert(b)
	}

	n.cfg.logger.Warn("body could not be placed in a child",
		"position", b.Position, "center", n.boundary.Center, "depth", n.depth)
	return false
}

// Remove deletes b by identity. Routing uses b's current position, so a body
// that moved since insertion is not found.
func (n *Node) Remove(b *body.Body) bool {
	if !n.boundary.Contains(b.Position) {
		return false
	}

	if n.children == nil {
		for i, other := range n.bodies {
			if other == b {
				n.bodies = append(n.bodies[:i], n.bodies[i+1:]...)
				n.aggValid = false
				return true
			}
		}
		return false
	}

	c := n.childFor(b.Position)
	if c == nil || !c.Remove(b) {
		return false
	}
	n.aggValid = false

	if n.Count() < n.cfg.capacity {
		n.Merge()
	}
	return true
}

// Subdivide turns a leaf into an internal node and redistributes its bodies.
// It is a no-op on internal nodes and on leaves at the maximum depth.
func (n *Node) Subdivide() {
	if n.children != nil || n.depth >= n.cfg.maxDepth {
		return
	}

	quads := n.boundary.Quadrants()
	var children [4]*Node
	for i, q := range quads {
		children[i] = newNode(q, n.depth+1, n.cfg)
	}
	n.children = &children
	n.aggValid = false

	for _, b := range n.bodies {
		placed := false
		for _, c := range children {
			if c.Insert(b) {
				placed = true
				break
			}
		}
		if !placed {
			n.cfg.logger.Warn("body lost during subdivision",
				"position", b.Position, "center", n.boundary.Center, "depth", n.depth)
		}
	}
	n.bodies = n.bodies[:0]
}

// Merge collapses an internal node whose subtree holds fewer bodies than the
// capacity back into a leaf. It is a no-op on leaves.
func (n *Node) Merge() {
	if n.children == nil {
		return
	}
	if n.Count() >= n.cfg.capacity {
		return
	}

	gathered := make([]*body.Body, 0, n.cfg.capacity)
	for _, c := range n.children {
		gathered = c.appendBodies(gathered)
	}
	n.bodies = gathered
	n.children = nil
	n.aggValid = false
}

// Count returns the number of bodies in the subtree.
func (n *Node) Count() int {
	if n.children == nil {
		return len(n.bodies)
	}
	sum := 0
	for _, c := range n.children {
		sum += c.Count()
	}
	return sum
}

// Bodies gathers every body in the subtree in quadrant order.
func (n *Node) Bodies() []*body.Body {
	return n.appendBodies(make([]*body.Body, 0, n.Count()))
}

func (n *Node) appendBodies(dst []*body.Body) []*body.Body {
	if n.children == nil {
		return append(dst, n.bodies...)
	}
	for _, c := range n.children {
		dst = c.appendBodies(dst)
	}
	return dst
}

func (n *Node) childFor(p geom.Vector2) *Node {
	for _, c := range n.children {
		if c.boundary.Contains(p) {
			return c
		}
	}
	return nil
}
