package quadtree

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/geom"
)

// Walk visits the subtree in pre-order. Returning false from fn skips the
// children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) || n.children == nil {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Query returns the bodies of the subtree whose positions fall inside box.
func (n *Node) Query(box geom.BoundingBox) []*body.Body {
	var found []*body.Body
	n.Walk(func(node *Node) bool {
		if !node.boundary.Intersects(box) && !box.Contains(node.boundary.Center) {
			return false
		}
		for _, b := range node.LeafBodies() {
			if box.Contains(b.Position) {
				found = append(found, b)
			}
		}
		return true
	})
	return found
}

type Stats struct {
	Nodes    int
	Leaves   int
	Height   int
	Bodies   int
	MaxLeaf  int
	Overfull int
}

// Stats summarizes the shape of the subtree. Overfull counts depth-capped
// leaves holding more bodies than the capacity.
func (n *Node) Stats() Stats {
	var s Stats
	n.Walk(func(node *Node) bool {
		s.Nodes++
		if h := node.depth - n.depth + 1; h > s.Height {
			s.Height = h
		}
		if node.IsLeaf() {
			s.Leaves++
			k := len(node.bodies)
			s.Bodies += k
			if k > s.MaxLeaf {
				s.MaxLeaf = k
			}
			if k > node.cfg.capacity {
				s.Overfull++
			}
		}
		return true
	})
	return s
}
