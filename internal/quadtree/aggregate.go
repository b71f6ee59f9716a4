package quadtree

import "github.com/san-kum/gravsim/internal/geom"

// TotalMass returns the summed mass of the subtree.
func (n *Node) TotalMass() float64 {
	n.summarize()
	return n.mass
}

// CenterOfMass returns the mass-weighted mean position of the subtree. An
// empty or massless subtree reports the center of the node's boundary.
func (n *Node) CenterOfMass() geom.Vector2 {
	n.summarize()
	return n.com
}

// Summarize computes the aggregates of every node in the subtree so later
// reads do not write to the tree.
func (n *Node) Summarize() {
	n.summarize()
}

func (n *Node) summarize() {
	if n.aggValid {
		return
	}

	var mass float64
	var weighted geom.Vector2

	if n.children == nil {
		for _, b := range n.bodies {
			mass += b.Mass
			weighted = weighted.Add(b.Position.Scale(b.Mass))
		}
	} else {
		for _, c := range n.children {
			c.summarize()
			mass += c.mass
			weighted = weighted.Add(c.com.Scale(c.mass))
		}
	}

	n.mass = mass
	if mass == 0 {
		n.com = n.boundary.Center
	} else {
		n.com = geom.Vector2{X: weighted.X / mass, Y: weighted.Y / mass}
	}
	n.aggValid = true
}
