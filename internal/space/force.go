package space

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/quadtree"
)

// NetForce approximates the gravitational force on target from every body in
// node. An internal node whose width over distance falls below Theta is
// treated as a single point mass at its center of mass; otherwise the
// traversal descends into its children.
func (s *Space) NetForce(target *body.Body, node *quadtree.Node) geom.Vector2 {
	if node.IsLeaf() {
		var net geom.Vector2
		for _, other := range node.LeafBodies() {
			if other == target {
				continue
			}
			net = net.Add(s.pairForce(target, other.Position, other.Mass, other.Radius))
		}
		return net
	}

	distance := node.Boundary().Center.Sub(target.Position).Magnitude()
	if node.Width()/distance < s.params.Theta {
		// the aggregate has no extent of its own; only the target's radius floors the distance
		return s.pairForce(target, node.CenterOfMass(), node.TotalMass(), 0)
	}

	children, _ := node.Children()
	var net geom.Vector2
	for _, c := range children {
		net = net.Add(s.NetForce(target, c))
	}
	return net
}

// DirectForce sums the exact pairwise force on target from every other body.
// It is the reference NetForce converges to as Theta approaches zero.
func (s *Space) DirectForce(target *body.Body) geom.Vector2 {
	var net geom.Vector2
	for _, other := range s.bodies {
		if other == target {
			continue
		}
		net = net.Add(s.pairForce(target, other.Position, other.Mass, other.Radius))
	}
	return net
}

// pairForce is the softened attraction of target toward a mass m at pos.
// Separation is floored at the sum of radii and softened by epsilon squared.
// Coincident positions have no direction and contribute nothing.
func (s *Space) pairForce(target *body.Body, pos geom.Vector2, m, radius float64) geom.Vector2 {
	dir := pos.Sub(target.Position)
	d2 := dir.MagnitudeSquared()
	if d2 == 0 || m == 0 {
		return geom.Zero
	}

	reach := target.Radius + radius
	distanceSquared := math.Max(d2, reach*reach)
	scale := s.params.G * target.Mass * m / (distanceSquared + s.params.EpsilonSquared())
	return dir.MustNormalize().Scale(scale)
}
