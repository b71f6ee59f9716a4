// Package body defines the point mass that the simulation advances.
package body

import "github.com/san-kum/gravsim/internal/geom"

// Body is a point mass with a finite radius. Bodies are shared by pointer:
// the quadtree holds references into the set owned by the simulation.
type Body struct {
	Mass     float64
	Radius   float64
	Position geom.Vector2
	Velocity geom.Vector2
}

// New returns a body at rest.
func New(mass, radius float64, position geom.Vector2) *Body {
	return &Body{
		Mass:     mass,
		Radius:   radius,
		Position: position,
	}
}

func (b *Body) DistanceTo(other *Body) float64 {
	return other.Position.Sub(b.Position).Magnitude()
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.MagnitudeSquared()
}

func (b *Body) Momentum() geom.Vector2 {
	return b.Velocity.Scale(b.Mass)
}
