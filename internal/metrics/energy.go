package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/space"
)

// Kinetic returns the summed kinetic energy of every body.
func Kinetic(s *space.Space) float64 {
	ke := 0.0
	for _, b := range s.Bodies() {
		ke += b.KineticEnergy()
	}
	return ke
}

// Potential returns the softened pairwise gravitational potential energy,
// using the same radius floor and epsilon as the force solver.
func Potential(s *space.Space) float64 {
	p := s.Params()
	eps2 := p.EpsilonSquared()
	bodies := s.Bodies()

	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			reach := a.Radius + b.Radius
			d2 := math.Max(a.Position.Sub(b.Position).MagnitudeSquared(), reach*reach)
			pe -= p.G * a.Mass * b.Mass / math.Sqrt(d2+eps2)
		}
	}
	return pe
}

func Total(s *space.Space) float64 {
	return Kinetic(s) + Potential(s)
}

// Energy reports the mean total energy over the observed steps.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s *space.Space, t float64) {
	e.totalEnergy += Total(s)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift reports the largest relative departure from the first observed
// total energy.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s *space.Space, t float64) {
	energy := Total(s)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
