package metrics

import "github.com/san-kum/gravsim/internal/sim"

// Defaults returns the metrics attached to every recorded run.
func Defaults(speedLimit float64) []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewMomentum(),
		NewStability(speedLimit),
		NewTreeHeight(),
		NewUnplaced(),
	}
}
