// Package analysis provides post-run and comparative tools for gravity
// simulations.
//
//   - [PowerSpectrum] and [DominantFrequency]: frequency content of a scalar
//     series such as kinetic energy per frame
//   - [Divergence]: growth rate of a small perturbation between two otherwise
//     identical runs
//   - [ThetaSweep]: Barnes-Hut force error and cost for a range of opening
//     angles, evaluated concurrently
//
// # Sensitivity
//
// A positive divergence rate means nearby initial conditions separate
// exponentially, which is the normal regime for many-body gravity:
//
//	rate, err := analysis.Divergence(build, 1e-3, dt, 600)
package analysis
