package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/space"
)

// Builder constructs a fresh, fully seeded space. It must return the same
// initial state every time it is called.
type Builder func() (*space.Space, error)

var ErrNoBodies = errors.New("analysis: space has no bodies")

// Divergence estimates the mean exponential growth rate of a perturbation of
// size perturbation applied to the first body's x position. Separation is
// measured with the toroidal minimum image and renormalised once it grows
// past one unit.
func Divergence(build Builder, perturbation, dt float64, steps int) (float64, error) {
	ref, err := build()
	if err != nil {
		return 0, err
	}
	pert, err := build()
	if err != nil {
		return 0, err
	}
	if len(ref.Bodies()) == 0 || len(ref.Bodies()) != len(pert.Bodies()) {
		return 0, ErrNoBodies
	}
	pert.Bodies()[0].Position.X += perturbation

	d0 := perturbation
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		ref.Update(dt)
		pert.Update(dt)

		sep := separation(ref, pert)
		if sep > 0 && d0 > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		if sep > 1.0 {
			renormalize(ref, pert, d0/sep)
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}

func separation(a, b *space.Space) float64 {
	extent := a.Viewport()
	sum := 0.0
	for i, ba := range a.Bodies() {
		d := minimumImage(b.Bodies()[i].Position.Sub(ba.Position), extent)
		sum += d.MagnitudeSquared()
	}
	return math.Sqrt(sum)
}

func renormalize(ref, pert *space.Space, scale float64) {
	extent := ref.Viewport()
	for i, rb := range ref.Bodies() {
		pb := pert.Bodies()[i]
		d := minimumImage(pb.Position.Sub(rb.Position), extent)
		pb.Position = rb.Position.Add(d.Scale(scale))
		pb.Velocity = rb.Velocity.Add(pb.Velocity.Sub(rb.Velocity).Scale(scale))
	}
}

func minimumImage(d, extent geom.Vector2) geom.Vector2 {
	if d.X > extent.X/2 {
		d.X -= extent.X
	} else if d.X < -extent.X/2 {
		d.X += extent.X
	}
	if d.Y > extent.Y/2 {
		d.Y -= extent.Y
	} else if d.Y < -extent.Y/2 {
		d.Y += extent.Y
	}
	return d
}
