package sim

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/space"
)

// Metric accumulates a scalar over the steps of a run.
type Metric interface {
	Name() string
	Observe(s *space.Space, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s *space.Space, step int, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	SnapshotEvery int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10.0,
		SnapshotEvery: 1,
		ValidateState: true,
	}
}

// BodyState is a copy of one body's kinematics at a frame.
type BodyState struct {
	X, Y   float64
	VX, VY float64
}

type Frame struct {
	Step    int
	Time    float64
	Kinetic float64
	Bodies  []BodyState
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// KineticSeries returns the kinetic energy of every recorded frame.
func (r *Result) KineticSeries() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Kinetic
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

// Capture copies the current kinematics of bodies into a frame.
func Capture(step int, t float64, bodies []*body.Body) Frame {
	f := Frame{
		Step:   step,
		Time:   t,
		Bodies: make([]BodyState, len(bodies)),
	}
	for i, b := range bodies {
		f.Bodies[i] = BodyState{X: b.Position.X, Y: b.Position.Y, VX: b.Velocity.X, VY: b.Velocity.Y}
		f.Kinetic += b.KineticEnergy()
	}
	return f
}
