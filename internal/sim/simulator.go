package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/gravsim/internal/space"
)

type Simulator struct {
	space     *space.Space
	metrics   []Metric
	observers []Observer
}

func New(s *space.Space) *Simulator {
	return &Simulator{
		space:     s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Space() *space.Space    { return s.space }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SnapshotEvery
	if every < 1 {
		every = 1
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, Capture(0, t, s.space.Bodies()))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.space.Update(cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !s.finite() {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		for _, m := range s.metrics {
			m.Observe(s.space, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.space, i+1, t)
		}

		if (i+1)%every == 0 {
			result.Frames = append(result.Frames, Capture(i+1, t, s.space.Bodies()))
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps until the duration elapses or callback returns false.
// The callback sees the space after each step.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(*space.Space, float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.space.Update(cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !s.finite() {
			return fmt.Errorf("invalid state at t=%.4f", t)
		}
		if !callback(s.space, t) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) finite() bool {
	for _, b := range s.space.Bodies() {
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return false
		}
	}
	return true
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
