package config

import (
	"math/rand"

	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/space"
)

// NewSpace builds a space from c and seeds it with the configured scenario.
// The same config and registry always produce the same initial state.
func (c *Config) NewSpace(reg *scenario.Registry, opts ...space.Option) (*space.Space, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	gen, err := reg.Get(c.Scenario)
	if err != nil {
		return nil, err
	}

	s, err := space.New(c.Bodies.Count, c.ViewportExtent(), c.Physics, opts...)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(c.Seed))
	for _, b := range gen(rng, s.Viewport(), c.Bodies) {
		s.AddBody(b)
	}
	return s, nil
}
