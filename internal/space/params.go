package space

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/quadtree"
)

const (
	DefaultG       = 6.67430e+2
	DefaultEpsilon = 0.1
	DefaultTheta   = 0.5
)

// Params is the immutable physical and tree configuration of a Space.
type Params struct {
	G            float64 `yaml:"g" json:"g"`
	Epsilon      float64 `yaml:"epsilon" json:"epsilon"`
	Theta        float64 `yaml:"theta" json:"theta"`
	NodeCapacity int     `yaml:"node_capacity" json:"node_capacity"`
	MaxDepth     int     `yaml:"max_depth" json:"max_depth"`
	Workers      int     `yaml:"workers" json:"workers"`
}

func DefaultParams() Params {
	return Params{
		G:            DefaultG,
		Epsilon:      DefaultEpsilon,
		Theta:        DefaultTheta,
		NodeCapacity: quadtree.DefaultCapacity,
		MaxDepth:     quadtree.DefaultMaxDepth,
		Workers:      1,
	}
}

func (p Params) EpsilonSquared() float64 { return p.Epsilon * p.Epsilon }

func (p Params) Validate() error {
	switch {
	case p.G < 0:
		return fmt.Errorf("%w: G must be non-negative, got %g", ErrInvalidParams, p.G)
	case p.Epsilon < 0:
		return fmt.Errorf("%w: epsilon must be non-negative, got %g", ErrInvalidParams, p.Epsilon)
	case p.Theta < 0:
		return fmt.Errorf("%w: theta must be non-negative, got %g", ErrInvalidParams, p.Theta)
	case p.NodeCapacity < 1:
		return fmt.Errorf("%w: node capacity must be at least 1, got %d", ErrInvalidParams, p.NodeCapacity)
	case p.MaxDepth < 1:
		return fmt.Errorf("%w: max depth must be at least 1, got %d", ErrInvalidParams, p.MaxDepth)
	case p.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidParams, p.Workers)
	}
	return nil
}
