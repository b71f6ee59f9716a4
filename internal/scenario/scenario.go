// Package scenario seeds a space with its initial bodies.
package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/geom"
)

// Spec describes the population a generator produces.
type Spec struct {
	Count  int     `yaml:"count" json:"count"`
	Mass   float64 `yaml:"mass" json:"mass"`
	Radius float64 `yaml:"radius" json:"radius"`
	Margin float64 `yaml:"margin" json:"margin"`
	// Spin scales the tangential speed given to rotating layouts; 0 starts at rest.
	Spin float64 `yaml:"spin" json:"spin"`
}

func DefaultSpec() Spec {
	return Spec{
		Count:  220,
		Mass:   10,
		Radius: 2,
		Margin: 100,
	}
}

type Generator func(rng *rand.Rand, viewport geom.Vector2, spec Spec) []*body.Body

type Registry struct {
	generators map[string]Generator
}

func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}

	r.generators["uniform"] = Uniform
	r.generators["disk"] = Disk
	r.generators["clusters"] = Clusters
	r.generators["grid"] = Grid

	return r
}

func (r *Registry) Register(name string, g Generator) {
	r.generators[name] = g
}

func (r *Registry) Get(name string) (Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return g, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Uniform scatters bodies at rest over the viewport, keeping Margin away from
// every edge.
func Uniform(rng *rand.Rand, viewport geom.Vector2, spec Spec) []*body.Body {
	lo, hi := inset(viewport, spec.Margin)
	bodies := make([]*body.Body, spec.Count)
	for i := range bodies {
		x := lo.X + rng.Float64()*(hi.X-lo.X)
		y := lo.Y + rng.Float64()*(hi.Y-lo.Y)
		bodies[i] = body.New(spec.Mass, spec.Radius, geom.Vec(x, y))
	}
	return bodies
}

// Disk places bodies in a disk around the viewport center. With Spin > 0 each
// body gets a counter-clockwise tangential velocity proportional to its radius.
func Disk(rng *rand.Rand, viewport geom.Vector2, spec Spec) []*body.Body {
	center := viewport.Scale(0.5)
	maxR := math.Min(center.X, center.Y) - spec.Margin
	if maxR <= 0 {
		maxR = math.Min(center.X, center.Y) / 2
	}

	bodies := make([]*body.Body, spec.Count)
	for i := range bodies {
		r := maxR * math.Sqrt(rng.Float64())
		angle := rng.Float64() * 2 * math.Pi
		offset := geom.Vec(r*math.Cos(angle), r*math.Sin(angle))
		b := body.New(spec.Mass, spec.Radius, center.Add(offset))
		b.Velocity = geom.Vec(-offset.Y, offset.X).Scale(spec.Spin)
		bodies[i] = b
	}
	return bodies
}

// Clusters splits the population into two gaussian clumps on the horizontal
// midline.
func Clusters(rng *rand.Rand, viewport geom.Vector2, spec Spec) []*body.Body {
	centers := []geom.Vector2{
		geom.Vec(viewport.X/3, viewport.Y/2),
		geom.Vec(2*viewport.X/3, viewport.Y/2),
	}
	sigma := math.Min(viewport.X, viewport.Y) / 12
	lo, hi := inset(viewport, 0)

	bodies := make([]*body.Body, spec.Count)
	for i := range bodies {
		c := centers[i%len(centers)]
		p := geom.Vec(c.X+rng.NormFloat64()*sigma, c.Y+rng.NormFloat64()*sigma)
		p.X = math.Min(math.Max(p.X, lo.X), hi.X)
		p.Y = math.Min(math.Max(p.Y, lo.Y), hi.Y)
		bodies[i] = body.New(spec.Mass, spec.Radius, p)
	}
	return bodies
}

// Grid lays bodies out on a regular lattice. It ignores rng.
func Grid(_ *rand.Rand, viewport geom.Vector2, spec Spec) []*body.Body {
	if spec.Count == 0 {
		return nil
	}
	lo, hi := inset(viewport, spec.Margin)
	cols := int(math.Ceil(math.Sqrt(float64(spec.Count))))
	rows := (spec.Count + cols - 1) / cols
	dx := (hi.X - lo.X) / float64(cols)
	dy := (hi.Y - lo.Y) / float64(rows)

	bodies := make([]*body.Body, spec.Count)
	for i := range bodies {
		col, row := i%cols, i/cols
		p := geom.Vec(lo.X+(float64(col)+0.5)*dx, lo.Y+(float64(row)+0.5)*dy)
		bodies[i] = body.New(spec.Mass, spec.Radius, p)
	}
	return bodies
}

func inset(viewport geom.Vector2, margin float64) (lo, hi geom.Vector2) {
	if 2*margin >= viewport.X || 2*margin >= viewport.Y {
		margin = 0
	}
	return geom.Vec(margin, margin), geom.Vec(viewport.X-margin, viewport.Y-margin)
}
