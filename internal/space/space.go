package space

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/quadtree"
)

// Stepper is the contract between the simulation core and its host: seed
// bodies, advance by dt, read positions back.
type Stepper interface {
	AddBody(b *body.Body)
	Update(dt float64)
	Bodies() []*body.Body
}

type Space struct {
	params   Params
	viewport geom.Vector2
	boundary geom.BoundingBox
	bodies   []*body.Body
	tree     *quadtree.Node
	logger   *log.Logger
	forces   []geom.Vector2
	unplaced int
	steps    int
}

var _ Stepper = (*Space)(nil)

type Option func(*Space)

func WithLogger(l *log.Logger) Option {
	return func(s *Space) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty space. viewport is both the wrap-around extent and the
// region covered by the quadtree root.
func New(capacityHint int, viewport geom.Vector2, params Params, opts ...Option) (*Space, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if viewport.X <= 0 || viewport.Y <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidViewport, viewport)
	}
	if capacityHint < 0 {
		capacityHint = 0
	}

	s := &Space{
		params:   params,
		viewport: viewport,
		boundary: geom.BoxFromExtent(viewport),
		bodies:   make([]*body.Body, 0, capacityHint),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tree = s.newTree()
	return s, nil
}

func (s *Space) newTree() *quadtree.Node {
	return quadtree.New(s.boundary,
		quadtree.WithCapacity(s.params.NodeCapacity),
		quadtree.WithMaxDepth(s.params.MaxDepth),
		quadtree.WithLogger(s.logger),
	)
}

// AddBody appends b to the simulation and inserts it into the current tree.
func (s *Space) AddBody(b *body.Body) {
	s.bodies = append(s.bodies, b)
	if !s.tree.Insert(b) {
		s.logger.Debug("body outside tree at setup", "position", b.Position)
	}
}

func (s *Space) Bodies() []*body.Body       { return s.bodies }
func (s *Space) Tree() *quadtree.Node       { return s.tree }
func (s *Space) Params() Params             { return s.params }
func (s *Space) Viewport() geom.Vector2     { return s.viewport }
func (s *Space) Boundary() geom.BoundingBox { return s.boundary }
func (s *Space) Steps() int                 { return s.steps }

// Unplaced reports how many bodies the last rebuild failed to insert.
func (s *Space) Unplaced() int { return s.unplaced }

// Update advances every body by dt.
func (s *Space) Update(dt float64) {
	s.rebuild()

	if cap(s.forces) < len(s.bodies) {
		s.forces = make([]geom.Vector2, len(s.bodies))
	}
	s.forces = s.forces[:len(s.bodies)]
	s.computeForces(s.forces)

	for i, b := range s.bodies {
		b.Velocity = b.Velocity.Add(s.forces[i].Scale(dt / b.Mass))
	}
	for _, b := range s.bodies {
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}
	for _, b := range s.bodies {
		b.Position = s.wrap(b.Position)
	}
	s.steps++
}

func (s *Space) rebuild() {
	s.tree = s.newTree()
	s.unplaced = 0
	for _, b := range s.bodies {
		if !s.tree.Insert(b) {
			s.unplaced++
		}
	}
	if s.unplaced > 0 {
		s.logger.Warn("bodies left out of the tree this step", "count", s.unplaced, "step", s.steps)
	}
	s.tree.Summarize()
}

func (s *Space) wrap(p geom.Vector2) geom.Vector2 {
	if p.X < 0 {
		p.X = s.viewport.X
	} else if p.X > s.viewport.X {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = s.viewport.Y
	} else if p.Y > s.viewport.Y {
		p.Y = 0
	}
	return p
}
