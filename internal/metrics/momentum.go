package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/space"
)

// Momentum reports the largest magnitude of total linear momentum seen.
type Momentum struct {
	name string
	max  float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(s *space.Space, t float64) {
	var p geom.Vector2
	for _, b := range s.Bodies() {
		p = p.Add(b.Momentum())
	}
	m.max = math.Max(m.max, p.Magnitude())
}

func (m *Momentum) Value() float64 { return m.max }
func (m *Momentum) Reset()         { m.max = 0 }
