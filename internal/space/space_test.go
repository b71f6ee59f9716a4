package space

import (
	"errors"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/geom"
)

func newQuietSpace(t testing.TB, viewport geom.Vector2, params Params) *Space {
	t.Helper()
	s, err := New(0, viewport, params, WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	return s
}

func randomSpace(t testing.TB, n int, params Params, seed int64) *Space {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	s := newQuietSpace(t, geom.Vec(1000, 800), params)
	for i := 0; i < n; i++ {
		x := 100 + rng.Float64()*800
		y := 100 + rng.Float64()*600
		s.AddBody(body.New(10, 2, geom.Vec(x, y)))
	}
	return s
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"negative G", func(p *Params) { p.G = -1 }},
		{"negative epsilon", func(p *Params) { p.Epsilon = -0.1 }},
		{"negative theta", func(p *Params) { p.Theta = -0.5 }},
		{"zero capacity", func(p *Params) { p.NodeCapacity = 0 }},
		{"zero depth", func(p *Params) { p.MaxDepth = 0 }},
		{"zero workers", func(p *Params) { p.Workers = 0 }},
	}

	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestNew_InvalidViewport(t *testing.T) {
	for _, vp := range []geom.Vector2{geom.Vec(0, 100), geom.Vec(100, -1)} {
		if _, err := New(10, vp, DefaultParams()); !errors.Is(err, ErrInvalidViewport) {
			t.Errorf("viewport %v: expected ErrInvalidViewport, got %v", vp, err)
		}
	}
}

func TestAddBody_InsertsIntoTree(t *testing.T) {
	s := newQuietSpace(t, geom.Vec(100, 100), DefaultParams())
	s.AddBody(body.New(1, 1, geom.Vec(10, 10)))
	s.AddBody(body.New(1, 1, geom.Vec(20, 20)))

	if len(s.Bodies()) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(s.Bodies()))
	}
	if s.Tree().Count() != 2 {
		t.Errorf("expected 2 bodies in tree, got %d", s.Tree().Count())
	}
	if s.Tree().Boundary().Center != geom.Vec(50, 50) {
		t.Errorf("unexpected root center %v", s.Tree().Boundary().Center)
	}
}

func TestTwoBodyForce(t *testing.T) {
	p := DefaultParams()
	s := newQuietSpace(t, geom.Vec(1000, 1000), p)
	a := body.New(10, 2, geom.Vec(400, 500))
	b := body.New(10, 2, geom.Vec(500, 500))
	s.AddBody(a)
	s.AddBody(b)

	want := p.G * 10 * 10 / (100*100 + p.EpsilonSquared())

	fa := s.NetForce(a, s.Tree())
	fb := s.NetForce(b, s.Tree())

	if math.Abs(fa.Magnitude()-want) > 1e-9*want {
		t.Errorf("|F_a| = %v, want %v", fa.Magnitude(), want)
	}
	if fa.X <= 0 || fa.Y != 0 {
		t.Errorf("force on a should point toward +x, got %v", fa)
	}
	if fa.Add(fb).Magnitude() > 1e-9*want {
		t.Errorf("forces not equal and opposite: %v %v", fa, fb)
	}
}

func TestRadiusFloor(t *testing.T) {
	p := DefaultParams()
	s := newQuietSpace(t, geom.Vec(100, 100), p)
	a := body.New(10, 2, geom.Vec(50, 50))
	b := body.New(10, 2, geom.Vec(51, 50))
	s.AddBody(a)
	s.AddBody(b)

	want := p.G * 100 / (16 + p.EpsilonSquared())
	if got := s.NetForce(a, s.Tree()).Magnitude(); math.Abs(got-want) > 1e-9*want {
		t.Errorf("|F| = %v, want floored %v", got, want)
	}
}

func TestSofteningBound(t *testing.T) {
	p := DefaultParams()
	bound := p.G * 10 * 10 / p.EpsilonSquared()

	tests := []struct {
		name string
		gap  float64
	}{
		{"coincident", 0},
		{"tiny gap", 1e-12},
		{"small gap", 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newQuietSpace(t, geom.Vec(100, 100), p)
			a := body.New(10, 0, geom.Vec(50, 50))
			b := body.New(10, 0, geom.Vec(50+tt.gap, 50))
			s.AddBody(a)
			s.AddBody(b)

			f := s.NetForce(a, s.Tree())
			if !f.IsFinite() {
				t.Fatalf("force not finite: %v", f)
			}
			if f.Magnitude() > bound*(1+1e-9) {
				t.Errorf("|F| = %v exceeds softening bound %v", f.Magnitude(), bound)
			}
		})
	}
}

func TestThetaZeroMatchesDirectSum(t *testing.T) {
	p := DefaultParams()
	p.Theta = 0
	s := randomSpace(t, 200, p, 3)

	for i, b := range s.Bodies() {
		tree := s.NetForce(b, s.Tree())
		direct := s.DirectForce(b)
		diff := tree.Sub(direct).Magnitude()
		if diff > 1e-9*math.Max(direct.Magnitude(), 1) {
			t.Fatalf("body %d: tree %v direct %v", i, tree, direct)
		}
	}
}

func TestBarnesHutApproximation(t *testing.T) {
	s := randomSpace(t, 400, DefaultParams(), 11)

	var errSum, refSum float64
	for _, b := range s.Bodies() {
		approx := s.NetForce(b, s.Tree())
		direct := s.DirectForce(b)
		errSum += approx.Sub(direct).Magnitude()
		refSum += direct.Magnitude()
	}

	if rel := errSum / refSum; rel > 0.1 {
		t.Errorf("mean relative force error %v too large", rel)
	}
}

func TestUpdate_Wrap(t *testing.T) {
	const w, h = 800.0, 600.0

	tests := []struct {
		name  string
		start geom.Vector2
		want  geom.Vector2
	}{
		{"past right edge", geom.Vec(w+5, 100), geom.Vec(0, 100)},
		{"past left edge", geom.Vec(-3, 50), geom.Vec(w, 50)},
		{"past bottom edge", geom.Vec(10, h+1), geom.Vec(10, 0)},
		{"past top edge", geom.Vec(10, -1), geom.Vec(10, h)},
		{"inside", geom.Vec(10, 10), geom.Vec(10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newQuietSpace(t, geom.Vec(w, h), DefaultParams())
			b := body.New(10, 2, tt.start)
			s.AddBody(b)
			s.Update(0.016)
			if b.Position != tt.want {
				t.Errorf("position = %v, want %v", b.Position, tt.want)
			}
		})
	}
}

func TestUpdate_WrapIsSingleSnap(t *testing.T) {
	s := newQuietSpace(t, geom.Vec(100, 100), DefaultParams())
	b := body.New(1, 0, geom.Vec(50, 50))
	b.Velocity = geom.Vec(-1000, 0)
	s.AddBody(b)

	s.Update(1)
	if b.Position.X != 100 {
		t.Errorf("expected snap to far edge, got %v", b.Position)
	}
}

func TestUpdate_UnplacedBodyStaysInSimulation(t *testing.T) {
	s := newQuietSpace(t, geom.Vec(100, 100), DefaultParams())
	s.AddBody(body.New(1, 0, geom.Vec(50, 50)))
	s.AddBody(body.New(1, 0, geom.Vec(150, 50)))

	s.Update(0.01)
	if s.Unplaced() != 1 {
		t.Errorf("Unplaced() = %d, want 1", s.Unplaced())
	}
	if len(s.Bodies()) != 2 {
		t.Errorf("body dropped from simulation")
	}
}

func TestUpdate_ConservesMomentum(t *testing.T) {
	s := newQuietSpace(t, geom.Vec(1000, 1000), DefaultParams())
	a := body.New(10, 2, geom.Vec(450, 500))
	b := body.New(10, 2, geom.Vec(550, 500))
	s.AddBody(a)
	s.AddBody(b)

	for i := 0; i < 5; i++ {
		s.Update(0.01)
	}

	p := a.Momentum().Add(b.Momentum())
	if p.Magnitude() > 1e-9 {
		t.Errorf("net momentum %v, want 0", p)
	}
	if a.Velocity.X <= 0 || b.Velocity.X >= 0 {
		t.Errorf("bodies should accelerate toward each other: %v %v", a.Velocity, b.Velocity)
	}
	if s.Steps() != 5 {
		t.Errorf("Steps() = %d", s.Steps())
	}
}

func TestUpdate_SemiImplicitEuler(t *testing.T) {
	p := DefaultParams()
	s := newQuietSpace(t, geom.Vec(1000, 1000), p)
	a := body.New(10, 2, geom.Vec(400, 500))
	b := body.New(10, 2, geom.Vec(500, 500))
	s.AddBody(a)
	s.AddBody(b)

	const dt = 0.5
	f := p.G * 100 / (100*100 + p.EpsilonSquared())
	v := f / 10 * dt

	s.Update(dt)

	if math.Abs(a.Velocity.X-v) > 1e-9 {
		t.Errorf("velocity = %v, want %v", a.Velocity.X, v)
	}
	if math.Abs(a.Position.X-(400+v*dt)) > 1e-9 {
		t.Errorf("position = %v, want %v", a.Position.X, 400+v*dt)
	}
}

func TestUpdate_ParallelMatchesSerial(t *testing.T) {
	serial := DefaultParams()
	parallel := DefaultParams()
	parallel.Workers = 4

	a := randomSpace(t, 600, serial, 5)
	b := randomSpace(t, 600, parallel, 5)

	for i := 0; i < 3; i++ {
		a.Update(0.01)
		b.Update(0.01)
	}

	for i := range a.Bodies() {
		if a.Bodies()[i].Position != b.Bodies()[i].Position {
			t.Fatalf("body %d diverged: %v vs %v", i, a.Bodies()[i].Position, b.Bodies()[i].Position)
		}
	}
}

func BenchmarkUpdate(b *testing.B) {
	for _, theta := range []float64{0, 0.5, 1.0} {
		p := DefaultParams()
		p.Theta = theta
		s := randomSpace(b, 1000, p, 1)
		b.Run(thetaName(theta), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				s.Update(0.001)
			}
		})
	}
}

func thetaName(theta float64) string {
	switch theta {
	case 0:
		return "theta=0"
	case 0.5:
		return "theta=0.5"
	}
	return "theta=1"
}
