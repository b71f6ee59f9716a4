package scenario

import (
	"math/rand"
	"testing"

	"github.com/san-kum/gravsim/internal/geom"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"uniform", "disk", "clusters", "grid"} {
		if _, err := r.Get(name); err != nil {
			t.Errorf("missing scenario %s: %v", name, err)
		}
	}
	if _, err := r.Get("nonexistent"); err == nil {
		t.Error("expected error for unknown scenario")
	}

	names := r.List()
	if len(names) != 4 || names[0] != "clusters" {
		t.Errorf("unexpected list %v", names)
	}
}

func TestGeneratorsStayInViewport(t *testing.T) {
	viewport := geom.Vec(1280, 720)
	box := geom.BoxFromExtent(viewport)
	spec := DefaultSpec()
	spec.Count = 300

	r := NewRegistry()
	for _, name := range r.List() {
		t.Run(name, func(t *testing.T) {
			g, _ := r.Get(name)
			bodies := g(rand.New(rand.NewSource(1)), viewport, spec)
			if len(bodies) != spec.Count {
				t.Fatalf("got %d bodies, want %d", len(bodies), spec.Count)
			}
			for i, b := range bodies {
				if !box.Contains(b.Position) {
					t.Fatalf("body %d at %v outside viewport", i, b.Position)
				}
				if b.Mass != spec.Mass || b.Radius != spec.Radius {
					t.Fatalf("body %d has mass %v radius %v", i, b.Mass, b.Radius)
				}
			}
		})
	}
}

func TestUniformRespectsMargin(t *testing.T) {
	spec := DefaultSpec()
	bodies := Uniform(rand.New(rand.NewSource(9)), geom.Vec(800, 600), spec)
	for _, b := range bodies {
		if b.Position.X < 100 || b.Position.X > 700 || b.Position.Y < 100 || b.Position.Y > 500 {
			t.Fatalf("body at %v inside margin", b.Position)
		}
		if b.Velocity != geom.Zero {
			t.Fatalf("uniform bodies should start at rest")
		}
	}
}

func TestUniformIsDeterministic(t *testing.T) {
	spec := DefaultSpec()
	a := Uniform(rand.New(rand.NewSource(5)), geom.Vec(800, 600), spec)
	b := Uniform(rand.New(rand.NewSource(5)), geom.Vec(800, 600), spec)
	for i := range a {
		if a[i].Position != b[i].Position {
			t.Fatalf("body %d differs between identical seeds", i)
		}
	}
}

func TestDiskSpin(t *testing.T) {
	spec := DefaultSpec()
	spec.Spin = 0.1
	viewport := geom.Vec(800, 800)
	center := viewport.Scale(0.5)
	for _, b := range Disk(rand.New(rand.NewSource(2)), viewport, spec) {
		r := b.Position.Sub(center)
		if d := r.Dot(b.Velocity); d > 1e-9 || d < -1e-9 {
			t.Fatalf("velocity %v not tangential at offset %v", b.Velocity, r)
		}
	}
}

func TestGridEmpty(t *testing.T) {
	spec := DefaultSpec()
	spec.Count = 0
	if got := Grid(nil, geom.Vec(100, 100), spec); len(got) != 0 {
		t.Errorf("expected no bodies, got %d", len(got))
	}
}
