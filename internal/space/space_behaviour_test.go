package space_test

import (
	"io"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/space"
)

var _ = Describe("Space", func() {
	var (
		s      *space.Space
		params space.Params
	)

	const viewportWidth, viewportHeight = 1280.0, 720.0

	BeforeEach(func() {
		params = space.DefaultParams()
		var err error
		s, err = space.New(8, geom.Vec(viewportWidth, viewportHeight), params,
			space.WithLogger(log.New(io.Discard)))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Update", func() {
		It("rebuilds the tree from current positions", func() {
			b := body.New(10, 2, geom.Vec(100, 100))
			s.AddBody(b)
			b.Position = geom.Vec(1000, 600)

			s.Update(0)

			Expect(s.Tree().Count()).To(Equal(1))
			Expect(s.Tree().Query(geom.NewBoundingBox(geom.Vec(1000, 600), geom.Vec(1, 1)))).To(ConsistOf(b))
		})

		It("wraps a body past the right edge to zero", func() {
			b := body.New(10, 2, geom.Vec(viewportWidth+5, 100))
			s.AddBody(b)
			s.Update(0.016)
			Expect(b.Position.X).To(BeZero())
		})

		It("wraps a body past the left edge to the viewport width", func() {
			b := body.New(10, 2, geom.Vec(-3, 50))
			s.AddBody(b)
			s.Update(0.016)
			Expect(b.Position.X).To(Equal(viewportWidth))
		})

		It("computes every force before moving any body", func() {
			left := body.New(10, 2, geom.Vec(600, 360))
			right := body.New(10, 2, geom.Vec(700, 360))
			s.AddBody(left)
			s.AddBody(right)

			s.Update(1)

			Expect(left.Velocity.X).To(BeNumerically("~", -right.Velocity.X, 1e-12))
		})
	})

	Describe("NetForce", func() {
		It("matches the closed form for two bodies", func() {
			a := body.New(10, 2, geom.Vec(500, 360))
			b := body.New(10, 2, geom.Vec(600, 360))
			s.AddBody(a)
			s.AddBody(b)

			want := params.G * 10 * 10 / (100*100 + params.Epsilon*params.Epsilon)
			f := s.NetForce(b, s.Tree())
			Expect(f.Magnitude()).To(BeNumerically("~", want, want*1e-12))
			Expect(f.X).To(BeNumerically("<", 0))
		})

		It("ignores the target itself", func() {
			a := body.New(10, 2, geom.Vec(500, 360))
			s.AddBody(a)
			Expect(s.NetForce(a, s.Tree())).To(Equal(geom.Zero))
		})
	})
})
