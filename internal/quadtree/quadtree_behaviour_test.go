package quadtree_test

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/quadtree"
)

var _ = Describe("Node", func() {
	var (
		tree *quadtree.Node
		rng  *rand.Rand
	)

	BeforeEach(func() {
		tree = quadtree.New(geom.BoxFromExtent(geom.Vec(800, 600)),
			quadtree.WithLogger(log.New(io.Discard)))
		rng = rand.New(rand.NewSource(42))
	})

	randomBody := func() *body.Body {
		return body.New(1+rng.Float64()*9, 2, geom.Vec(rng.Float64()*800, rng.Float64()*600))
	}

	Context("when bodies are inserted at distinct positions", func() {
		It("counts every body", func() {
			for i := 0; i < 300; i++ {
				Expect(tree.Insert(randomBody())).To(BeTrue())
			}
			Expect(tree.Count()).To(Equal(300))
		})

		It("keeps every internal node fully populated", func() {
			for i := 0; i < 300; i++ {
				tree.Insert(randomBody())
			}
			tree.Walk(func(n *quadtree.Node) bool {
				children, ok := n.Children()
				if ok {
					for _, c := range children {
						Expect(c).NotTo(BeNil())
					}
					Expect(n.LeafBodies()).To(BeNil())
				}
				return true
			})
		})

		It("keeps every leaf within capacity", func() {
			for i := 0; i < 300; i++ {
				tree.Insert(randomBody())
			}
			tree.Walk(func(n *quadtree.Node) bool {
				if n.IsLeaf() {
					Expect(len(n.LeafBodies())).To(BeNumerically("<=", quadtree.DefaultCapacity))
				}
				return true
			})
		})
	})

	Context("when a body is inserted and removed again", func() {
		It("returns the tree to an equivalent state", func() {
			for i := 0; i < 40; i++ {
				tree.Insert(randomBody())
			}
			before := tree.Stats()

			extra := randomBody()
			Expect(tree.Insert(extra)).To(BeTrue())
			Expect(tree.Count()).To(Equal(41))
			Expect(tree.Remove(extra)).To(BeTrue())

			Expect(tree.Count()).To(Equal(40))
			Expect(tree.Stats().Bodies).To(Equal(before.Bodies))
		})

		It("reverts a single subdivision", func() {
			bodies := make([]*body.Body, 0, 5)
			for i := 0; i < 4; i++ {
				b := randomBody()
				bodies = append(bodies, b)
				tree.Insert(b)
			}
			Expect(tree.IsLeaf()).To(BeTrue())

			extra := randomBody()
			tree.Insert(extra)
			Expect(tree.IsLeaf()).To(BeFalse())

			tree.Remove(extra)
			tree.Remove(bodies[0])
			Expect(tree.IsLeaf()).To(BeTrue())
			Expect(tree.Count()).To(Equal(3))
		})
	})

	Context("aggregate queries", func() {
		It("reports the boundary center for an empty node", func() {
			Expect(tree.CenterOfMass()).To(Equal(tree.Boundary().Center))
			Expect(tree.TotalMass()).To(BeZero())
		})

		It("reports the boundary center for massless bodies", func() {
			tree.Insert(body.New(0, 1, geom.Vec(100, 100)))
			Expect(tree.CenterOfMass()).To(Equal(geom.Vec(400, 300)))
		})

		It("matches a direct weighted average", func() {
			var mass float64
			var weighted geom.Vector2
			for i := 0; i < 100; i++ {
				b := randomBody()
				tree.Insert(b)
				mass += b.Mass
				weighted = weighted.Add(b.Position.Scale(b.Mass))
			}

			com := tree.CenterOfMass()
			Expect(tree.TotalMass()).To(BeNumerically("~", mass, 1e-9))
			Expect(com.X).To(BeNumerically("~", weighted.X/mass, 1e-9))
			Expect(com.Y).To(BeNumerically("~", weighted.Y/mass, 1e-9))
		})
	})
})
