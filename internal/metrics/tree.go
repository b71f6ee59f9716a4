package metrics

import "github.com/san-kum/gravsim/internal/space"

// TreeHeight reports the tallest quadtree built during the run.
type TreeHeight struct {
	max int
}

func NewTreeHeight() *TreeHeight { return &TreeHeight{} }

func (h *TreeHeight) Name() string { return "tree_height" }

func (h *TreeHeight) Observe(s *space.Space, t float64) {
	if st := s.Tree().Stats(); st.Height > h.max {
		h.max = st.Height
	}
}

func (h *TreeHeight) Value() float64 { return float64(h.max) }
func (h *TreeHeight) Reset()         { h.max = 0 }

// Unplaced counts body-steps in which a body was left out of the tree.
type Unplaced struct {
	total int
}

func NewUnplaced() *Unplaced { return &Unplaced{} }

func (u *Unplaced) Name() string { return "unplaced" }

func (u *Unplaced) Observe(s *space.Space, t float64) {
	u.total += s.Unplaced()
}

func (u *Unplaced) Value() float64 { return float64(u.total) }
func (u *Unplaced) Reset()         { u.total = 0 }
