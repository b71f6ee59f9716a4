package space

import (
	"github.com/san-kum/gravsim/internal/geom"
	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny populations on the calling goroutine.
const minChunk = 64

// computeForces fills out[i] with the net force on s.bodies[i]. The tree is
// summarized before this runs, so workers only read shared state.
func (s *Space) computeForces(out []geom.Vector2) {
	n := len(s.bodies)
	workers := s.params.Workers
	if workers <= 1 || n <= minChunk {
		s.forceRange(out, 0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		lo, hi := start, end
		g.Go(func() error {
			s.forceRange(out, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Space) forceRange(out []geom.Vector2, start, end int) {
	for i := start; i < end; i++ {
		out[i] = s.NetForce(s.bodies[i], s.tree)
	}
}
