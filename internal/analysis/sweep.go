package analysis

import (
	"context"
	"time"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/space"
	"golang.org/x/sync/errgroup"
)

// ThetaPoint is the accuracy and cost of one opening angle.
type ThetaPoint struct {
	Theta     float64       `json:"theta"`
	MeanError float64       `json:"mean_error"`
	MaxError  float64       `json:"max_error"`
	Elapsed   time.Duration `json:"elapsed"`
}

// ThetaBuilder constructs a seeded space using the given opening angle.
type ThetaBuilder func(theta float64) (*space.Space, error)

// ThetaSweep measures the relative error of the tree force against direct
// summation for each theta. Points are evaluated concurrently, at most
// workers at a time, and returned in the order of thetas.
func ThetaSweep(ctx context.Context, build ThetaBuilder, thetas []float64, workers int) ([]ThetaPoint, error) {
	points := make([]ThetaPoint, len(thetas))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, theta := range thetas {
		i, theta := i, theta
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := measureTheta(build, theta)
			if err != nil {
				return err
			}
			points[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func measureTheta(build ThetaBuilder, theta float64) (ThetaPoint, error) {
	s, err := build(theta)
	if err != nil {
		return ThetaPoint{}, err
	}
	bodies := s.Bodies()
	if len(bodies) == 0 {
		return ThetaPoint{}, ErrNoBodies
	}

	tree := s.Tree()
	tree.Summarize()

	p := ThetaPoint{Theta: theta}
	approx := make([]geom.Vector2, len(bodies))
	start := time.Now()
	for i, b := range bodies {
		approx[i] = s.NetForce(b, tree)
	}
	p.Elapsed = time.Since(start)

	counted := 0
	for i, b := range bodies {
		exact := s.DirectForce(b)
		mag := exact.Magnitude()
		if mag == 0 {
			continue
		}
		rel := approx[i].Sub(exact).Magnitude() / mag
		p.MeanError += rel
		if rel > p.MaxError {
			p.MaxError = rel
		}
		counted++
	}
	if counted > 0 {
		p.MeanError /= float64(counted)
	}
	return p, nil
}
