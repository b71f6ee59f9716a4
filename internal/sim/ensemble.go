package sim

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Factory builds an independent simulator for one ensemble member.
type Factory func(seed int64) (*Simulator, error)

// Ensemble runs the same configuration over consecutive seeds.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
	workers   int
}

func NewEnsemble(factory Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

// SetWorkers bounds how many members run at once. Zero means no bound.
func (e *Ensemble) SetWorkers(n int) { e.workers = n }

// Run executes every member and returns the results indexed by seed offset.
// The first error cancels the remaining members.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}
	for i := 0; i < e.numRuns; i++ {
		i := i
		g.Go(func() error {
			s, err := e.factory(e.seedStart + int64(i))
			if err != nil {
				return err
			}
			res, err := s.Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MetricStats is the spread of one metric across ensemble members.
type MetricStats struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Aggregate summarises every metric reported by results, sorted by name.
func Aggregate(results []*Result) []MetricStats {
	values := make(map[string][]float64)
	for _, r := range results {
		if r == nil {
			continue
		}
		for name, v := range r.Metrics {
			values[name] = append(values[name], v)
		}
	}

	stats := make([]MetricStats, 0, len(values))
	for name, vs := range values {
		st := MetricStats{Name: name, Min: vs[0], Max: vs[0]}
		for _, v := range vs {
			st.Mean += v
			st.Min = math.Min(st.Min, v)
			st.Max = math.Max(st.Max, v)
		}
		st.Mean /= float64(len(vs))
		for _, v := range vs {
			st.StdDev += (v - st.Mean) * (v - st.Mean)
		}
		st.StdDev = math.Sqrt(st.StdDev / float64(len(vs)))
		stats = append(stats, st)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}
