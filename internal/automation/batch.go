package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/space"
	"github.com/san-kum/gravsim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Batch is a scripted sequence of recorded runs.
type Batch struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Runs        []Step `yaml:"runs"`
}

// Step is one run of a batch. It starts from Preset, or the defaults when
// Preset is empty, and then applies whatever fields Config sets.
type Step struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
}

// Outcome records where a step's run was stored and what it measured.
type Outcome struct {
	Name    string
	RunID   string
	Steps   int
	Metrics map[string]float64
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBatch(data)
}

func ParseBatch(data []byte) (*Batch, error) {
	var b Batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if len(b.Runs) == 0 {
		return nil, fmt.Errorf("batch %q has no runs", b.Name)
	}
	return &b, nil
}

// Resolve returns the validated config of a step.
func (s *Step) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if !s.Config.IsZero() {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Runner executes batches and saves every run to a store.
type Runner struct {
	store    *storage.Store
	registry *scenario.Registry
	logger   *log.Logger
}

func NewRunner(store *storage.Store, registry *scenario.Registry, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{store: store, registry: registry, logger: logger}
}

// Run executes the steps in order and stops at the first failure, returning
// the outcomes completed so far.
func (r *Runner) Run(ctx context.Context, b *Batch) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(b.Runs))

	for i := range b.Runs {
		step := &b.Runs[i]
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		r.logger.Info("running batch step", "batch", b.Name, "step", name, "index", i+1, "of", len(b.Runs))

		cfg, err := step.Resolve()
		if err != nil {
			return outcomes, fmt.Errorf("step %s: %w", name, err)
		}

		s, err := cfg.NewSpace(r.registry, space.WithLogger(r.logger))
		if err != nil {
			return outcomes, fmt.Errorf("step %s: %w", name, err)
		}
		simulator := sim.New(s)
		for _, m := range metrics.Defaults(cfg.SpeedThreshold) {
			simulator.AddMetric(m)
		}

		result, err := simulator.Run(ctx, sim.Config{
			Dt:            cfg.Dt,
			Duration:      cfg.Duration,
			SnapshotEvery: cfg.SnapshotEvery,
			ValidateState: true,
		})
		if err != nil {
			return outcomes, fmt.Errorf("step %s run: %w", name, err)
		}

		runID, err := r.store.Save(storage.InfoFromConfig(cfg), result)
		if err != nil {
			return outcomes, fmt.Errorf("step %s save: %w", name, err)
		}

		outcomes = append(outcomes, Outcome{
			Name:    name,
			RunID:   runID,
			Steps:   result.StepsTaken,
			Metrics: result.Metrics,
		})
	}
	return outcomes, nil
}
