package storage

import "github.com/san-kum/gravsim/internal/config"

// InfoFromConfig records the parts of cfg needed to reproduce a run.
func InfoFromConfig(cfg *config.Config) RunInfo {
	return RunInfo{
		Scenario: cfg.Scenario,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Width:    cfg.Viewport.Width,
		Height:   cfg.Viewport.Height,
		Bodies:   cfg.Bodies,
		Params:   cfg.Physics,
	}
}

// Config rebuilds the config a run was produced from. Fields not recorded in
// RunInfo take their defaults.
func (ri RunInfo) Config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scenario = ri.Scenario
	cfg.Seed = ri.Seed
	cfg.Dt = ri.Dt
	cfg.Duration = ri.Duration
	cfg.Viewport = config.ViewportConfig{Width: ri.Width, Height: ri.Height}
	cfg.Bodies = ri.Bodies
	cfg.Physics = ri.Params
	return cfg
}
