package config

import (
	"fmt"
	"os"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/space"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt             = 1.0 / 60
	DefaultDuration       = 10.0
	DefaultWidth          = 1920.0
	DefaultHeight         = 1080.0
	DefaultScenario       = "uniform"
	DefaultSnapshotEvery  = 1
	DefaultSpeedThreshold = 500.0
)

type Config struct {
	Scenario       string         `yaml:"scenario"`
	Seed           int64          `yaml:"seed"`
	Dt             float64        `yaml:"dt"`
	Duration       float64        `yaml:"duration"`
	SnapshotEvery  int            `yaml:"snapshot_every"`
	SpeedThreshold float64        `yaml:"speed_threshold"`
	Viewport       ViewportConfig `yaml:"viewport"`
	Bodies         scenario.Spec  `yaml:"bodies"`
	Physics        space.Params   `yaml:"physics"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:       DefaultScenario,
		Dt:             DefaultDt,
		Duration:       DefaultDuration,
		SnapshotEvery:  DefaultSnapshotEvery,
		SpeedThreshold: DefaultSpeedThreshold,
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Bodies:  scenario.DefaultSpec(),
		Physics: space.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Bodies.Count < 0 {
		return fmt.Errorf("body count must not be negative, got %d", c.Bodies.Count)
	}
	return c.Physics.Validate()
}

func (c *Config) ViewportExtent() geom.Vector2 {
	return geom.Vec(c.Viewport.Width, c.Viewport.Height)
}

// Clone returns a deep copy safe to modify.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
