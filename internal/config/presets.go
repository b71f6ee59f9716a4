package config

import (
	"sort"

	"github.com/san-kum/gravsim/internal/scenario"
	"github.com/san-kum/gravsim/internal/space"
)

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	"classic": preset(func(c *Config) {
		c.Scenario = "uniform"
		c.Bodies = scenario.Spec{Count: 220, Mass: 10, Radius: 2, Margin: 100}
	}),
	"galaxy": preset(func(c *Config) {
		c.Scenario = "disk"
		c.Duration = 30
		c.Bodies = scenario.Spec{Count: 800, Mass: 5, Radius: 1, Margin: 60, Spin: 0.15}
	}),
	"collision": preset(func(c *Config) {
		c.Scenario = "clusters"
		c.Duration = 20
		c.Bodies = scenario.Spec{Count: 600, Mass: 8, Radius: 1.5}
	}),
	"lattice": preset(func(c *Config) {
		c.Scenario = "grid"
		c.Bodies = scenario.Spec{Count: 400, Mass: 10, Radius: 2, Margin: 200}
	}),
	"accurate": preset(func(c *Config) {
		c.Physics = space.DefaultParams()
		c.Physics.Theta = 0.2
	}),
	"fast": preset(func(c *Config) {
		c.Bodies.Count = 2000
		c.Physics.Theta = 1.0
		c.Physics.Workers = 4
		c.SnapshotEvery = 10
	}),
}

// GetPreset returns a copy of the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
