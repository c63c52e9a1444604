// Package config provides YAML-based configuration loading and
// difficulty presets for linkdots.
package config

// LinkDotsConfig contains all configuration for the game.
type LinkDotsConfig struct {
	Rules     RulesConfig     `yaml:"rules"`
	Generator GeneratorConfig `yaml:"generator"`
	Display   DisplayConfig   `yaml:"display"`
}

// RulesConfig tunes how pointer input becomes paths. Distances are in cells.
type RulesConfig struct {
	MinPointDistance float64 `yaml:"min_point_distance"`
	SnapRadius       float64 `yaml:"snap_radius"`
	LockConnected    bool    `yaml:"lock_connected"`
	RemoveTolerance  float64 `yaml:"remove_tolerance"` // Click distance for removing a line
}

// GeneratorConfig defines the difficulty curve of generated levels.
type GeneratorConfig struct {
	MinGridSize       int `yaml:"min_grid_size"`
	MaxGridSize       int `yaml:"max_grid_size"`
	LevelsPerGridStep int `yaml:"levels_per_grid_step"`
	MinPairs          int `yaml:"min_pairs"`
	MaxPairs          int `yaml:"max_pairs"`
	LevelsPerPairStep int `yaml:"levels_per_pair_step"`
	MinDistance       int `yaml:"min_distance"` // Manhattan distance window between a pair
	MaxDistance       int `yaml:"max_distance"`
}

// DisplayConfig defines how the board is drawn in the terminal.
type DisplayConfig struct {
	CellWidth     int     `yaml:"cell_width"`  // Terminal columns per grid cell
	CellHeight    int     `yaml:"cell_height"` // Terminal rows per grid cell
	Theme         string  `yaml:"theme"`       // "classic" or "mono"
	BannerSeconds float64 `yaml:"banner_seconds"`
}

// Validate replaces out-of-range values with defaults.
func (c *LinkDotsConfig) Validate() {
	def := DefaultConfig()

	if c.Rules.MinPointDistance <= 0 || c.Rules.MinPointDistance >= 1 {
		c.Rules.MinPointDistance = def.Rules.MinPointDistance
	}
	if c.Rules.SnapRadius <= 0 || c.Rules.SnapRadius > 0.5 {
		c.Rules.SnapRadius = def.Rules.SnapRadius
	}
	if c.Rules.RemoveTolerance <= 0 || c.Rules.RemoveTolerance > 0.5 {
		c.Rules.RemoveTolerance = def.Rules.RemoveTolerance
	}

	g := &c.Generator
	if g.MinGridSize < 2 || g.MinGridSize > 16 {
		g.MinGridSize = def.Generator.MinGridSize
	}
	if g.MaxGridSize < g.MinGridSize || g.MaxGridSize > 16 {
		g.MaxGridSize = max(g.MinGridSize, def.Generator.MaxGridSize)
	}
	if g.LevelsPerGridStep < 1 {
		g.LevelsPerGridStep = def.Generator.LevelsPerGridStep
	}
	if g.MinPairs < 1 {
		g.MinPairs = def.Generator.MinPairs
	}
	if g.MaxPairs < g.MinPairs {
		g.MaxPairs = max(g.MinPairs, def.Generator.MaxPairs)
	}
	if g.LevelsPerPairStep < 1 {
		g.LevelsPerPairStep = def.Generator.LevelsPerPairStep
	}
	if g.MinDistance < 1 {
		g.MinDistance = def.Generator.MinDistance
	}
	if g.MaxDistance < g.MinDistance {
		g.MaxDistance = max(g.MinDistance, def.Generator.MaxDistance)
	}

	if c.Display.CellWidth < 2 {
		c.Display.CellWidth = def.Display.CellWidth
	}
	if c.Display.CellHeight < 1 {
		c.Display.CellHeight = def.Display.CellHeight
	}
	if c.Display.Theme != "classic" && c.Display.Theme != "mono" {
		c.Display.Theme = def.Display.Theme
	}
	if c.Display.BannerSeconds <= 0 {
		c.Display.BannerSeconds = def.Display.BannerSeconds
	}
}
