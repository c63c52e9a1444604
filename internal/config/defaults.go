package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/linkdots.yaml
var defaultLinkDotsYAML []byte

// DefaultConfig returns the default configuration.
func DefaultConfig() LinkDotsConfig {
	return LinkDotsConfig{
		Rules: RulesConfig{
			MinPointDistance: 0.1,
			SnapRadius:       0.45,
			LockConnected:    false,
			RemoveTolerance:  0.3,
		},
		Generator: GeneratorConfig{
			MinGridSize:       4,
			MaxGridSize:       8,
			LevelsPerGridStep: 5,
			MinPairs:          2,
			MaxPairs:          8,
			LevelsPerPairStep: 3,
			MinDistance:       2,
			MaxDistance:       6,
		},
		Display: DisplayConfig{
			CellWidth:     6,
			CellHeight:    3,
			Theme:         "classic",
			BannerSeconds: 0.6,
		},
	}
}

// yamlUnmarshalDefaults decodes the embedded default file over cfg.
func yamlUnmarshalDefaults(cfg *LinkDotsConfig) error {
	return yaml.Unmarshal(defaultLinkDotsYAML, cfg)
}
