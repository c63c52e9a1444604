package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration and validates it.
// Search order: customPath -> ~/.linkdots/configs/linkdots.yaml -> ./configs/linkdots.yaml -> embedded default
func Load(customPath string) (LinkDotsConfig, error) {
	// Missing keys keep their default values.
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Validate()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("linkdots.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "linkdots.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yamlUnmarshalDefaults(&cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Validate()
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable or broken files are skipped.
func tryLoad(path string) (LinkDotsConfig, bool) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	cfg.Validate()
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// DataDir returns ~/.linkdots, or empty if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".linkdots")
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *LinkDotsConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Generator.MaxPairs = min(cfg.Generator.MaxPairs, 5)
		cfg.Generator.LevelsPerPairStep = max(cfg.Generator.LevelsPerPairStep, 5)
		cfg.Generator.MaxDistance = min(cfg.Generator.MaxDistance, 4)
		cfg.Rules.SnapRadius = 0.5
	case DifficultyHard:
		cfg.Generator.MinPairs = max(cfg.Generator.MinPairs, 3)
		cfg.Generator.LevelsPerPairStep = max(cfg.Generator.LevelsPerPairStep-1, 1)
		cfg.Generator.LevelsPerGridStep = max(cfg.Generator.LevelsPerGridStep-2, 1)
		cfg.Generator.MaxDistance = cfg.Generator.MaxDistance + 2
		cfg.Rules.SnapRadius = 0.35
	}
	cfg.Validate()
}
