// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	GridSize int               `yaml:"grid_size"`
	Points   []YAMLPoint       `yaml:"points"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLPoint represents a single endpoint in YAML format.
type YAMLPoint struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Color string `yaml:"color"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	GridSize int
	Points   []core.PointSpec
	Metadata map[string]string
}

// Descriptor converts the level into a board descriptor.
func (l Level) Descriptor(index int) core.LevelDescriptor {
	return core.LevelDescriptor{
		Level:    index,
		GridSize: l.GridSize,
		Points:   append([]core.PointSpec(nil), l.Points...),
	}
}

// ParseYAML parses and validates a YAML level file.
// Unknown color names are kept and become blank endpoints.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		GridSize: yl.GridSize,
		Points:   make([]core.PointSpec, 0, len(yl.Points)),
		Metadata: yl.Metadata,
	}
	for _, p := range yl.Points {
		level.Points = append(level.Points, core.PointSpec{X: p.X, Y: p.Y, Color: p.Color})
	}

	if level.ID == "" {
		return Level{}, errors.New("level has no id")
	}
	if err := level.Descriptor(0).Validate(); err != nil {
		return Level{}, fmt.Errorf("level %s: %w", level.ID, err)
	}

	return level, nil
}

// FormatYAML serializes a descriptor as a level file.
func FormatYAML(desc core.LevelDescriptor, id, name string) ([]byte, error) {
	yl := YAMLLevel{
		ID:       id,
		Name:     name,
		GridSize: desc.GridSize,
		Points:   make([]YAMLPoint, 0, len(desc.Points)),
	}
	if desc.RequestedPairs > 0 {
		yl.Metadata = map[string]string{
			"generated_level": fmt.Sprintf("%d", desc.Level),
			"requested_pairs": fmt.Sprintf("%d", desc.RequestedPairs),
		}
	}
	for _, p := range desc.Points {
		yl.Points = append(yl.Points, YAMLPoint{X: p.X, Y: p.Y, Color: p.Color})
	}

	data, err := yaml.Marshal(yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
