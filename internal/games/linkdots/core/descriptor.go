package core

import (
	"fmt"
	"sort"
)

// Grid size limits for any playable level, generated or hand-authored.
const (
	MinGridSize = 2
	MaxGridSize = 16
)

// PointSpec places one endpoint of a level.
type PointSpec struct {
	X     int    `json:"x" yaml:"x"`
	Y     int    `json:"y" yaml:"y"`
	Color string `json:"color" yaml:"color"`
}

// LevelDescriptor is everything needed to set up a board.
type LevelDescriptor struct {
	Level          int         `json:"level"`
	GridSize       int         `json:"gridSize"`
	RequestedPairs int         `json:"requestedPairs,omitempty"`
	Points         []PointSpec `json:"points"`
}

// Pairs returns the number of playable pairs in the descriptor.
func (d LevelDescriptor) Pairs() int {
	n := 0
	for _, p := range d.Points {
		if c, ok := ParseColor(p.Color); ok && c.Playable() {
			n++
		}
	}
	return n / 2
}

// Shortfall returns how many requested pairs the generator could not place.
func (d LevelDescriptor) Shortfall() int {
	if d.RequestedPairs <= d.Pairs() {
		return 0
	}
	return d.RequestedPairs - d.Pairs()
}

// Colors returns the playable colors used by the descriptor, in palette order.
func (d LevelDescriptor) Colors() []Color {
	seen := make(map[Color]bool)
	for _, p := range d.Points {
		if c, ok := ParseColor(p.Color); ok {
			seen[c] = true
		}
	}
	colors := make([]Color, 0, len(seen))
	for c := range seen {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })
	return colors
}

// Validate checks that the descriptor describes a playable board.
// Unknown color names are allowed and become blank endpoints.
func (d LevelDescriptor) Validate() error {
	if d.GridSize < MinGridSize || d.GridSize > MaxGridSize {
		return ValidationError{
			Code:    "BAD_GRID_SIZE",
			Message: fmt.Sprintf("grid size %d outside [%d, %d]", d.GridSize, MinGridSize, MaxGridSize),
		}
	}

	occupied := make(map[Coord]bool, len(d.Points))
	counts := make(map[Color]int)
	for _, p := range d.Points {
		c := C(p.X, p.Y)
		if p.X < 0 || p.X >= d.GridSize || p.Y < 0 || p.Y >= d.GridSize {
			return ValidationError{
				Code:    "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("point %s outside %dx%d grid", c, d.GridSize, d.GridSize),
			}
		}
		if occupied[c] {
			return ValidationError{
				Code:    "CELL_TAKEN",
				Message: fmt.Sprintf("two points share cell %s", c),
			}
		}
		occupied[c] = true

		if color, ok := ParseColor(p.Color); ok {
			counts[color]++
		}
	}

	if len(counts) == 0 {
		return ValidationError{
			Code:    "NO_PAIRS",
			Message: "level has no playable pairs",
		}
	}

	for _, color := range Palette() {
		if n, ok := counts[color]; ok && n != 2 {
			return ValidationError{
				Code:    "BAD_PAIR",
				Message: fmt.Sprintf("color %s has %d endpoints, expected 2", color, n),
			}
		}
	}

	return nil
}
