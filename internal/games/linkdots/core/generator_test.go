package core_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
)

// zeroRand always picks the first option.
type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func TestDifficulty(t *testing.T) {
	tests := []struct {
		level     int
		wantSize  int
		wantPairs int
	}{
		{-3, 4, 2},
		{0, 4, 2},
		{2, 4, 2},
		{3, 4, 3},
		{4, 4, 3},
		{5, 5, 3},
		{14, 6, 6},
		{18, 7, 8},
		{20, 8, 8},
		{100, 8, 8},
	}

	for _, tt := range tests {
		size, pairs := core.Difficulty(tt.level)
		if size != tt.wantSize || pairs != tt.wantPairs {
			t.Errorf("Difficulty(%d) = (%d, %d), expected (%d, %d)", tt.level, size, pairs, tt.wantSize, tt.wantPairs)
		}
	}
}

func TestGeneratorBounds(t *testing.T) {
	gen := core.NewGenerator(rand.New(rand.NewSource(2024)), core.DefaultGenParams())
	prevSize := 0

	for level := 0; level <= 100; level++ {
		desc := gen.Generate(level)

		if desc.GridSize < 4 || desc.GridSize > 8 {
			t.Fatalf("level %d: grid size %d outside [4,8]", level, desc.GridSize)
		}
		if desc.GridSize < prevSize {
			t.Fatalf("level %d: grid size shrank from %d to %d", level, prevSize, desc.GridSize)
		}
		prevSize = desc.GridSize

		if desc.RequestedPairs < 2 || desc.RequestedPairs > 8 {
			t.Fatalf("level %d: requested pairs %d outside [2,8]", level, desc.RequestedPairs)
		}
		if desc.Pairs() > desc.RequestedPairs {
			t.Fatalf("level %d: %d pairs placed, only %d requested", level, desc.Pairs(), desc.RequestedPairs)
		}
		if err := desc.Validate(); err != nil {
			t.Fatalf("level %d: invalid descriptor: %v", level, err)
		}

		byColor := make(map[string][]core.Coord)
		seen := make(map[core.Coord]bool)
		for _, p := range desc.Points {
			c := core.C(p.X, p.Y)
			if p.X < 0 || p.X >= desc.GridSize || p.Y < 0 || p.Y >= desc.GridSize {
				t.Fatalf("level %d: point %v out of bounds", level, c)
			}
			if seen[c] {
				t.Fatalf("level %d: two points share %v", level, c)
			}
			seen[c] = true
			byColor[p.Color] = append(byColor[p.Color], c)
		}
		for color, cells := range byColor {
			if len(cells) != 2 {
				t.Fatalf("level %d: color %s has %d points", level, color, len(cells))
			}
			if d := cells[0].Manhattan(cells[1]); d < 2 || d > 6 {
				t.Fatalf("level %d: color %s distance %d outside [2,6]", level, color, d)
			}
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a := core.NewGenerator(rand.New(rand.NewSource(42)), core.DefaultGenParams())
	b := core.NewGenerator(rand.New(rand.NewSource(42)), core.DefaultGenParams())

	for level := 0; level < 30; level++ {
		da, db := a.Generate(level), b.Generate(level)
		if !reflect.DeepEqual(da, db) {
			t.Fatalf("level %d differs for the same seed:\n%+v\n%+v", level, da, db)
		}
	}
}

func TestGeneratorExactOutput(t *testing.T) {
	desc := core.GenerateLevel(0, zeroRand{})

	want := core.LevelDescriptor{
		Level:          0,
		GridSize:       4,
		RequestedPairs: 2,
		Points: []core.PointSpec{
			pt(0, 0, "blue"), pt(0, 2, "blue"),
			pt(0, 1, "green"), pt(1, 0, "green"),
		},
	}
	if !reflect.DeepEqual(desc, want) {
		t.Errorf("GenerateLevel(0) =\n%+v\nexpected\n%+v", desc, want)
	}
}

func TestGeneratorShortfallSkipsColors(t *testing.T) {
	params := core.DefaultGenParams()
	params.MinDistance = 7 // Farther than any two cells of a 4x4 grid
	params.MaxDistance = 9

	gen := core.NewGenerator(rand.New(rand.NewSource(1)), params)
	desc := gen.Generate(0)

	if len(desc.Points) != 0 {
		t.Errorf("expected no points, got %v", desc.Points)
	}
	if desc.RequestedPairs != 2 || desc.Shortfall() != 2 {
		t.Errorf("RequestedPairs = %d, Shortfall() = %d; expected 2, 2", desc.RequestedPairs, desc.Shortfall())
	}
}

func TestGeneratorCrowdedBoardNeverFails(t *testing.T) {
	params := core.DefaultGenParams()
	params.MaxGridSize = 4
	params.MinPairs = 8

	for seed := int64(0); seed < 50; seed++ {
		gen := core.NewGenerator(rand.New(rand.NewSource(seed)), params)
		desc := gen.Generate(0)
		if desc.RequestedPairs != 8 {
			t.Fatalf("RequestedPairs = %d, expected 8", desc.RequestedPairs)
		}
		if err := desc.Validate(); err != nil {
			t.Fatalf("seed %d: invalid descriptor: %v", seed, err)
		}
		if desc.Pairs()+desc.Shortfall() != 8 {
			t.Fatalf("seed %d: pairs %d + shortfall %d != 8", seed, desc.Pairs(), desc.Shortfall())
		}
	}
}

func TestGenParamsNormalize(t *testing.T) {
	p := core.GenParams{MaxGridSize: 40, MaxPairs: 20}.Normalize()
	if p.MaxGridSize != core.MaxGridSize {
		t.Errorf("MaxGridSize = %d, expected %d", p.MaxGridSize, core.MaxGridSize)
	}
	if p.MaxPairs != 8 {
		t.Errorf("MaxPairs = %d, expected palette size 8", p.MaxPairs)
	}
	if p.LevelsPerGridStep <= 0 || p.LevelsPerPairStep <= 0 {
		t.Error("steps must be positive")
	}
}
