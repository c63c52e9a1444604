package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
)

func pt(x, y int, color string) core.PointSpec {
	return core.PointSpec{X: x, Y: y, Color: color}
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name     string
		desc     core.LevelDescriptor
		wantCode string
	}{
		{
			name: "valid",
			desc: core.LevelDescriptor{GridSize: 4, Points: []core.PointSpec{
				pt(0, 0, "red"), pt(3, 0, "red"),
			}},
		},
		{
			name: "blank endpoints allowed",
			desc: core.LevelDescriptor{GridSize: 4, Points: []core.PointSpec{
				pt(0, 0, "red"), pt(3, 0, "red"), pt(1, 1, "white"),
			}},
		},
		{
			name:     "grid too small",
			desc:     core.LevelDescriptor{GridSize: 1},
			wantCode: "BAD_GRID_SIZE",
		},
		{
			name: "out of bounds",
			desc: core.LevelDescriptor{GridSize: 4, Points: []core.PointSpec{
				pt(0, 0, "red"), pt(4, 0, "red"),
			}},
			wantCode: "OUT_OF_BOUNDS",
		},
		{
			name: "shared cell",
			desc: core.LevelDescriptor{GridSize: 4, Points: []core.PointSpec{
				pt(0, 0, "red"), pt(0, 0, "blue"),
			}},
			wantCode: "CELL_TAKEN",
		},
		{
			name: "unpaired color",
			desc: core.LevelDescriptor{GridSize: 4, Points: []core.PointSpec{
				pt(0, 0, "red"), pt(3, 0, "red"), pt(1, 1, "blue"),
			}},
			wantCode: "BAD_PAIR",
		},
		{
			name: "only blanks",
			desc: core.LevelDescriptor{GridSize: 4, Points: []core.PointSpec{
				pt(0, 0, "white"),
			}},
			wantCode: "NO_PAIRS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, expected nil", err)
				}
				return
			}
			var ve core.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if ve.Code != tt.wantCode {
				t.Errorf("Validate() code = %s, expected %s", ve.Code, tt.wantCode)
			}
		})
	}
}

func TestDescriptorPairsAndShortfall(t *testing.T) {
	desc := core.LevelDescriptor{
		GridSize:       4,
		RequestedPairs: 3,
		Points: []core.PointSpec{
			pt(0, 0, "red"), pt(3, 0, "red"),
			pt(0, 2, "Blue"), pt(3, 2, "blue"),
			pt(1, 1, "white"),
		},
	}

	if got := desc.Pairs(); got != 2 {
		t.Errorf("Pairs() = %d, expected 2", got)
	}
	if got := desc.Shortfall(); got != 1 {
		t.Errorf("Shortfall() = %d, expected 1", got)
	}
	colors := desc.Colors()
	if len(colors) != 2 || colors[0] != core.ColorRed || colors[1] != core.ColorBlue {
		t.Errorf("Colors() = %v, expected [red blue]", colors)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   core.Color
		wantOK bool
	}{
		{"red", core.ColorRed, true},
		{"Purple", core.ColorPurple, true},
		{" cyan ", core.ColorCyan, true},
		{"o", core.ColorOrange, true},
		{"white", core.ColorBlank, false},
		{"", core.ColorBlank, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := core.ParseColor(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPaletteOrder(t *testing.T) {
	want := []core.Color{
		core.ColorRed, core.ColorBlue, core.ColorGreen, core.ColorYellow,
		core.ColorMagenta, core.ColorCyan, core.ColorOrange, core.ColorPurple,
	}
	got := core.Palette()
	if len(got) != len(want) {
		t.Fatalf("Palette() has %d colors, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Palette()[%d] = %v, expected %v", i, got[i], want[i])
		}
		if !got[i].Playable() {
			t.Errorf("%v should be playable", got[i])
		}
	}
	if core.ColorBlank.Playable() {
		t.Error("blank must not be playable")
	}
}
