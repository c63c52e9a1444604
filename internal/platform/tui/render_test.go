package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-linkdots/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextWithColor(1, 0, "Level", core.ColorBrightCyan)
	s.SetWithColor(0, 2, '●', core.ColorRed)
	s.SetWithColor(11, 2, '●', core.ColorRed)

	for _, theme := range []Theme{ClassicTheme(), MonoTheme()} {
		t.Run(theme.Name, func(t *testing.T) {
			out := RenderScreen(s, theme)
			lines := strings.Split(out, "\n")
			if len(lines) != 3 {
				t.Fatalf("got %d lines, expected 3", len(lines))
			}
			if !strings.Contains(lines[0], "Level") {
				t.Errorf("first line %q does not contain the text", lines[0])
			}
			if strings.Count(lines[2], "●") != 2 {
				t.Errorf("last line %q should have two dots", lines[2])
			}
		})
	}
}

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"mono", "mono"},
		{"classic", "classic"},
		{"", "classic"},
		{"neon", "classic"},
	}
	for _, tt := range tests {
		if got := ThemeByName(tt.name).Name; got != tt.want {
			t.Errorf("ThemeByName(%q) = %q, expected %q", tt.name, got, tt.want)
		}
	}
}

func TestThemesCoverEveryColor(t *testing.T) {
	for _, theme := range []Theme{ClassicTheme(), MonoTheme()} {
		for c := core.ColorDefault; c <= core.ColorGray; c++ {
			if _, ok := theme.Palette[c]; !ok {
				t.Errorf("%s theme has no style for color %d", theme.Name, c)
			}
		}
	}
}
