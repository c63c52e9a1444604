package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-linkdots/internal/core"
)

// Theme contains the visual styles for the game screen and the menus.
type Theme struct {
	Name string

	// Cell colors used by RenderScreen
	Palette map[core.Color]lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	// History styles
	TableBorder   lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	HelpText      lipgloss.Style
	EmptyText     lipgloss.Style
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// ClassicTheme returns the default colored theme.
func ClassicTheme() Theme {
	return Theme{
		Name: "classic",
		Palette: map[core.Color]lipgloss.Style{
			core.ColorDefault:       lipgloss.NewStyle(),
			core.ColorRed:           fg("1"),
			core.ColorGreen:         fg("2"),
			core.ColorYellow:        fg("3"),
			core.ColorBlue:          fg("4"),
			core.ColorMagenta:       fg("5"),
			core.ColorCyan:          fg("6"),
			core.ColorWhite:         fg("7"),
			core.ColorBrightRed:     fg("9"),
			core.ColorBrightGreen:   fg("10"),
			core.ColorBrightYellow:  fg("11"),
			core.ColorBrightBlue:    fg("12"),
			core.ColorBrightMagenta: fg("13"),
			core.ColorBrightCyan:    fg("14"),
			core.ColorBrightWhite:   fg("15"),
			core.ColorOrange:        fg("208"),
			core.ColorPurple:        fg("135"),
			core.ColorGray:          fg("245"),
		},

		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuDescription: fg("245"),

		TableBorder:   fg("240"),
		TableHeader:   fg("240").Bold(true),
		TableSelected: fg("229").Background(lipgloss.Color("57")),
		HelpText:      fg("241"),
		EmptyText:     fg("241").Italic(true),
	}
}

// MonoTheme returns a grayscale theme.
func MonoTheme() Theme {
	theme := ClassicTheme()
	theme.Name = "mono"
	for c := range theme.Palette {
		theme.Palette[c] = fg("252")
	}
	theme.Palette[core.ColorDefault] = lipgloss.NewStyle()
	theme.Palette[core.ColorGray] = fg("242")
	theme.Palette[core.ColorBrightWhite] = fg("255").Bold(true)

	theme.MenuTitle = fg("255").Bold(true)
	theme.MenuItemActive = fg("255").Bold(true).Underline(true)
	theme.TableSelected = fg("0").Background(lipgloss.Color("250"))
	return theme
}

// ThemeByName returns the named theme, falling back to classic.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonoTheme()
	}
	return ClassicTheme()
}
