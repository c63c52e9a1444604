package core

import "strings"

// Color identifies the color of an endpoint pair.
// The zero value is ColorBlank, which never takes part in play.
type Color uint8

const (
	ColorBlank Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorOrange
	ColorPurple
	ColorCount // Sentinel value for iteration
)

var colorNames = [ColorCount]string{
	ColorBlank:   "blank",
	ColorRed:     "red",
	ColorBlue:    "blue",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorOrange:  "orange",
	ColorPurple:  "purple",
}

var colorChars = [ColorCount]rune{
	ColorBlank:   '#',
	ColorRed:     'R',
	ColorBlue:    'B',
	ColorGreen:   'G',
	ColorYellow:  'Y',
	ColorMagenta: 'M',
	ColorCyan:    'C',
	ColorOrange:  'O',
	ColorPurple:  'P',
}

// String returns the lower-case name of the color.
func (c Color) String() string {
	if c >= ColorCount {
		return "unknown"
	}
	return colorNames[c]
}

// Char returns a single upper-case letter for ASCII rendering.
func (c Color) Char() rune {
	if c >= ColorCount {
		return '?'
	}
	return colorChars[c]
}

// LowerChar returns the lower-case letter used for path cells.
func (c Color) LowerChar() rune {
	r := c.Char()
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Playable reports whether the color belongs to the palette.
func (c Color) Playable() bool {
	return c > ColorBlank && c < ColorCount
}

// ParseColor converts a name or single letter to a Color.
// Unknown names yield ColorBlank and false.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ColorBlank, false
	}
	for c := ColorRed; c < ColorCount; c++ {
		if s == colorNames[c] || (len(s) == 1 && rune(s[0]) == c.LowerChar()) {
			return c, true
		}
	}
	return ColorBlank, false
}

// Palette returns the playable colors in palette order.
func Palette() []Color {
	colors := make([]Color, 0, ColorCount-1)
	for c := ColorRed; c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}
