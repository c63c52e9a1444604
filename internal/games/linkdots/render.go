package linkdots

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"

	platformcore "github.com/vovakirdan/tui-linkdots/internal/core"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
)

// Completion banner geometry and motion.
const bannerHeight float32 = 5

var bannerEase = ease.OutQuad

// bannerRange returns the start and resting rows of the completion banner.
func (g *Game) bannerRange() (float32, float32) {
	return -bannerHeight, float32(max((g.screenH-int(bannerHeight))/2, 0))
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)
	g.renderFooter(dst)

	board := g.engine.Board()
	switch {
	case g.gameOver:
		g.renderOverlay(dst, (dst.Height()-5)/2, "Linkdots", g.message)
		return
	case board == nil:
		return
	case g.layout.tooSmall:
		g.renderOverlay(dst, (dst.Height()-5)/2, "Window too small", "Resize to continue")
		return
	}

	g.renderGrid(dst)
	for _, p := range board.Paths() {
		g.renderPolyline(dst, p.Points, g.screenColor(p.Color), false)
	}
	if color, points, ok := g.engine.Provisional(); ok {
		g.renderPolyline(dst, points, g.screenColor(color), true)
	}
	g.renderEndpoints(dst, board)
	g.renderCursor(dst)

	switch {
	case g.solved:
		g.renderOverlay(dst, int(math.Round(float64(g.bannerY))),
			LevelLabel(g.levelIndex)+" complete!", "Enter: next level  r: replay")
	case g.paused:
		g.renderOverlay(dst, (dst.Height()-5)/2, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Linkdots"
	if board := g.engine.Board(); board != nil && !g.gameOver {
		hud += " | " + LevelLabel(g.levelIndex)
		if g.levelName != "" {
			hud += " " + g.levelName
		}
		hud += fmt.Sprintf(" | %dx%d | Pairs %d/%d | Moves %d",
			board.Size(), board.Size(), board.ConnectedPairs(), board.TotalPairs(), g.moves)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
}

// renderFooter draws the message row or the controls hint.
func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := dst.Height() - footerHeight
	dst.DrawHLine(0, y, dst.Width(), '─', platformcore.ColorGray)

	if g.message != "" {
		dst.DrawTextWithColor(1, y+1, g.message, platformcore.ColorBrightYellow)
		return
	}
	dst.DrawTextWithColor(1, y+1,
		"Drag or Space: draw | X: remove | Esc: cancel | r: restart | R R: reset progress | Q: quit",
		platformcore.ColorGray)
}

// renderGrid draws a dot at every cell center.
func (g *Game) renderGrid(dst *platformcore.Screen) {
	for y := 0; y < g.layout.size; y++ {
		for x := 0; x < g.layout.size; x++ {
			sx, sy := g.layout.cellCenter(core.C(x, y))
			dst.SetWithColor(sx, sy, '·', platformcore.ColorGray)
		}
	}
}

// renderPolyline rasterizes a path in screen space.
func (g *Game) renderPolyline(dst *platformcore.Screen, points []core.Point, color platformcore.Color, provisional bool) {
	for _, seg := range core.Polyline(points) {
		x1, y1 := g.layout.toScreen(seg.A)
		x2, y2 := g.layout.toScreen(seg.B)
		glyph := lineGlyph(x2-x1, y2-y1)
		if provisional {
			glyph = '•'
		}

		steps := max(platformcore.Abs(x2-x1), platformcore.Abs(y2-y1))
		for i := 0; i <= steps; i++ {
			t := 0.0
			if steps > 0 {
				t = float64(i) / float64(steps)
			}
			x := x1 + int(math.Round(t*float64(x2-x1)))
			y := y1 + int(math.Round(t*float64(y2-y1)))
			dst.SetWithColor(x, y, glyph, color)
		}
	}
}

// lineGlyph picks a box-drawing character for a screen direction.
func lineGlyph(dx, dy int) rune {
	switch {
	case dy == 0:
		return '━'
	case dx == 0:
		return '┃'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// renderEndpoints draws every endpoint at its cell center.
func (g *Game) renderEndpoints(dst *platformcore.Screen, board *core.Board) {
	mono := g.opts.Config.Display.Theme == "mono"
	for _, ep := range board.Endpoints() {
		sx, sy := g.layout.cellCenter(ep.Pos)
		switch {
		case !ep.Color.Playable():
			dst.SetWithColor(sx, sy, '■', platformcore.ColorGray)
		case mono:
			dst.SetWithColor(sx, sy, ep.Color.Char(), platformcore.ColorBrightWhite)
		case ep.Connected:
			dst.SetWithColor(sx, sy, '◉', g.screenColor(ep.Color))
		default:
			dst.SetWithColor(sx, sy, '●', g.screenColor(ep.Color))
		}
	}
}

// renderCursor brackets the cursor cell.
func (g *Game) renderCursor(dst *platformcore.Screen) {
	if g.layout.cellW < 3 {
		return
	}
	sx, sy := g.layout.cellCenter(g.cursor)
	dst.SetWithColor(sx-1, sy, '[', platformcore.ColorBrightYellow)
	dst.SetWithColor(sx+1, sy, ']', platformcore.ColorBrightYellow)
}

// screenColor maps a pair color to a terminal color for the active theme.
func (g *Game) screenColor(c core.Color) platformcore.Color {
	if g.opts.Config.Display.Theme == "mono" {
		return platformcore.ColorWhite
	}
	switch c {
	case core.ColorRed:
		return platformcore.ColorBrightRed
	case core.ColorBlue:
		return platformcore.ColorBrightBlue
	case core.ColorGreen:
		return platformcore.ColorBrightGreen
	case core.ColorYellow:
		return platformcore.ColorBrightYellow
	case core.ColorMagenta:
		return platformcore.ColorBrightMagenta
	case core.ColorCyan:
		return platformcore.ColorBrightCyan
	case core.ColorOrange:
		return platformcore.ColorOrange
	case core.ColorPurple:
		return platformcore.ColorPurple
	default:
		return platformcore.ColorGray
	}
}

// renderOverlay draws a boxed two-line message with its top row at y.
func (g *Game) renderOverlay(dst *platformcore.Screen, y int, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := platformcore.NewRect((dst.Width()-width)/2, y, width, int(bannerHeight))

	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	cx, _ := box.Center()
	dst.DrawTextWithColor(cx-len([]rune(line1))/2, y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextWithColor(cx-len([]rune(line2))/2, y+3, line2, platformcore.ColorGray)
}
