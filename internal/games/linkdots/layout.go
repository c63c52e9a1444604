package linkdots

import (
	"math"

	platformcore "github.com/vovakirdan/tui-linkdots/internal/core"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
)

const (
	hudHeight    = 2 // Title row and separator
	footerHeight = 2 // Separator and message row
)

// layout maps between screen cells and board space.
type layout struct {
	originX, originY int // Screen position of the top-left board cell
	cellW, cellH     int // Screen characters per board cell
	size             int // Board cells per side
	tooSmall         bool
}

// calculateLayout picks the largest cell size up to the configured one
// that fits the screen, and centers the board.
func (g *Game) calculateLayout() {
	size := g.desc.GridSize
	if size <= 0 {
		g.layout = layout{tooSmall: true}
		return
	}

	availW := g.screenW - 2
	availH := g.screenH - hudHeight - footerHeight

	cellW := min(g.opts.Config.Display.CellWidth, availW/size)
	cellH := min(g.opts.Config.Display.CellHeight, availH/size)

	l := layout{cellW: cellW, cellH: cellH, size: size}
	if cellW < 2 || cellH < 1 {
		l.tooSmall = true
		g.layout = l
		return
	}

	l.originX = (g.screenW - size*cellW) / 2
	l.originY = hudHeight + (availH-size*cellH)/2
	g.layout = l
}

// bounds returns the screen area covered by the board.
func (l layout) bounds() platformcore.Rect {
	return platformcore.NewRect(l.originX, l.originY, l.size*l.cellW, l.size*l.cellH)
}

// toWorld converts a screen cell to board space. The center character of a
// board cell maps close to that cell's center.
func (l layout) toWorld(sx, sy int) core.Point {
	if l.cellW <= 0 || l.cellH <= 0 {
		return core.P(-1, -1)
	}
	return core.P(
		(float64(sx-l.originX)+0.5)/float64(l.cellW)-0.5,
		(float64(sy-l.originY)+0.5)/float64(l.cellH)-0.5,
	)
}

// toScreen converts a board-space point to the screen cell drawing it.
func (l layout) toScreen(p core.Point) (int, int) {
	return l.originX + int(math.Floor((p.X+0.5)*float64(l.cellW))),
		l.originY + int(math.Floor((p.Y+0.5)*float64(l.cellH)))
}

// cellCenter returns the screen cell at the center of a board cell.
func (l layout) cellCenter(c core.Coord) (int, int) {
	return l.originX + c.X*l.cellW + l.cellW/2, l.originY + c.Y*l.cellH + l.cellH/2
}
