package core

import (
	"fmt"
	"math"
	"strings"
)

// RenderDescriptorASCII draws a level's endpoints as text.
//
// Format:
//   - Header with display level number, grid size and pair count
//   - Endpoints as their color letter, blank endpoints as '#', empty cells as '.'
func RenderDescriptorASCII(desc LevelDescriptor) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Level %d | %dx%d | pairs %d", desc.Level+1, desc.GridSize, desc.GridSize, desc.Pairs())
	if short := desc.Shortfall(); short > 0 {
		fmt.Fprintf(&sb, " (requested %d)", desc.RequestedPairs)
	}
	sb.WriteString("\n")

	cells := emptyCells(desc.GridSize)
	for _, p := range desc.Points {
		if p.X < 0 || p.X >= desc.GridSize || p.Y < 0 || p.Y >= desc.GridSize {
			continue
		}
		color, _ := ParseColor(p.Color)
		cells[p.Y][p.X] = color.Char()
	}
	writeCells(&sb, cells)
	return sb.String()
}

// RenderASCII draws the engine's board including finalized and provisional
// paths. Endpoints show their upper-case color letter, cells crossed by a
// finalized path the lower-case letter and the provisional path '*'.
func RenderASCII(e *Engine) string {
	b := e.Board()
	if b == nil {
		return "(no board)\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d | connected %d/%d", b.Size(), b.Size(), b.ConnectedPairs(), b.TotalPairs())
	if e.IsLevelComplete() {
		sb.WriteString(" | complete")
	}
	sb.WriteString("\n")

	cells := emptyCells(b.Size())
	for _, p := range b.Paths() {
		rasterize(b.Grid, cells, p.Points, p.Color.LowerChar())
	}
	if _, points, ok := e.Provisional(); ok {
		rasterize(b.Grid, cells, points, '*')
	}
	for _, ep := range b.Endpoints() {
		cells[ep.Pos.Y][ep.Pos.X] = ep.Color.Char()
	}
	writeCells(&sb, cells)
	return sb.String()
}

// rasterize marks every cell a polyline passes through.
func rasterize(g *Grid, cells [][]rune, points []Point, r rune) {
	if len(points) == 1 {
		if c, ok := g.CellAt(points[0]); ok {
			cells[c.Y][c.X] = r
		}
		return
	}
	for _, seg := range Polyline(points) {
		length := seg.A.Dist(seg.B) / g.CellSize
		steps := int(math.Ceil(length*4)) + 1
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			p := Point{X: seg.A.X + (seg.B.X-seg.A.X)*t, Y: seg.A.Y + (seg.B.Y-seg.A.Y)*t}
			if c, ok := g.CellAt(p); ok {
				cells[c.Y][c.X] = r
			}
		}
	}
}

func emptyCells(size int) [][]rune {
	cells := make([][]rune, size)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(".", size))
	}
	return cells
}

func writeCells(sb *strings.Builder, cells [][]rune) {
	for _, row := range cells {
		sb.WriteString(string(row))
		sb.WriteString("\n")
	}
}
