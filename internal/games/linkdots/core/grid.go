package core

import "math"

// NoEndpoint marks an empty cell and an unpaired endpoint.
const NoEndpoint = -1

// Grid is the square board lattice. Each cell holds the ID of the endpoint
// placed on it, or NoEndpoint.
// Cells are stored in row-major order: index = y*Size + x.
type Grid struct {
	Size     int     // Cells per side
	CellSize float64 // Distance between neighbouring cell centers in board space
	Cells    []int   // Flat array of endpoint IDs, length Size*Size
}

// NewGrid creates an empty grid with unit cell size.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	g := &Grid{
		Size:     size,
		CellSize: 1,
		Cells:    make([]int, size*size),
	}
	g.Clear()
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.Size + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Size && c.Y >= 0 && c.Y < g.Size
}

// At returns the endpoint ID at (x, y).
// Returns NoEndpoint and false for empty or out-of-bounds cells.
func (g *Grid) At(x, y int) (int, bool) {
	c := C(x, y)
	if !g.InBounds(c) {
		return NoEndpoint, false
	}
	id := g.Cells[g.index(c)]
	return id, id != NoEndpoint
}

// Occupied returns true if an endpoint sits on the cell.
func (g *Grid) Occupied(c Coord) bool {
	_, ok := g.At(c.X, c.Y)
	return ok
}

// Place puts an endpoint ID on a cell. Out-of-bounds coordinates are ignored.
func (g *Grid) Place(c Coord, id int) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = id
	}
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.Cells {
		g.Cells[i] = NoEndpoint
	}
}

// Center returns the board-space center of a cell.
func (g *Grid) Center(c Coord) Point {
	return Point{X: float64(c.X) * g.CellSize, Y: float64(c.Y) * g.CellSize}
}

// CellAt returns the cell whose center is nearest to p.
// Returns false when p falls outside the board.
func (g *Grid) CellAt(p Point) (Coord, bool) {
	if g.CellSize <= 0 {
		return Coord{}, false
	}
	c := C(
		int(math.Floor(p.X/g.CellSize+0.5)),
		int(math.Floor(p.Y/g.CellSize+0.5)),
	)
	return c, g.InBounds(c)
}

// Near returns the cell whose center lies within radius cells of p.
func (g *Grid) Near(p Point, radius float64) (Coord, bool) {
	c, ok := g.CellAt(p)
	if !ok {
		return Coord{}, false
	}
	if p.Dist(g.Center(c)) > radius*g.CellSize {
		return Coord{}, false
	}
	return c, true
}
