package linkdots

import "github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"

// vertexTolerance is how close, in cells, a vertex may come to a line of
// another color before the two lines count as crossing.
const vertexTolerance = 1e-6

// CrossesAtVertex reports whether ending the provisional path on target
// would make it meet a finalized path of another color at a vertex.
// The engine only rejects strict crossings; keyboard and terminal mouse
// input snap points to a lattice, so their crossings always share a vertex.
func CrossesAtVertex(e *core.Engine, target core.Coord) bool {
	color, points, drawing := e.Provisional()
	board := e.Board()
	if !drawing || board == nil || len(points) == 0 {
		return false
	}

	candidate := append([]core.Point(nil), points...)
	if end := board.Grid.Center(target); candidate[len(candidate)-1] != end {
		candidate = append(candidate, end)
	}
	segs := core.Polyline(candidate)

	for _, path := range board.Paths() {
		if path.Color == color {
			continue
		}
		if verticesTouch(interior(candidate), path.Segments()) ||
			verticesTouch(interior(path.Points), segs) {
			return true
		}
	}
	return false
}

// interior drops the first and last point of a polyline.
func interior(points []core.Point) []core.Point {
	if len(points) < 3 {
		return nil
	}
	return points[1 : len(points)-1]
}

func verticesTouch(points []core.Point, segs []core.Segment) bool {
	for _, p := range points {
		for _, s := range segs {
			if core.DistanceToSegment(p, s) <= vertexTolerance {
				return true
			}
		}
	}
	return false
}
