package core

import "math"

// Point is a position in board space. Paths are free-form polylines of
// points and are not locked to the grid.
type Point struct {
	X float64
	Y float64
}

// P is a convenience constructor for Point.
func P(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Segment is a straight piece of a path.
type Segment struct {
	A Point
	B Point
}

// SegmentsIntersect reports whether segment a1-a2 strictly crosses b1-b2.
//
// Parallel and collinear segments never cross, and neither do segments
// that share an exact endpoint. A touch at an endpoint of either segment
// (u or v equal to 0 or 1) is not a crossing.
func SegmentsIntersect(a1, a2, b1, b2 Point) bool {
	d := (a2.X-a1.X)*(b2.Y-b1.Y) - (a2.Y-a1.Y)*(b2.X-b1.X)
	if d == 0 {
		return false
	}
	if a1 == b1 || a1 == b2 || a2 == b1 || a2 == b2 {
		return false
	}

	u := ((b1.X-a1.X)*(b2.Y-b1.Y) - (b1.Y-a1.Y)*(b2.X-b1.X)) / d
	v := ((b1.X-a1.X)*(a2.Y-a1.Y) - (b1.Y-a1.Y)*(a2.X-a1.X)) / d

	return u > 0 && u < 1 && v > 0 && v < 1
}

// Intersects reports whether s strictly crosses other.
func (s Segment) Intersects(other Segment) bool {
	return SegmentsIntersect(s.A, s.B, other.A, other.B)
}

// CurveCrossesAny reports whether any candidate segment crosses any of the
// existing segments, regardless of color.
func CurveCrossesAny(candidate, existing []Segment) bool {
	for _, c := range candidate {
		for _, e := range existing {
			if c.Intersects(e) {
				return true
			}
		}
	}
	return false
}

// Polyline turns a point sequence into its consecutive segments.
func Polyline(points []Point) []Segment {
	if len(points) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		segs = append(segs, Segment{A: points[i-1], B: points[i]})
	}
	return segs
}

// DistanceToSegment returns the shortest distance from p to segment s.
func DistanceToSegment(p Point, s Segment) float64 {
	d := s.B.Sub(s.A)
	lenSq := d.X*d.X + d.Y*d.Y
	if lenSq == 0 {
		return p.Dist(s.A)
	}
	t := ((p.X-s.A.X)*d.X + (p.Y-s.A.Y)*d.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	proj := Point{X: s.A.X + t*d.X, Y: s.A.Y + t*d.Y}
	return p.Dist(proj)
}
