package core

import "sort"

// Endpoint is one of the two cells marking an end of a colored pair.
// Partner holds the ID of the paired endpoint while connected.
type Endpoint struct {
	ID        int
	Pos       Coord
	Color     Color
	Connected bool
	Partner   int
}

// Path is a finalized polyline joining two endpoints of one color.
type Path struct {
	Color  Color
	From   int // Endpoint ID the path was drawn from
	To     int // Endpoint ID the path ends on
	Points []Point
}

// Segments returns the path's segments in drawing order.
func (p Path) Segments() []Segment {
	return Polyline(p.Points)
}

type coloredSegment struct {
	color Color
	seg   Segment
}

// Board holds the endpoints of a level and every finalized path.
// A color with no entry in paths has no path.
type Board struct {
	Grid      *Grid
	endpoints []Endpoint
	paths     map[Color]*Path
	segments  []coloredSegment
}

// NewBoard builds a board from a validated descriptor.
func NewBoard(desc LevelDescriptor) (*Board, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		Grid:      NewGrid(desc.GridSize),
		endpoints: make([]Endpoint, 0, len(desc.Points)),
		paths:     make(map[Color]*Path),
	}

	for _, p := range desc.Points {
		color, _ := ParseColor(p.Color)
		id := len(b.endpoints)
		b.endpoints = append(b.endpoints, Endpoint{
			ID:      id,
			Pos:     C(p.X, p.Y),
			Color:   color,
			Partner: NoEndpoint,
		})
		b.Grid.Place(C(p.X, p.Y), id)
	}

	return b, nil
}

// Size returns the number of cells per side.
func (b *Board) Size() int {
	return b.Grid.Size
}

// Endpoint returns the endpoint with the given ID.
func (b *Board) Endpoint(id int) (Endpoint, bool) {
	if id < 0 || id >= len(b.endpoints) {
		return Endpoint{}, false
	}
	return b.endpoints[id], true
}

// EndpointAt returns the endpoint on a cell.
func (b *Board) EndpointAt(c Coord) (Endpoint, bool) {
	id, ok := b.Grid.At(c.X, c.Y)
	if !ok {
		return Endpoint{}, false
	}
	return b.Endpoint(id)
}

// Endpoints returns a copy of all endpoints ordered by ID.
func (b *Board) Endpoints() []Endpoint {
	out := make([]Endpoint, len(b.endpoints))
	copy(out, b.endpoints)
	return out
}

// pair returns the other endpoint of the same color.
func (b *Board) pair(id int) (Endpoint, bool) {
	ep, ok := b.Endpoint(id)
	if !ok || !ep.Color.Playable() {
		return Endpoint{}, false
	}
	for _, other := range b.endpoints {
		if other.ID != id && other.Color == ep.Color {
			return other, true
		}
	}
	return Endpoint{}, false
}

// Path returns a copy of the finalized path of a color.
func (b *Board) Path(color Color) (Path, bool) {
	p, ok := b.paths[color]
	if !ok || p == nil {
		return Path{}, false
	}
	cp := *p
	cp.Points = append([]Point(nil), p.Points...)
	return cp, true
}

// Paths returns copies of all finalized paths ordered by color.
func (b *Board) Paths() []Path {
	out := make([]Path, 0, len(b.paths))
	for color := range b.paths {
		if p, ok := b.Path(color); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Color < out[j].Color })
	return out
}

// Segments returns every finalized segment across all colors.
func (b *Board) Segments() []Segment {
	out := make([]Segment, len(b.segments))
	for i, cs := range b.segments {
		out[i] = cs.seg
	}
	return out
}

// SegmentCount returns the number of finalized segments.
func (b *Board) SegmentCount() int {
	return len(b.segments)
}

// commit records a path and connects both of its endpoints.
func (b *Board) commit(p *Path) {
	for _, seg := range p.Segments() {
		b.segments = append(b.segments, coloredSegment{color: p.Color, seg: seg})
	}
	b.paths[p.Color] = p

	b.endpoints[p.From].Connected = true
	b.endpoints[p.From].Partner = p.To
	b.endpoints[p.To].Connected = true
	b.endpoints[p.To].Partner = p.From
}

// remove drops the path of a color and disconnects its endpoints.
func (b *Board) remove(color Color) bool {
	p, ok := b.paths[color]
	if !ok || p == nil {
		delete(b.paths, color)
		return false
	}

	kept := b.segments[:0]
	for _, cs := range b.segments {
		if cs.color != color {
			kept = append(kept, cs)
		}
	}
	b.segments = kept

	for _, id := range []int{p.From, p.To} {
		b.endpoints[id].Connected = false
		b.endpoints[id].Partner = NoEndpoint
	}
	delete(b.paths, color)
	return true
}

// Complete reports whether every non-blank endpoint is connected.
func (b *Board) Complete() bool {
	for _, ep := range b.endpoints {
		if ep.Color.Playable() && !ep.Connected {
			return false
		}
	}
	return true
}

// TotalPairs returns the number of playable pairs on the board.
func (b *Board) TotalPairs() int {
	n := 0
	for _, ep := range b.endpoints {
		if ep.Color.Playable() {
			n++
		}
	}
	return n / 2
}

// ConnectedPairs returns the number of finalized paths.
func (b *Board) ConnectedPairs() int {
	return len(b.paths)
}

// PathNear returns the color of the finalized path passing within
// tolerance cells of p. The closest path wins.
func (b *Board) PathNear(p Point, tolerance float64) (Color, bool) {
	best := ColorBlank
	bestDist := tolerance * b.Grid.CellSize
	found := false
	for _, cs := range b.segments {
		if d := DistanceToSegment(p, cs.seg); d <= bestDist {
			best, bestDist, found = cs.color, d, true
		}
	}
	return best, found
}
