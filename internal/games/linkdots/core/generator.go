package core

// Rand is the random source used by the generator.
// *rand.Rand from math/rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// GenParams configures level difficulty and endpoint placement.
type GenParams struct {
	// Grid size grows by one every LevelsPerGridStep levels.
	MinGridSize       int
	MaxGridSize       int
	LevelsPerGridStep int

	// Pair count grows by one every LevelsPerPairStep levels.
	MinPairs          int
	MaxPairs          int
	LevelsPerPairStep int

	// Manhattan distance window between the two endpoints of a pair.
	MinDistance int
	MaxDistance int
}

// DefaultGenParams returns the standard difficulty curve.
func DefaultGenParams() GenParams {
	return GenParams{
		MinGridSize:       4,
		MaxGridSize:       8,
		LevelsPerGridStep: 5,
		MinPairs:          2,
		MaxPairs:          8,
		LevelsPerPairStep: 3,
		MinDistance:       2,
		MaxDistance:       6,
	}
}

// Normalize clamps parameters into a usable range.
func (p GenParams) Normalize() GenParams {
	d := DefaultGenParams()
	if p.MinGridSize < MinGridSize {
		p.MinGridSize = d.MinGridSize
	}
	if p.MaxGridSize > MaxGridSize {
		p.MaxGridSize = MaxGridSize
	}
	if p.MaxGridSize < p.MinGridSize {
		p.MaxGridSize = p.MinGridSize
	}
	if p.LevelsPerGridStep <= 0 {
		p.LevelsPerGridStep = d.LevelsPerGridStep
	}
	if p.MinPairs <= 0 {
		p.MinPairs = d.MinPairs
	}
	if palette := int(ColorCount - 1); p.MaxPairs > palette || p.MaxPairs <= 0 {
		p.MaxPairs = palette
	}
	if p.MinPairs > p.MaxPairs {
		p.MinPairs = p.MaxPairs
	}
	if p.LevelsPerPairStep <= 0 {
		p.LevelsPerPairStep = d.LevelsPerPairStep
	}
	if p.MinDistance < 1 {
		p.MinDistance = 1
	}
	if p.MaxDistance < p.MinDistance {
		p.MaxDistance = p.MinDistance
	}
	return p
}

// Difficulty returns the grid size and requested pair count for a level.
// Negative indices are treated as 0.
func (p GenParams) Difficulty(levelIndex int) (gridSize, pairs int) {
	p = p.Normalize()
	if levelIndex < 0 {
		levelIndex = 0
	}
	gridSize = min(p.MinGridSize+levelIndex/p.LevelsPerGridStep, p.MaxGridSize)
	pairs = min(p.MinPairs+levelIndex/p.LevelsPerPairStep, p.MaxPairs)
	return gridSize, pairs
}

// Difficulty returns the standard grid size and pair count for a level.
func Difficulty(levelIndex int) (gridSize, pairs int) {
	return DefaultGenParams().Difficulty(levelIndex)
}

// Generator places endpoint pairs so that each pair has a clear straight
// or single-bend corridor at the time it is placed.
type Generator struct {
	rng    Rand
	params GenParams
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng Rand, params GenParams) *Generator {
	return &Generator{rng: rng, params: params.Normalize()}
}

// Params returns the normalized generator parameters.
func (g *Generator) Params() GenParams {
	return g.params
}

// GenerateLevel is a shorthand for generating with default parameters.
func GenerateLevel(levelIndex int, rng Rand) LevelDescriptor {
	return NewGenerator(rng, DefaultGenParams()).Generate(levelIndex)
}

// Generate builds the level at levelIndex.
// When the board gets too crowded, colors are skipped and the descriptor
// holds fewer pairs than RequestedPairs.
func (g *Generator) Generate(levelIndex int) LevelDescriptor {
	if levelIndex < 0 {
		levelIndex = 0
	}
	size, pairs := g.params.Difficulty(levelIndex)

	desc := LevelDescriptor{
		Level:          levelIndex,
		GridSize:       size,
		RequestedPairs: pairs,
		Points:         make([]PointSpec, 0, pairs*2),
	}

	occ := newOccupancy(size)
	for _, color := range g.shuffledPalette()[:pairs] {
		free := occ.free()
		if len(free) == 0 {
			break
		}
		first := free[g.rng.Intn(len(free))]
		occ.set(first, true)

		candidates := g.candidates(first, occ)
		if len(candidates) == 0 {
			occ.set(first, false)
			continue
		}
		second := candidates[g.rng.Intn(len(candidates))]
		occ.set(second, true)

		desc.Points = append(desc.Points,
			PointSpec{X: first.X, Y: first.Y, Color: color.String()},
			PointSpec{X: second.X, Y: second.Y, Color: color.String()},
		)
	}

	return desc
}

// shuffledPalette returns a Fisher-Yates permutation of the palette.
func (g *Generator) shuffledPalette() []Color {
	colors := Palette()
	for i := len(colors) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		colors[i], colors[j] = colors[j], colors[i]
	}
	return colors
}

// candidates lists the free cells that may pair with first.
func (g *Generator) candidates(first Coord, occ *occupancy) []Coord {
	var out []Coord
	for _, c := range occ.free() {
		if c == first {
			continue
		}
		d := c.Manhattan(first)
		if d < g.params.MinDistance || d > g.params.MaxDistance {
			continue
		}
		if occ.corridorClear(first, c) {
			out = append(out, c)
		}
	}
	return out
}

// occupancy tracks cells taken during generation.
type occupancy struct {
	size  int
	cells []bool
}

func newOccupancy(size int) *occupancy {
	return &occupancy{size: size, cells: make([]bool, size*size)}
}

func (o *occupancy) at(c Coord) bool {
	if c.X < 0 || c.X >= o.size || c.Y < 0 || c.Y >= o.size {
		return true
	}
	return o.cells[c.Y*o.size+c.X]
}

func (o *occupancy) set(c Coord, v bool) {
	o.cells[c.Y*o.size+c.X] = v
}

// free lists unoccupied cells, x outer, y inner.
func (o *occupancy) free() []Coord {
	out := make([]Coord, 0, len(o.cells))
	for x := 0; x < o.size; x++ {
		for y := 0; y < o.size; y++ {
			if !o.cells[y*o.size+x] {
				out = append(out, C(x, y))
			}
		}
	}
	return out
}

// rowClear checks the cells strictly between x1 and x2 on row y.
func (o *occupancy) rowClear(y, x1, x2 int) bool {
	for x := min(x1, x2) + 1; x < max(x1, x2); x++ {
		if o.at(C(x, y)) {
			return false
		}
	}
	return true
}

// colClear checks the cells strictly between y1 and y2 on column x.
func (o *occupancy) colClear(x, y1, y2 int) bool {
	for y := min(y1, y2) + 1; y < max(y1, y2); y++ {
		if o.at(C(x, y)) {
			return false
		}
	}
	return true
}

// corridorClear reports whether a straight line or one L-bend of free
// cells joins a and b.
func (o *occupancy) corridorClear(a, b Coord) bool {
	if a.Y == b.Y && o.rowClear(a.Y, a.X, b.X) {
		return true
	}
	if a.X == b.X && o.colClear(a.X, a.Y, b.Y) {
		return true
	}
	if bend := C(b.X, a.Y); !o.at(bend) && o.rowClear(a.Y, a.X, b.X) && o.colClear(b.X, a.Y, b.Y) {
		return true
	}
	if bend := C(a.X, b.Y); !o.at(bend) && o.colClear(a.X, a.Y, b.Y) && o.rowClear(b.Y, a.X, b.X) {
		return true
	}
	return false
}
