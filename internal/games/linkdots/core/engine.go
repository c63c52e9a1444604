package core

// PathState is the drawing state of one color.
type PathState int

const (
	PathIdle PathState = iota
	PathDrawing
	PathFinalized
)

// String returns a human-readable name for the state.
func (s PathState) String() string {
	switch s {
	case PathIdle:
		return "idle"
	case PathDrawing:
		return "drawing"
	case PathFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// Rules tune how input is turned into paths. Distances are in cells.
type Rules struct {
	// MinPointDistance is the minimum spacing between recorded path points.
	MinPointDistance float64

	// SnapRadius is how close to an endpoint's center the pointer has to be
	// for the path to lock onto it.
	SnapRadius float64

	// LockConnected rejects selecting an endpoint whose pair is already
	// connected. When false, selecting it tears the old path down and
	// starts a redraw.
	LockConnected bool
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{
		MinPointDistance: 0.1,
		SnapRadius:       0.45,
		LockConnected:    false,
	}
}

// EndResult reports the outcome of EndPath.
type EndResult struct {
	Accepted       bool // The path was committed
	CompletedLevel bool // This commit solved the level
}

// Engine runs the connect-the-dots rules on a Board.
// It is not safe for concurrent use; the caller drives it from one goroutine.
type Engine struct {
	rules      Rules
	board      *Board
	drawing    bool
	start      int     // Endpoint ID the provisional path started from
	points     []Point // Provisional polyline
	complete   bool
	onComplete []func()
}

// NewEngine creates an engine with no board loaded.
func NewEngine(rules Rules) *Engine {
	if rules.MinPointDistance < 0 {
		rules.MinPointDistance = 0
	}
	if rules.SnapRadius <= 0 {
		rules.SnapRadius = DefaultRules().SnapRadius
	}
	return &Engine{
		rules: rules,
		start: NoEndpoint,
	}
}

// Rules returns the engine's rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// OnComplete registers a callback fired each time the level becomes solved.
func (e *Engine) OnComplete(fn func()) {
	if fn != nil {
		e.onComplete = append(e.onComplete, fn)
	}
}

// SetupBoard discards any previous board and loads a new level.
// On error the engine is left without a board.
func (e *Engine) SetupBoard(desc LevelDescriptor) error {
	e.resetDrawing()
	b, err := NewBoard(desc)
	if err != nil {
		e.board = nil
		e.complete = false
		return err
	}
	e.board = b
	e.complete = b.Complete()
	return nil
}

// Board returns the current board, or nil before SetupBoard.
func (e *Engine) Board() *Board {
	return e.board
}

// Drawing returns true while a provisional path is in progress.
func (e *Engine) Drawing() bool {
	return e.drawing
}

// Provisional returns the color and points of the path being drawn.
func (e *Engine) Provisional() (Color, []Point, bool) {
	if !e.drawing {
		return ColorBlank, nil, false
	}
	ep, _ := e.board.Endpoint(e.start)
	return ep.Color, append([]Point(nil), e.points...), true
}

// PathState returns the state of a color.
func (e *Engine) PathState(color Color) PathState {
	if e.board == nil {
		return PathIdle
	}
	if e.drawing {
		if ep, ok := e.board.Endpoint(e.start); ok && ep.Color == color {
			return PathDrawing
		}
	}
	if _, ok := e.board.paths[color]; ok {
		return PathFinalized
	}
	return PathIdle
}

// BeginPath starts drawing from the endpoint at pos.
// Returns false when there is no selectable endpoint there.
// By default a connected endpoint is selectable and its path is torn
// down for a redraw; with Rules.LockConnected it is refused instead.
func (e *Engine) BeginPath(pos Coord) bool {
	if e.board == nil {
		return false
	}
	ep, ok := e.board.EndpointAt(pos)
	if !ok || !ep.Color.Playable() {
		return false
	}
	if ep.Connected && e.rules.LockConnected {
		return false
	}

	// Single pointer: a new selection replaces whatever was being drawn.
	e.resetDrawing()

	if _, has := e.board.paths[ep.Color]; has {
		e.board.remove(ep.Color)
		e.complete = e.board.Complete()
	}

	e.drawing = true
	e.start = ep.ID
	e.points = []Point{e.board.Grid.Center(ep.Pos)}
	return true
}

// ExtendPath adds a pointer sample to the provisional path.
func (e *Engine) ExtendPath(p Point) {
	if !e.drawing {
		return
	}

	last := e.points[len(e.points)-1]
	if p.Dist(last) > e.rules.MinPointDistance*e.board.Grid.CellSize {
		e.points = append(e.points, p)
	}

	if len(e.points) < 2 {
		return
	}
	if target, ok := e.snapTarget(p); ok {
		e.points[len(e.points)-1] = e.board.Grid.Center(target.Pos)
	}
}

// snapTarget returns the endpoint the pointer is hovering, if the
// provisional path may end there.
func (e *Engine) snapTarget(p Point) (Endpoint, bool) {
	c, ok := e.board.Grid.Near(p, e.rules.SnapRadius)
	if !ok {
		return Endpoint{}, false
	}
	ep, ok := e.board.EndpointAt(c)
	if !ok || !e.canEndOn(ep) {
		return Endpoint{}, false
	}
	return ep, true
}

// canEndOn reports whether ep completes the provisional path.
func (e *Engine) canEndOn(ep Endpoint) bool {
	start, _ := e.board.Endpoint(e.start)
	return ep.ID != start.ID && ep.Color == start.Color && !ep.Connected
}

// EndPath finishes the provisional path on the endpoint at target.
// A nil, invalid or crossing target discards the path.
func (e *Engine) EndPath(target *Coord) EndResult {
	if !e.drawing {
		return EndResult{}
	}
	defer e.resetDrawing()

	if target == nil {
		return EndResult{}
	}
	ep, ok := e.board.EndpointAt(*target)
	if !ok || !e.canEndOn(ep) {
		return EndResult{}
	}

	points := e.points
	end := e.board.Grid.Center(ep.Pos)
	if points[len(points)-1] != end {
		points = append(points, end)
	}

	if CurveCrossesAny(Polyline(points), e.board.Segments()) {
		return EndResult{}
	}

	start, _ := e.board.Endpoint(e.start)
	e.board.commit(&Path{
		Color:  start.Color,
		From:   start.ID,
		To:     ep.ID,
		Points: append([]Point(nil), points...),
	})

	return EndResult{Accepted: true, CompletedLevel: e.updateComplete()}
}

// CancelPath discards the provisional path.
func (e *Engine) CancelPath() {
	e.resetDrawing()
}

// RemovePath deletes the finalized path of a color.
func (e *Engine) RemovePath(color Color) bool {
	if e.board == nil {
		return false
	}
	if !e.board.remove(color) {
		return false
	}
	e.complete = e.board.Complete()
	return true
}

// IsLevelComplete reports whether every pair is connected.
func (e *Engine) IsLevelComplete() bool {
	if e.board == nil {
		return false
	}
	return e.board.Complete()
}

// updateComplete refreshes the completion flag and fires the callbacks on
// the transition into the solved state.
func (e *Engine) updateComplete() bool {
	now := e.board.Complete()
	fired := now && !e.complete
	e.complete = now
	if fired {
		for _, fn := range e.onComplete {
			fn()
		}
	}
	return fired
}

func (e *Engine) resetDrawing() {
	e.drawing = false
	e.start = NoEndpoint
	e.points = nil
}
