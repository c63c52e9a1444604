package web

import (
	"time"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

// Client operations on the play socket.
const (
	OpLoad    = "load"
	OpBegin   = "begin"
	OpExtend  = "extend"
	OpEnd     = "end"
	OpCancel  = "cancel"
	OpRemove  = "remove"
	OpNext    = "next"
	OpRestart = "restart"
)

// Server message types on the play socket.
const (
	TypeLevel    = "level"
	TypeBegin    = "begin"
	TypeEnd      = "end"
	TypeRemove   = "remove"
	TypeComplete = "complete"
	TypeError    = "error"
)

// ClientMessage is one request on the play socket. X and Y name a cell,
// PX and PY a board-space point.
type ClientMessage struct {
	Op    string  `json:"op"`
	Level *int    `json:"level,omitempty"`
	X     *int    `json:"x,omitempty"`
	Y     *int    `json:"y,omitempty"`
	PX    float64 `json:"px"`
	PY    float64 `json:"py"`
	Color string  `json:"color,omitempty"`
}

// cell returns the cell named by X and Y, if both are set.
func (m ClientMessage) cell() (core.Coord, bool) {
	if m.X == nil || m.Y == nil {
		return core.Coord{}, false
	}
	return core.C(*m.X, *m.Y), true
}

// PathView is a finalized path as sent to clients. Points are [x, y]
// pairs in board space.
type PathView struct {
	Color  string       `json:"color"`
	Points [][2]float64 `json:"points"`
}

func pathView(p core.Path) PathView {
	points := make([][2]float64, len(p.Points))
	for i, pt := range p.Points {
		points[i] = [2]float64{pt.X, pt.Y}
	}
	return PathView{Color: p.Color.String(), Points: points}
}

// ServerMessage is one reply on the play socket. Connected always lists
// the colors with a finalized path after the request.
type ServerMessage struct {
	Type       string                `json:"type"`
	OK         bool                  `json:"ok"`
	Level      int                   `json:"level"`
	Display    string                `json:"display,omitempty"`
	Descriptor *core.LevelDescriptor `json:"descriptor,omitempty"`
	Color      string                `json:"color,omitempty"`
	Moves      int                   `json:"moves,omitempty"`
	Connected  []string              `json:"connected"`
	Paths      []PathView            `json:"paths,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// ProgressResponse is the body of the progress endpoints.
type ProgressResponse struct {
	Profile string `json:"profile"`
	Level   int    `json:"level"`
	Display string `json:"display"`
}

// SolveView is one solve as sent to clients.
type SolveView struct {
	Level      int       `json:"level"`
	Display    string    `json:"display"`
	GridSize   int       `json:"gridSize"`
	Pairs      int       `json:"pairs"`
	Moves      int       `json:"moves"`
	DurationMS int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SolvesResponse is the body of the solves endpoint.
type SolvesResponse struct {
	Profile string      `json:"profile"`
	Solves  []SolveView `json:"solves"`
}

// ErrorResponse is the body of every failed HTTP request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func solveView(s storage.Solve) SolveView {
	return SolveView{
		Level:      s.Level,
		Display:    levelDisplay(s.Level),
		GridSize:   s.GridSize,
		Pairs:      s.Pairs,
		Moves:      s.Moves,
		DurationMS: s.Duration.Milliseconds(),
		CreatedAt:  s.CreatedAt,
	}
}
