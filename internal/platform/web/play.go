package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

// Websocket timing.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

// player drives one engine for one play socket. All engine calls happen on
// the connection's read loop.
type player struct {
	server  *Server
	session *session
	logger  *log.Logger

	seed      int64
	engine    *core.Engine
	desc      core.LevelDescriptor
	moves     int
	started   time.Time
	completed bool
}

// handlePlay serves GET /play?profile=NAME.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	if !validProfile(profile) {
		s.writeError(w, http.StatusBadRequest, errors.New("profile query parameter required"))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	sess := newSession(fmt.Sprintf("%s-%d", profile, s.sessions.nextID()), profile, conn)
	s.sessions.Register(sess)
	defer s.sessions.Unregister(sess.id)

	p := newPlayer(s, sess)
	p.logger.Info("play session started", "remote", r.RemoteAddr)

	written := make(chan struct{})
	go func() {
		defer close(written)
		p.writeLoop()
	}()
	p.readLoop()
	sess.Close()
	<-written
	p.logger.Info("play session ended")
}

func newPlayer(s *Server, sess *session) *player {
	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p := &player{
		server:  s,
		session: sess,
		logger:  s.logger.With("session", sess.id, "profile", sess.profile),
		seed:    seed,
		engine:  core.NewEngine(linkdots.RulesFromConfig(s.opts.Config.Rules)),
	}
	p.engine.OnComplete(func() { p.completed = true })
	return p
}

// readLoop decodes client messages until the socket fails or closes.
func (p *player) readLoop() {
	conn := p.session.conn
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Warn("read failed", "err", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.sendError("malformed message: " + err.Error())
			continue
		}
		p.handle(msg)
	}
}

// writeLoop sends queued messages and keepalive pings. It owns all writes
// to the connection and closes it on exit.
func (p *player) writeLoop() {
	conn := p.session.conn
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg := <-p.session.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				p.logger.Warn("write failed", "err", err)
				p.session.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				p.session.Close()
				return
			}
		case <-p.session.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handle applies one client message to the engine.
func (p *player) handle(msg ClientMessage) {
	if msg.Op != OpLoad && p.engine.Board() == nil {
		p.sendError("no level loaded")
		return
	}

	switch msg.Op {
	case OpLoad:
		level, err := p.requestedLevel(msg)
		if err != nil {
			p.sendError(err.Error())
			return
		}
		p.load(level)

	case OpBegin:
		cell, ok := msg.cell()
		if !ok {
			p.sendError("begin needs x and y")
			return
		}
		ok = p.engine.BeginPath(cell)
		reply := ServerMessage{Type: TypeBegin, OK: ok}
		if ep, found := p.engine.Board().EndpointAt(cell); found {
			reply.Color = ep.Color.String()
		}
		p.reply(reply)

	case OpExtend:
		if p.engine.Drawing() {
			p.engine.ExtendPath(core.P(msg.PX, msg.PY))
		}

	case OpEnd:
		p.end(msg)

	case OpCancel:
		p.engine.CancelPath()
		p.reply(ServerMessage{Type: TypeEnd})

	case OpRemove:
		p.remove(msg)

	case OpNext:
		if !p.engine.IsLevelComplete() {
			p.sendError("level is not complete")
			return
		}
		p.load(p.desc.Level + 1)

	case OpRestart:
		p.setup()
		p.reply(p.levelMessage())

	default:
		p.sendError(fmt.Sprintf("unknown op %q", msg.Op))
	}
}

// requestedLevel returns the level named by msg, or the saved level.
func (p *player) requestedLevel(msg ClientMessage) (int, error) {
	if msg.Level != nil {
		if *msg.Level < 0 {
			return 0, errors.New("level must be non-negative")
		}
		return *msg.Level, nil
	}
	store := p.server.opts.Store
	if store == nil {
		return 0, nil
	}
	level, err := store.LoadLevel(p.session.profile)
	if err != nil && !errors.Is(err, storage.ErrNoProgress) {
		p.logger.Error("cannot load progress", "err", err)
	}
	return level, nil
}

// load generates level, sets it up and records it as the profile's level.
func (p *player) load(level int) {
	p.desc = p.server.generate(p.seed, level)
	if short := p.desc.Shortfall(); short > 0 {
		p.logger.Warn("generator placed fewer pairs than requested",
			"level", level, "requested", p.desc.RequestedPairs, "placed", p.desc.Pairs())
	}
	p.setup()

	if store := p.server.opts.Store; store != nil {
		if err := store.SaveLevel(p.session.profile, level); err != nil {
			p.logger.Error("cannot save progress", "err", err)
		}
	}
	p.reply(p.levelMessage())
}

// setup resets the board to the current descriptor.
func (p *player) setup() {
	if err := p.engine.SetupBoard(p.desc); err != nil {
		p.logger.Error("cannot set up level", "level", p.desc.Level, "err", err)
	}
	p.moves = 0
	p.completed = false
	p.started = time.Now()
}

func (p *player) levelMessage() ServerMessage {
	desc := p.desc
	return ServerMessage{Type: TypeLevel, OK: p.engine.Board() != nil, Descriptor: &desc}
}

// end finishes the provisional path and reports completion.
func (p *player) end(msg ClientMessage) {
	color, _, drawing := p.engine.Provisional()
	var target *core.Coord
	if cell, ok := msg.cell(); ok {
		target = &cell
	}

	var res core.EndResult
	if target != nil && linkdots.CrossesAtVertex(p.engine, *target) {
		p.engine.EndPath(nil)
	} else {
		res = p.engine.EndPath(target)
	}
	if res.Accepted {
		p.moves++
	}
	reply := ServerMessage{Type: TypeEnd, OK: res.Accepted}
	if drawing {
		reply.Color = color.String()
	}
	p.reply(reply)

	if p.completed {
		p.completed = false
		p.complete()
	}
}

// complete records the solve and tells the client.
func (p *player) complete() {
	elapsed := time.Since(p.started)
	p.logger.Info("level solved", "level", p.desc.Level, "moves", p.moves, "duration", elapsed.Round(time.Millisecond))

	if store := p.server.opts.Store; store != nil {
		_, err := store.RecordSolve(storage.Solve{
			Profile:  p.session.profile,
			Level:    p.desc.Level,
			GridSize: p.desc.GridSize,
			Pairs:    p.desc.Pairs(),
			Moves:    p.moves,
			Duration: elapsed,
		})
		if err != nil {
			p.logger.Error("cannot record solve", "err", err)
		}
	}
	p.reply(ServerMessage{Type: TypeComplete, OK: true, Moves: p.moves, Display: levelDisplay(p.desc.Level)})
}

// remove deletes the path of the named color, or of the endpoint at x,y.
func (p *player) remove(msg ClientMessage) {
	var color core.Color
	switch {
	case msg.Color != "":
		c, ok := core.ParseColor(msg.Color)
		if !ok {
			p.sendError(fmt.Sprintf("unknown color %q", msg.Color))
			return
		}
		color = c
	default:
		cell, ok := msg.cell()
		if !ok {
			p.sendError("remove needs a color or x and y")
			return
		}
		ep, found := p.engine.Board().EndpointAt(cell)
		if !found {
			p.reply(ServerMessage{Type: TypeRemove})
			return
		}
		color = ep.Color
	}

	ok := p.engine.RemovePath(color)
	p.reply(ServerMessage{Type: TypeRemove, OK: ok, Color: color.String()})
}

// reply fills the level and connected colors and queues msg.
func (p *player) reply(msg ServerMessage) {
	msg.Level = p.desc.Level
	if msg.Display == "" {
		msg.Display = levelDisplay(p.desc.Level)
	}
	msg.Connected = []string{}
	if board := p.engine.Board(); board != nil {
		for _, path := range board.Paths() {
			msg.Connected = append(msg.Connected, path.Color.String())
			if msg.Type == TypeLevel || msg.Type == TypeEnd || msg.Type == TypeRemove {
				msg.Paths = append(msg.Paths, pathView(path))
			}
		}
	}
	p.session.Send(msg)
}

func (p *player) sendError(text string) {
	p.reply(ServerMessage{Type: TypeError, Error: text})
}
