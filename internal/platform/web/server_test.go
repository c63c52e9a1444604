package web

import (
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-linkdots/internal/config"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "web.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestServer(t *testing.T, store *storage.Store) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(Options{
		Config: config.DefaultConfig(),
		Store:  store,
		Logger: log.New(io.Discard),
		Seed:   42,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, method, url string, v any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestLevelEndpoint(t *testing.T) {
	_, ts := newTestServer(t, nil)

	var got core.LevelDescriptor
	if code := getJSON(t, "GET", ts.URL+"/api/levels/3?seed=7", &got); code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", code)
	}

	params := linkdots.GenParamsFromConfig(config.DefaultConfig().Generator)
	want := core.NewGenerator(rand.New(rand.NewSource(7)), params).Generate(3)
	if got.Level != 3 || got.GridSize != want.GridSize || len(got.Points) != len(want.Points) {
		t.Fatalf("descriptor = %+v, expected %+v", got, want)
	}
	for i := range want.Points {
		if got.Points[i] != want.Points[i] {
			t.Errorf("point %d = %+v, expected %+v", i, got.Points[i], want.Points[i])
		}
	}

	// Without a seed the server seed is used
	var again core.LevelDescriptor
	getJSON(t, "GET", ts.URL+"/api/levels/3", &again)
	want = core.NewGenerator(rand.New(rand.NewSource(42)), params).Generate(3)
	if len(again.Points) != len(want.Points) || (len(want.Points) > 0 && again.Points[0] != want.Points[0]) {
		t.Errorf("unseeded descriptor = %+v, expected %+v", again, want)
	}
}

func TestLevelEndpointErrors(t *testing.T) {
	_, ts := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
	}{
		{"negative index", "/api/levels/-1"},
		{"non-numeric index", "/api/levels/abc"},
		{"bad seed", "/api/levels/0?seed=x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body ErrorResponse
			if code := getJSON(t, "GET", ts.URL+tt.path, &body); code != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400", code)
			}
			if body.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestProgressEndpoints(t *testing.T) {
	store := openTestStore(t)
	_, ts := newTestServer(t, store)

	if err := store.SaveLevel("alice", 4); err != nil {
		t.Fatal(err)
	}

	var progress ProgressResponse
	if code := getJSON(t, "GET", ts.URL+"/api/progress/alice", &progress); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if progress.Level != 4 || progress.Display != "Level 5" || progress.Profile != "alice" {
		t.Errorf("progress = %+v", progress)
	}

	if code := getJSON(t, "DELETE", ts.URL+"/api/progress/alice", &progress); code != http.StatusOK {
		t.Fatalf("delete status = %d", code)
	}
	if progress.Level != 0 || progress.Display != "Level 1" {
		t.Errorf("after reset = %+v", progress)
	}

	getJSON(t, "GET", ts.URL+"/api/progress/alice", &progress)
	if progress.Level != 0 {
		t.Errorf("level after reset = %d, expected 0", progress.Level)
	}

	// Unknown profiles start at the first level
	getJSON(t, "GET", ts.URL+"/api/progress/nobody", &progress)
	if progress.Level != 0 || progress.Profile != "nobody" {
		t.Errorf("unknown profile = %+v", progress)
	}
}

func TestProgressWithoutStore(t *testing.T) {
	_, ts := newTestServer(t, nil)

	for _, path := range []string{"/api/progress/alice", "/api/solves/alice"} {
		if code := getJSON(t, "GET", ts.URL+path, nil); code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, expected 503", path, code)
		}
	}
}

func TestSolvesEndpoint(t *testing.T) {
	store := openTestStore(t)
	_, ts := newTestServer(t, store)

	for level := 0; level < 3; level++ {
		_, err := store.RecordSolve(storage.Solve{
			Profile: "bob", Level: level, GridSize: 4, Pairs: 2, Moves: 2 + level,
			Duration: time.Duration(level+1) * time.Second,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	var resp SolvesResponse
	if code := getJSON(t, "GET", ts.URL+"/api/solves/bob?limit=2", &resp); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(resp.Solves) != 2 {
		t.Fatalf("got %d solves, expected 2", len(resp.Solves))
	}
	if resp.Solves[0].Level != 2 || resp.Solves[0].DurationMS != 3000 || resp.Solves[0].Display != "Level 3" {
		t.Errorf("newest solve = %+v", resp.Solves[0])
	}

	if code := getJSON(t, "GET", ts.URL+"/api/solves/bob?limit=0", nil); code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d, expected 400", code)
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, nil)

	var body map[string]any
	if code := getJSON(t, "GET", ts.URL+"/api/health", &body); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["status"] != "ok" || body["storage"] != false {
		t.Errorf("health = %v", body)
	}
}

func dialPlay(t *testing.T, ts *httptest.Server, profile string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + URIPlay + "?profile=" + profile
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg ClientMessage) ServerMessage {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	return readMessage(t, conn)
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var reply ServerMessage
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	return reply
}

func intp(v int) *int { return &v }

func TestPlaySocket(t *testing.T) {
	store := openTestStore(t)
	_, ts := newTestServer(t, store)
	if err := store.SaveLevel("bob", 2); err != nil {
		t.Fatal(err)
	}
	conn := dialPlay(t, ts, "bob")

	// Nothing works before a level is loaded
	if reply := roundTrip(t, conn, ClientMessage{Op: OpBegin, X: intp(0), Y: intp(0)}); reply.Type != TypeError {
		t.Fatalf("begin before load = %+v", reply)
	}

	// Load without a level resumes saved progress
	reply := roundTrip(t, conn, ClientMessage{Op: OpLoad})
	if reply.Type != TypeLevel || reply.Level != 2 || reply.Descriptor == nil || !reply.OK {
		t.Fatalf("load = %+v", reply)
	}
	if len(reply.Connected) != 0 {
		t.Errorf("fresh level has connected colors %v", reply.Connected)
	}
	desc := *reply.Descriptor
	if len(desc.Points) < 2 {
		t.Fatalf("level has no pairs: %+v", desc)
	}

	// A straight line between one pair is accepted on an empty board
	a, b := desc.Points[0], desc.Points[1]
	reply = roundTrip(t, conn, ClientMessage{Op: OpBegin, X: intp(a.X), Y: intp(a.Y)})
	if reply.Type != TypeBegin || !reply.OK || reply.Color != a.Color {
		t.Fatalf("begin = %+v", reply)
	}
	if err := conn.WriteJSON(ClientMessage{Op: OpExtend, PX: float64(a.X+b.X) / 2, PY: float64(a.Y+b.Y) / 2}); err != nil {
		t.Fatal(err)
	}
	reply = roundTrip(t, conn, ClientMessage{Op: OpEnd, X: intp(b.X), Y: intp(b.Y)})
	if reply.Type != TypeEnd || !reply.OK {
		t.Fatalf("end = %+v", reply)
	}
	if len(reply.Connected) != 1 || reply.Connected[0] != a.Color || len(reply.Paths) != 1 {
		t.Errorf("connected = %v, paths = %d", reply.Connected, len(reply.Paths))
	}
	if len(desc.Points) == 2 {
		if done := readMessage(t, conn); done.Type != TypeComplete {
			t.Errorf("single pair level should complete, got %+v", done)
		}
	}

	// Remove by color
	reply = roundTrip(t, conn, ClientMessage{Op: OpRemove, Color: a.Color})
	if reply.Type != TypeRemove || !reply.OK || len(reply.Connected) != 0 {
		t.Errorf("remove = %+v", reply)
	}

	// Next is refused on an unsolved level
	if reply := roundTrip(t, conn, ClientMessage{Op: OpNext}); reply.Type != TypeError {
		t.Errorf("next on unsolved level = %+v", reply)
	}

	// Explicit level loads and becomes the saved progress
	reply = roundTrip(t, conn, ClientMessage{Op: OpLoad, Level: intp(5)})
	if reply.Type != TypeLevel || reply.Level != 5 || reply.Display != "Level 6" {
		t.Fatalf("load 5 = %+v", reply)
	}
	if level, err := store.LoadLevel("bob"); err != nil || level != 5 {
		t.Errorf("saved level = %d, %v; expected 5", level, err)
	}
}

func TestPlaySocketBadInput(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dialPlay(t, ts, "eve")

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if reply := readMessage(t, conn); reply.Type != TypeError || !strings.Contains(reply.Error, "malformed") {
		t.Errorf("malformed = %+v", reply)
	}

	roundTrip(t, conn, ClientMessage{Op: OpLoad, Level: intp(0)})
	tests := []struct {
		name string
		msg  ClientMessage
	}{
		{"unknown op", ClientMessage{Op: "jump"}},
		{"begin without cell", ClientMessage{Op: OpBegin}},
		{"remove unknown color", ClientMessage{Op: OpRemove, Color: "chartreuse"}},
		{"negative level", ClientMessage{Op: OpLoad, Level: intp(-3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if reply := roundTrip(t, conn, tt.msg); reply.Type != TypeError || reply.Error == "" {
				t.Errorf("reply = %+v, expected error", reply)
			}
		})
	}
}

func TestPlayRequiresProfile(t *testing.T) {
	_, ts := newTestServer(t, nil)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + URIPlay
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial without profile should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("response = %v, expected 400", resp)
	}
}

// drain returns the messages queued on a session.
func drain(sess *session) []ServerMessage {
	var out []ServerMessage
	for {
		select {
		case msg := <-sess.send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestPlayerCompletesAndRecordsSolve(t *testing.T) {
	store := openTestStore(t)
	s, _ := newTestServer(t, store)
	sess := newSession("carol-1", "carol", nil)
	p := newPlayer(s, sess)

	p.desc = core.LevelDescriptor{
		Level:    7,
		GridSize: 4,
		Points: []core.PointSpec{
			{X: 0, Y: 0, Color: "red"}, {X: 3, Y: 0, Color: "red"},
			{X: 0, Y: 3, Color: "blue"}, {X: 3, Y: 3, Color: "blue"},
		},
	}
	p.setup()

	for _, row := range []int{0, 3} {
		p.handle(ClientMessage{Op: OpBegin, X: intp(0), Y: intp(row)})
		p.handle(ClientMessage{Op: OpEnd, X: intp(3), Y: intp(row)})
	}

	msgs := drain(sess)
	last := msgs[len(msgs)-1]
	if last.Type != TypeComplete || last.Moves != 2 || last.Level != 7 {
		t.Fatalf("last message = %+v", last)
	}
	if len(last.Connected) != 2 {
		t.Errorf("connected = %v", last.Connected)
	}

	solves, err := store.RecentSolves("carol", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(solves) != 1 || solves[0].Level != 7 || solves[0].Moves != 2 || solves[0].Pairs != 2 {
		t.Errorf("solves = %+v", solves)
	}

	// Next is allowed once complete
	p.handle(ClientMessage{Op: OpNext})
	msgs = drain(sess)
	if len(msgs) != 1 || msgs[0].Type != TypeLevel || msgs[0].Level != 8 {
		t.Errorf("next = %+v", msgs)
	}
}

func TestPlayerRejectsCrossing(t *testing.T) {
	s, _ := newTestServer(t, nil)
	sess := newSession("dave-1", "dave", nil)
	p := newPlayer(s, sess)

	p.desc = core.LevelDescriptor{
		GridSize: 4,
		Points: []core.PointSpec{
			{X: 0, Y: 0, Color: "red"}, {X: 3, Y: 3, Color: "red"},
			{X: 3, Y: 0, Color: "blue"}, {X: 0, Y: 3, Color: "blue"},
		},
	}
	p.setup()

	p.handle(ClientMessage{Op: OpBegin, X: intp(0), Y: intp(0)})
	p.handle(ClientMessage{Op: OpEnd, X: intp(3), Y: intp(3)})
	p.handle(ClientMessage{Op: OpBegin, X: intp(3), Y: intp(0)})
	p.handle(ClientMessage{Op: OpEnd, X: intp(0), Y: intp(3)})

	msgs := drain(sess)
	last := msgs[len(msgs)-1]
	if last.Type != TypeEnd || last.OK || last.Color != "blue" {
		t.Errorf("crossing end = %+v", last)
	}
	if len(last.Connected) != 1 || last.Connected[0] != "red" {
		t.Errorf("connected = %v, expected [red]", last.Connected)
	}
	if p.moves != 1 {
		t.Errorf("moves = %d, expected 1", p.moves)
	}
}

func TestPlayerRejectsCrossingThroughSharedCell(t *testing.T) {
	s, _ := newTestServer(t, nil)
	sess := newSession("erin-1", "erin", nil)
	p := newPlayer(s, sess)

	p.desc = core.LevelDescriptor{
		GridSize: 3,
		Points: []core.PointSpec{
			{X: 0, Y: 1, Color: "red"}, {X: 2, Y: 1, Color: "red"},
			{X: 1, Y: 0, Color: "blue"}, {X: 1, Y: 2, Color: "blue"},
		},
	}
	p.setup()

	p.handle(ClientMessage{Op: OpBegin, X: intp(0), Y: intp(1)})
	p.handle(ClientMessage{Op: OpExtend, PX: 1, PY: 1})
	p.handle(ClientMessage{Op: OpEnd, X: intp(2), Y: intp(1)})

	p.handle(ClientMessage{Op: OpBegin, X: intp(1), Y: intp(0)})
	p.handle(ClientMessage{Op: OpExtend, PX: 1, PY: 1})
	p.handle(ClientMessage{Op: OpEnd, X: intp(1), Y: intp(2)})

	msgs := drain(sess)
	last := msgs[len(msgs)-1]
	if last.Type != TypeEnd || last.OK || last.Color != "blue" {
		t.Errorf("crossing end = %+v", last)
	}
	if len(last.Connected) != 1 || last.Connected[0] != "red" {
		t.Errorf("connected = %v, expected [red]", last.Connected)
	}
	if p.engine.IsLevelComplete() {
		t.Error("level must not be solved with crossing lines")
	}
}

func TestSessionSendDropsOldest(t *testing.T) {
	sess := newSession("x", "x", nil)
	for i := 0; i < sessionBuffer+5; i++ {
		sess.Send(ServerMessage{Type: TypeLevel, Level: i})
	}
	msgs := drain(sess)
	if len(msgs) != sessionBuffer {
		t.Fatalf("queued %d messages, expected %d", len(msgs), sessionBuffer)
	}
	if msgs[0].Level != 5 || msgs[len(msgs)-1].Level != sessionBuffer+4 {
		t.Errorf("kept levels %d..%d", msgs[0].Level, msgs[len(msgs)-1].Level)
	}

	sess.Close()
	sess.Close()
	sess.Send(ServerMessage{Type: TypeLevel})
	if len(drain(sess)) != 0 {
		t.Error("closed session should drop messages")
	}
}

func TestSessionRegistry(t *testing.T) {
	r := newSessionRegistry()
	a := newSession("a", "alice", nil)
	b := newSession("b", "bob", nil)
	r.Register(a)
	r.Register(b)
	if r.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", r.Count())
	}

	r.CloseAll()
	for _, s := range []*session{a, b} {
		select {
		case <-s.Done():
		default:
			t.Errorf("session %s not closed", s.id)
		}
	}

	r.Unregister("a")
	if r.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", r.Count())
	}
	if r.nextID() == r.nextID() {
		t.Error("nextID should not repeat")
	}
}
