package tui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-linkdots/internal/core"
)

// stubGame records what the model feeds it.
type stubGame struct {
	resets  []core.RuntimeConfig
	frames  []core.InputFrame
	events  []core.Event
	state   core.GameState
	message string
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	events := g.events
	g.events = nil
	return core.StepResult{State: g.state, Events: events}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, g.message)
}

func (g *stubGame) State() core.GameState { return g.state }

// resizingGame also adapts to new window sizes.
type resizingGame struct {
	stubGame
	w, h int
}

func (g *resizingGame) Resize(w, h int) {
	g.w, g.h = w, h
}

func newTestGameModel(game *stubGame) GameModel {
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	return NewGameModel(game, nil, cfg, ClassicTheme(), log.New(os.Stderr))
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelInitResets(t *testing.T) {
	game := &stubGame{}
	m := newTestGameModel(game)

	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should start the tick loop")
	}
	if len(game.resets) != 1 || game.resets[0].ScreenW != 80 || game.resets[0].Seed != 1 {
		t.Errorf("resets = %+v", game.resets)
	}
}

func TestGameModelKeysReachNextStep(t *testing.T) {
	game := &stubGame{}
	m := newTestGameModel(game)

	m, _ = update(t, m, runeKey("x"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	m, _ = update(t, m, TickMsg{})

	if len(game.frames) != 2 {
		t.Fatalf("got %d steps, expected 2", len(game.frames))
	}
	first := game.frames[0]
	if !first.Has(core.ActionRemove) || !first.Has(core.ActionConfirm) {
		t.Errorf("first frame = %+v", first.Actions)
	}
	if !game.frames[1].Empty() {
		t.Errorf("input should be cleared after a step, got %+v", game.frames[1])
	}
	_ = m
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	game := &stubGame{}
	m := newTestGameModel(game).WithTickID(3)

	m, cmd := update(t, m, TickMsg{ID: 2})
	if cmd != nil || len(game.frames) != 0 {
		t.Fatal("a tick from an older game should be dropped")
	}
	update(t, m, TickMsg{ID: 3})
	if len(game.frames) != 1 {
		t.Errorf("got %d steps, expected 1", len(game.frames))
	}
}

func TestGameModelMouse(t *testing.T) {
	game := &stubGame{}
	m := newTestGameModel(game)

	msgs := []tea.MouseMsg{
		{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		{X: 11, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		{X: 12, Y: 6, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
		{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
	}
	for _, msg := range msgs {
		m, _ = update(t, m, msg)
	}
	update(t, m, TickMsg{})

	got := game.frames[0].Pointer
	want := []core.PointerEvent{
		{Kind: core.PointerDown, X: 10, Y: 5},
		{Kind: core.PointerMove, X: 11, Y: 5},
		{Kind: core.PointerUp, X: 12, Y: 6},
	}
	if len(got) != len(want) {
		t.Fatalf("pointer events = %+v, expected %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestGameModelResize(t *testing.T) {
	t.Run("resizer keeps the game", func(t *testing.T) {
		game := &resizingGame{}
		m := NewGameModel(game, nil, core.DefaultConfig(), ClassicTheme(), nil)
		update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

		if game.w != 100 || game.h != 30 {
			t.Errorf("Resize got %dx%d", game.w, game.h)
		}
		if len(game.resets) != 0 {
			t.Errorf("resizer should not be reset, got %d resets", len(game.resets))
		}
	})

	t.Run("other games restart", func(t *testing.T) {
		game := &stubGame{}
		m := NewGameModel(game, nil, core.DefaultConfig(), ClassicTheme(), nil)
		update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

		if len(game.resets) != 1 || game.resets[0].ScreenW != 100 || game.resets[0].ScreenH != 30 {
			t.Errorf("resets = %+v", game.resets)
		}
	})
}

func TestGameModelBackAndQuit(t *testing.T) {
	game := &stubGame{}
	m := newTestGameModel(game)

	m, _ = update(t, m, runeKey("b"))
	if !m.BackToMenu() {
		t.Error("b should return to the menu")
	}

	m, cmd := update(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelPersistsEvents(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{events: []core.Event{{Kind: core.EventLevelLoaded, Level: 6}}}
	m := NewGameModel(game, NewProgress(store, "cat", 60, nil), core.DefaultConfig(), ClassicTheme(), nil)

	update(t, m, TickMsg{})
	if level, err := store.LoadLevel("cat"); err != nil || level != 6 {
		t.Errorf("LoadLevel() = %d, %v; expected 6", level, err)
	}
}

func TestGameModelViewAndScreenshot(t *testing.T) {
	dir := t.TempDir()
	game := &stubGame{message: "hello grid"}
	m := newTestGameModel(game).WithScreenshotDir(dir)

	if view := m.View(); !strings.Contains(view, "hello grid") {
		t.Errorf("View() = %q", view)
	}

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "stub_") {
		t.Fatalf("screenshot files = %v", entries)
	}
	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello grid") {
		t.Errorf("screenshot = %q", data)
	}
}
