package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-linkdots/internal/core"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store) SessionModel {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	return NewSessionModel(SessionOptions{Store: store, Profile: "sam", Config: cfg})
}

func send(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
	}
	return m
}

func TestSessionNewGameAndBack(t *testing.T) {
	store := openTestStore(t)
	m := newTestSession(t, store)
	if m.view != viewMenu {
		t.Fatalf("session should open on the menu")
	}

	// New Game is the first entry without saved progress.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame || m.game.game.ID() != linkdots.CampaignID {
		t.Fatalf("view = %v, expected the campaign", m.view)
	}
	m = send(t, m, TickMsg{ID: m.ticks})
	if level, err := store.LoadLevel("sam"); err != nil || level != 0 {
		t.Errorf("LoadLevel() = %d, %v; expected level 0 saved", level, err)
	}

	m = send(t, m, runeKey("b"))
	if m.view != viewMenu {
		t.Errorf("b should return to the menu, view = %v", m.view)
	}
}

func TestSessionPackKeepsNoProgress(t *testing.T) {
	store := openTestStore(t)
	m := newTestSession(t, store)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame || m.game.game.ID() != linkdots.PackID {
		t.Fatalf("expected the level pack")
	}
	if m.game.progress != nil {
		t.Error("pack games should not record progress")
	}
}

func TestSessionStaleTicksAfterRestart(t *testing.T) {
	m := newTestSession(t, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	first := m.ticks

	m = send(t, m, runeKey("b"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.ticks == first {
		t.Fatal("each game should get a new tick ID")
	}
	if m.game.tickID != m.ticks {
		t.Errorf("game tick ID = %d, expected %d", m.game.tickID, m.ticks)
	}
}

func TestSessionHistory(t *testing.T) {
	store := openTestStore(t)
	_, err := store.RecordSolve(storage.Solve{
		Profile: "sam", Level: 2, GridSize: 5, Pairs: 3, Moves: 5, Duration: 83 * time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	m := newTestSession(t, store)

	// New Game, Level Pack, History
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewHistory {
		t.Fatalf("view = %v, expected history", m.view)
	}
	view := m.View()
	for _, want := range []string{"HISTORY - sam", "Level 3", "1:23", "Solved: 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("history view missing %q:\n%s", want, view)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Errorf("esc should return to the menu")
	}
}

func TestNewGameSession(t *testing.T) {
	m, err := NewGameSession(SessionOptions{Profile: "sam"}, linkdots.CampaignID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if m.view != viewGame || m.game.config.StartLevel != 5 {
		t.Errorf("view = %v, start level = %d", m.view, m.game.config.StartLevel)
	}

	if _, err := NewGameSession(SessionOptions{}, "tetris", 0); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t, nil)
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil || next.(SessionModel).View() != "" {
		t.Error("q on the menu should quit the session")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{9 * time.Second, "0:09"},
		{83 * time.Second, "1:23"},
		{10*time.Minute + 500*time.Millisecond, "10:01"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
