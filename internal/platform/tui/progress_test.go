package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-linkdots/internal/core"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestProgressApply(t *testing.T) {
	store := openTestStore(t)
	p := NewProgress(store, "ann", 10, nil)

	p.Apply([]core.Event{
		{Kind: core.EventLevelLoaded, Level: 3},
		{Kind: core.EventLevelSolved, Level: 3, GridSize: 5, Pairs: 3, Moves: 4, Ticks: 25},
		{Kind: core.EventLevelLoaded, Level: 4},
	})

	level, err := store.LoadLevel("ann")
	if err != nil || level != 4 {
		t.Fatalf("LoadLevel() = %d, %v; expected 4", level, err)
	}

	solves, err := store.RecentSolves("ann", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(solves) != 1 {
		t.Fatalf("got %d solves, expected 1", len(solves))
	}
	got := solves[0]
	if got.Level != 3 || got.GridSize != 5 || got.Pairs != 3 || got.Moves != 4 {
		t.Errorf("solve = %+v", got)
	}
	if got.Duration != 2500*time.Millisecond {
		t.Errorf("duration = %v, expected 2.5s", got.Duration)
	}

	p.Apply([]core.Event{{Kind: core.EventProgressReset}})
	if _, err := store.LoadLevel("ann"); !errors.Is(err, storage.ErrNoProgress) {
		t.Errorf("LoadLevel() after reset err = %v, expected ErrNoProgress", err)
	}
}

func TestProgressWithoutStore(t *testing.T) {
	p := NewProgress(nil, "ann", 60, nil)
	if p != nil {
		t.Fatal("NewProgress(nil) should return nil")
	}
	// A nil recorder ignores events.
	p.Apply([]core.Event{{Kind: core.EventLevelLoaded, Level: 1}})
}

func TestProgressKeepsProfilesApart(t *testing.T) {
	store := openTestStore(t)
	NewProgress(store, "ann", 60, nil).Apply([]core.Event{{Kind: core.EventLevelLoaded, Level: 2}})
	NewProgress(store, "ben", 60, nil).Apply([]core.Event{{Kind: core.EventLevelLoaded, Level: 7}})

	for profile, want := range map[string]int{"ann": 2, "ben": 7} {
		if got, err := store.LoadLevel(profile); err != nil || got != want {
			t.Errorf("LoadLevel(%q) = %d, %v; expected %d", profile, got, err, want)
		}
	}
}
