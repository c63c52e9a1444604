package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-linkdots/internal/core"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

// Progress persists game events for one profile.
// A nil *Progress ignores everything.
type Progress struct {
	store    *storage.Store
	profile  string
	tickRate int
	logger   *log.Logger
}

// NewProgress returns a recorder for profile, or nil without a store.
func NewProgress(store *storage.Store, profile string, tickRate int, logger *log.Logger) *Progress {
	if store == nil {
		return nil
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Progress{
		store:    store,
		profile:  profile,
		tickRate: tickRate,
		logger:   logger.With("profile", profile),
	}
}

// Apply writes the events of one step. Failures are logged; the game goes on.
func (p *Progress) Apply(events []core.Event) {
	if p == nil {
		return
	}
	for _, ev := range events {
		var err error
		switch ev.Kind {
		case core.EventLevelLoaded:
			err = p.store.SaveLevel(p.profile, ev.Level)
		case core.EventLevelSolved:
			_, err = p.store.RecordSolve(storage.Solve{
				Profile:  p.profile,
				Level:    ev.Level,
				GridSize: ev.GridSize,
				Pairs:    ev.Pairs,
				Moves:    ev.Moves,
				Duration: time.Duration(ev.Ticks) * time.Second / time.Duration(p.tickRate),
			})
		case core.EventProgressReset:
			err = p.store.ResetProgress(p.profile)
		}
		if err != nil {
			p.logger.Error("cannot persist event", "event", ev.Kind, "level", ev.Level, "err", err)
		}
	}
}
