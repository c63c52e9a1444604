// Package tui runs linkdots in a terminal with Bubble Tea: the start menu,
// the game runner with mouse input, the solve history and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one game step. ID names the game run it belongs to, so a
// tick left over from a finished game is dropped.
type TickMsg struct {
	Time time.Time
	ID   int
}

// tickCmd schedules the next tick at tickRate per second.
func tickCmd(tickRate, id int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id}
	})
}
