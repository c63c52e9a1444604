package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-linkdots/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start linkdots with the start menu",
	Long: `Start linkdots in interactive menu mode.

The menu offers Continue (when progress is saved), New Game, the Level
Pack, History and Quit. Leaving a game with b returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  linkdots menu
  linkdots menu --profile alice
  linkdots menu --db ./linkdots.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closer := newLogger(true)
	defer closer.Close()

	cfg := loadConfig(logger)
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	model := tui.NewSessionModel(sessionOptions(store, cfg, logger))
	if err := tui.Run(model); err != nil {
		fail("running session: %v", err)
	}
}
