package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/platform/tui"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

var (
	flagLevel   int
	flagPackDir string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level directly",
	Long: `Skip the menu and start playing.

Without flags the generated campaign resumes from the saved level.
--level starts at a given level (1-based). --pack plays the level pack
in a directory instead of the generated campaign.

Controls:
  Mouse drag   - Draw a line from a dot to its pair
  Click line   - Remove it
  Arrows       - Move the cursor
  Space/Enter  - Start or finish a line, next level when solved
  Esc          - Cancel the line being drawn
  X            - Remove the line under the cursor
  R            - Restart the level
  Shift+R x2   - Reset progress to level 1
  B            - Back to menu
  Q/Ctrl+C     - Quit

Examples:
  linkdots play
  linkdots play --level 10
  linkdots play --pack ./my-levels
  linkdots play --difficulty hard --seed 7`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start at, 1-based (0 = saved progress)")
	playCmd.Flags().StringVar(&flagPackDir, "pack", "", "Play the level pack in this directory")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if flagLevel < 0 {
		fail("--level must be positive")
	}

	logger, closer := newLogger(true)
	defer closer.Close()

	cfg := loadConfig(logger)
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	mode := linkdots.CampaignID
	start := 0
	switch {
	case cmd.Flags().Changed("pack"):
		mode = linkdots.PackID
		linkdots.SetPackDir(flagPackDir)
		if _, err := linkdots.LoadPack(flagPackDir); err != nil {
			fail("loading pack %s: %v", flagPackDir, err)
		}
	case flagLevel > 0:
		start = flagLevel - 1
	case store != nil:
		saved, err := store.LoadLevel(flagProfile)
		if err != nil && !errors.Is(err, storage.ErrNoProgress) {
			logger.Warn("cannot load progress", "profile", flagProfile, "err", err)
		}
		start = saved
	}
	if mode == linkdots.PackID && flagLevel > 0 {
		start = flagLevel - 1
	}

	model, err := tui.NewGameSession(sessionOptions(store, cfg, logger), mode, start)
	if err != nil {
		fail("%v", err)
	}
	if err := tui.Run(model); err != nil {
		fail("running game: %v", err)
	}
}
