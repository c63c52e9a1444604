package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

var (
	flagReset bool
	flagYes   bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset saved progress",
	Long: `Show the saved level and solve totals of a profile.

--reset starts the profile over from level 1. It asks you to type
"reset" first unless --yes is given. Solve history is kept.

Examples:
  linkdots progress
  linkdots progress --profile alice
  linkdots progress --reset
  linkdots progress --reset --yes`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Reset progress to the first level")
	progressCmd.Flags().BoolVar(&flagYes, "yes", false, "Do not ask for confirmation")
}

func runProgress(_ *cobra.Command, _ []string) {
	logger, closer := newLogger(false)
	defer closer.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	if flagReset {
		resetProgress(store)
		logger.Info("progress reset", "profile", flagProfile)
		return
	}

	stats, err := store.Stats(flagProfile)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Progress - %s\n\n", flagProfile)
	fmt.Printf("  Current level:  %s\n", linkdots.LevelLabel(stats.Level))
	if stats.Solves == 0 {
		fmt.Println("  No levels solved yet.")
		fmt.Println()
		fmt.Println("Play 'linkdots play' to solve the first one!")
		return
	}
	fmt.Printf("  Levels solved:  %d\n", stats.Solves)
	fmt.Printf("  Best level:     %s\n", linkdots.LevelLabel(stats.BestLevel))
	fmt.Printf("  Total moves:    %d\n", stats.TotalMoves)
	fmt.Printf("  Average time:   %s\n", stats.AvgDuration.Round(100 * time.Millisecond))
	if !stats.LastSolvedAt.IsZero() {
		fmt.Printf("  Last solved:    %s\n", stats.LastSolvedAt.Local().Format("2006-01-02 15:04"))
	}

	solves, err := store.RecentSolves(flagProfile, 5)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println()
	fmt.Println("Recent solves:")
	for _, s := range solves {
		fmt.Printf("  %-10s  %dx%d  %d pairs  %d moves  %s\n",
			linkdots.LevelLabel(s.Level), s.GridSize, s.GridSize, s.Pairs, s.Moves, s.Duration.Round(100 * time.Millisecond))
	}
}

// resetProgress asks for confirmation unless --yes is set, then resets.
func resetProgress(store *storage.Store) {
	level, err := store.LoadLevel(flagProfile)
	if errors.Is(err, storage.ErrNoProgress) {
		fmt.Printf("Profile %s has no saved progress.\n", flagProfile)
		return
	}
	if err != nil {
		fail("%v", err)
	}

	if !flagYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fail("refusing to reset without a terminal; pass --yes")
		}
		fmt.Printf("Profile %s is at %s. Type \"reset\" to start over: ", flagProfile, linkdots.LevelLabel(level))
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(answer) != "reset" {
			fmt.Println("Cancelled.")
			return
		}
	}

	if err := store.ResetProgress(flagProfile); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Progress of %s reset to %s.\n", flagProfile, linkdots.LevelLabel(0))
}
