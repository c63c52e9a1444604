package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [dir]",
	Short: "List the levels of a pack",
	Long: `List the levels of a pack directory, or of the built-in pack when no
directory is given. Files that cannot be parsed are skipped.

Examples:
  linkdots levels
  linkdots levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, args []string) {
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}

	pack, err := linkdots.LoadPack(dir)
	if err != nil {
		fail("%v", err)
	}

	source := dir
	if source == "" {
		source = "built-in pack"
	}
	fmt.Printf("Levels - %s\n\n", source)

	if len(pack) == 0 {
		fmt.Println("No levels found.")
		return
	}

	fmt.Printf("  %-4s  %-14s  %-20s  %-5s  %s\n", "#", "ID", "Name", "Grid", "Pairs")
	fmt.Printf("  %-4s  %-14s  %-20s  %-5s  %s\n", "-", "--", "----", "----", "-----")
	for i, lvl := range pack {
		desc := lvl.Descriptor(i)
		fmt.Printf("  %-4d  %-14s  %-20s  %-5s  %d\n",
			i+1, lvl.ID, lvl.Name, fmt.Sprintf("%dx%d", lvl.GridSize, lvl.GridSize), desc.Pairs())
	}
}
