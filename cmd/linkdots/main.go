// linkdots is a connect-the-dots puzzle for the terminal.
//
// Usage:
//
//	linkdots                  - Start menu (same as "linkdots menu")
//	linkdots play             - Play the generated campaign directly
//	linkdots generate <index> - Print a generated level
//	linkdots levels [dir]     - List a level pack
//	linkdots progress         - Show or reset saved progress
//	linkdots serve            - Start the SSH and HTTP servers
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible levels
//	--db <path>           - Set database path (default: ~/.linkdots/linkdots.db)
//	--config <path>       - Use a custom YAML config
//	--difficulty <preset> - easy, normal or hard
//	--profile <name>      - Progress profile (default: local)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-linkdots/internal/config"
	platformcore "github.com/vovakirdan/tui-linkdots/internal/core"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/platform/tui"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagProfile    string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "linkdots",
	Short: "Linkdots - connect the dots without crossing lines",
	Long: `Linkdots is a terminal puzzle: connect each pair of same-colored dots
with a line. Lines may bend, but they may never cross each other.

Available commands:
  menu      - Start menu (default)
  play      - Play directly
  generate  - Print a generated level
  levels    - List a level pack
  progress  - Show or reset saved progress
  serve     - Start SSH and HTTP servers for remote play

Examples:
  linkdots
  linkdots play --level 5
  linkdots generate 12
  linkdots serve --ssh :2222 --http :8080`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.linkdots/linkdots.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: "+strings.Join(presetNames(), ", "))
	_ = rootCmd.RegisterFlagCompletionFunc("difficulty", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return presetNames(), cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", platformcore.DefaultConfig().Profile, "Profile progress is saved under")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.linkdots/linkdots.log", "Log file for terminal sessions")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

func presetNames() []string {
	presets := config.Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = string(p)
	}
	return names
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newLogger builds the command logger. Terminal sessions log to the log
// file because stdout belongs to the UI; everything else logs to stderr.
// The returned closer releases the file.
func newLogger(toFile bool) (*log.Logger, io.Closer) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if toFile {
		w = io.Discard
		if flagLogFile != "" {
			path := expandHome(flagLogFile)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
				if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
					w, closer = f, f
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "linkdots",
	})
	return logger, closer
}

// loadConfig reads the YAML config, applies the difficulty preset and hands
// the result to the game package.
func loadConfig(logger *log.Logger) config.LinkDotsConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	config.ApplyPreset(&cfg, preset)
	linkdots.Configure(cfg, logger)
	logger.Debug("config loaded", "difficulty", preset, "theme", cfg.Display.Theme)
	return cfg
}

// openStore opens the progress database. A failure downgrades to playing
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		logger.Warn("playing without persistence", "err", err)
		return nil
	}
	return store
}

// runtimeConfig returns the runtime config for the current terminal.
func runtimeConfig() platformcore.RuntimeConfig {
	cfg := platformcore.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Profile = flagProfile
	return cfg
}

// sessionOptions wires everything a terminal session needs.
func sessionOptions(store *storage.Store, cfg config.LinkDotsConfig, logger *log.Logger) tui.SessionOptions {
	return tui.SessionOptions{
		Store:         store,
		Profile:       flagProfile,
		Config:        runtimeConfig(),
		Theme:         tui.ThemeByName(cfg.Display.Theme),
		Logger:        logger,
		ScreenshotDir: filepath.Join(config.DataDir(), "screenshots"),
	}
}
