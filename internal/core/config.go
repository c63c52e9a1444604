package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	StartLevel int    // Zero-based level to open, usually the saved progress
	Profile    string // Name progress is stored under
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Profile:  "local",
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level    int  // Zero-based current level
	Solved   bool // Current level is complete
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies something the platform may want to persist.
type EventKind int

const (
	EventLevelLoaded   EventKind = iota // A level was set up; Level is its index
	EventLevelSolved                    // The current level was completed
	EventProgressReset                  // The player asked to start over
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLevelLoaded:
		return "level_loaded"
	case EventLevelSolved:
		return "level_solved"
	case EventProgressReset:
		return "progress_reset"
	default:
		return "unknown"
	}
}

// Event is emitted by a game step.
type Event struct {
	Kind     EventKind
	Level    int
	GridSize int
	Pairs    int
	Moves    int
	Ticks    int // Ticks spent on the level, for solve duration
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
