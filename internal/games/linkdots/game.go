// Package linkdots provides the connect-the-dots puzzle for the platform.
// Two modes are registered: a generated campaign that never ends and a
// level pack read from YAML files.
package linkdots

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/tanema/gween"

	platformcore "github.com/vovakirdan/tui-linkdots/internal/core"
	"github.com/vovakirdan/tui-linkdots/internal/config"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/levels"
	"github.com/vovakirdan/tui-linkdots/internal/registry"
)

// Mode IDs.
const (
	CampaignID = "linkdots"
	PackID     = "linkdots-pack"
)

// Options configures a game instance.
type Options struct {
	Config config.LinkDotsConfig
	Logger *log.Logger

	// UsePack plays hand-authored levels instead of generated ones.
	UsePack bool
	// PackDir is the level pack directory. Empty means the builtin pack.
	PackDir string
}

// Package-level defaults used by the registry factories.
var (
	defaultConfig  = config.DefaultConfig()
	defaultLogger  = log.New(io.Discard)
	defaultPackDir string
)

// Configure sets the config and logger used by registered modes.
func Configure(cfg config.LinkDotsConfig, logger *log.Logger) {
	defaultConfig = cfg
	if logger != nil {
		defaultLogger = logger
	}
}

// SetPackDir sets the directory of the pack mode. Empty means the builtin pack.
func SetPackDir(dir string) {
	defaultPackDir = dir
}

func init() {
	registry.Register(CampaignID, func() registry.Game {
		return New(Options{Config: defaultConfig, Logger: defaultLogger})
	})
	registry.Register(PackID, func() registry.Game {
		return New(Options{Config: defaultConfig, Logger: defaultLogger, UsePack: true, PackDir: defaultPackDir})
	})
}

// Game implements the linkdots puzzle on top of core.Engine.
type Game struct {
	opts   Options
	logger *log.Logger

	rng    *rand.Rand
	gen    *core.Generator
	engine *core.Engine

	// Level state
	pack       []levels.Level
	levelIndex int
	desc       core.LevelDescriptor
	levelName  string

	// Screen dimensions
	screenW  int
	screenH  int
	tickRate int

	// Layout, recomputed on resize
	layout layout

	// Input state
	cursor   core.Coord
	dragging bool

	// Status
	tick       uint64
	levelTicks int
	moves      int
	solved     bool
	gameOver   bool
	paused     bool
	resetArmed int // Ticks left to confirm a progress reset

	message      string
	messageTicks int

	banner  *gween.Tween
	bannerY float32

	events []platformcore.Event
}

// New creates a game with the given options.
func New(opts Options) *Game {
	opts.Config.Validate()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		opts:     opts,
		logger:   logger.WithPrefix("linkdots"),
		tickRate: 60,
	}
	g.engine = core.NewEngine(RulesFromConfig(opts.Config.Rules))
	g.engine.OnComplete(g.handleComplete)
	return g
}

// RulesFromConfig converts the rules section to engine rules.
func RulesFromConfig(rc config.RulesConfig) core.Rules {
	return core.Rules{
		MinPointDistance: rc.MinPointDistance,
		SnapRadius:       rc.SnapRadius,
		LockConnected:    rc.LockConnected,
	}
}

// GenParamsFromConfig converts the generator section to generator parameters.
func GenParamsFromConfig(gc config.GeneratorConfig) core.GenParams {
	return core.GenParams{
		MinGridSize:       gc.MinGridSize,
		MaxGridSize:       gc.MaxGridSize,
		LevelsPerGridStep: gc.LevelsPerGridStep,
		MinPairs:          gc.MinPairs,
		MaxPairs:          gc.MaxPairs,
		LevelsPerPairStep: gc.LevelsPerPairStep,
		MinDistance:       gc.MinDistance,
		MaxDistance:       gc.MaxDistance,
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	if g.opts.UsePack {
		return PackID
	}
	return CampaignID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.opts.UsePack {
		return "Linkdots: Level Pack"
	}
	return "Linkdots"
}

// Engine exposes the rules engine, mainly for tests and tools.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// Descriptor returns the descriptor of the current level.
func (g *Game) Descriptor() core.LevelDescriptor {
	return g.desc
}

// Reset initializes the game at cfg.StartLevel.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.gen = core.NewGenerator(g.rng, GenParamsFromConfig(g.opts.Config.Generator))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	if cfg.TickRate > 0 {
		g.tickRate = cfg.TickRate
	}
	g.tick = 0
	g.gameOver = false
	g.paused = false
	g.resetArmed = 0
	g.pack = nil

	if g.opts.UsePack {
		pack, err := LoadPack(g.opts.PackDir)
		if err != nil || len(pack) == 0 {
			g.logger.Error("no playable levels in pack", "dir", g.opts.PackDir, "err", err)
			g.gameOver = true
			g.flash("No levels found", 0)
			return
		}
		g.pack = pack
	}

	g.levelIndex = max(cfg.StartLevel, 0)
	if g.pack != nil && g.levelIndex >= len(g.pack) {
		g.levelIndex = 0
	}
	g.loadLevel()
}

// LoadPack loads a level pack directory, or the builtin pack when dir is empty.
func LoadPack(dir string) ([]levels.Level, error) {
	loader := levels.NewBuiltinLoader()
	if dir != "" {
		loader = levels.NewLoader(dir)
	}
	return loader.LoadAll()
}

// loadLevel sets up the board for levelIndex.
func (g *Game) loadLevel() {
	if g.pack != nil {
		lvl := g.pack[g.levelIndex]
		g.desc = lvl.Descriptor(g.levelIndex)
		g.levelName = lvl.Name
	} else {
		g.desc = g.gen.Generate(g.levelIndex)
		g.levelName = ""
		if short := g.desc.Shortfall(); short > 0 {
			g.logger.Warn("generator placed fewer pairs than requested",
				"level", g.levelIndex, "requested", g.desc.RequestedPairs, "placed", g.desc.Pairs())
		}
	}

	g.resetLevelState()
	if err := g.engine.SetupBoard(g.desc); err != nil {
		g.logger.Error("cannot set up level", "level", g.levelIndex, "err", err)
		g.flash("Level could not be built, press n to skip", 0)
		return
	}

	g.logger.Debug("level loaded", "level", g.levelIndex, "size", g.desc.GridSize, "pairs", g.desc.Pairs())
	g.calculateLayout()
	g.emit(platformcore.Event{
		Kind:     platformcore.EventLevelLoaded,
		Level:    g.levelIndex,
		GridSize: g.desc.GridSize,
		Pairs:    g.desc.Pairs(),
	})
}

// resetLevelState clears per-level counters and input.
func (g *Game) resetLevelState() {
	g.levelTicks = 0
	g.moves = 0
	g.solved = false
	g.banner = nil
	g.dragging = false
	g.cursor = core.C(0, 0)
}

// restartLevel clears all paths of the current level.
func (g *Game) restartLevel() {
	g.resetLevelState()
	if err := g.engine.SetupBoard(g.desc); err != nil {
		g.logger.Error("cannot restart level", "level", g.levelIndex, "err", err)
	}
}

// nextLevel advances past a solved (or unbuildable) level.
func (g *Game) nextLevel() {
	g.levelIndex++
	if g.pack != nil && g.levelIndex >= len(g.pack) {
		g.gameOver = true
		g.flash("All levels cleared! Press r to play again", 0)
		return
	}
	g.loadLevel()
}

// handleComplete is the engine's completion observer.
func (g *Game) handleComplete() {
	g.solved = true
	g.dragging = false
	g.logger.Info("level solved", "level", g.levelIndex, "moves", g.moves, "ticks", g.levelTicks)
	g.emit(platformcore.Event{
		Kind:     platformcore.EventLevelSolved,
		Level:    g.levelIndex,
		GridSize: g.desc.GridSize,
		Pairs:    g.desc.Pairs(),
		Moves:    g.moves,
		Ticks:    g.levelTicks,
	})

	_, targetY := g.bannerRange()
	g.banner = gween.New(-bannerHeight, targetY, float32(g.opts.Config.Display.BannerSeconds), bannerEase)
	g.bannerY = -bannerHeight
}

// emit queues an event for the current step.
func (g *Game) emit(ev platformcore.Event) {
	g.events = append(g.events, ev)
}

// flash shows a footer message. ticks <= 0 keeps it until replaced.
func (g *Game) flash(msg string, ticks int) {
	g.message = msg
	g.messageTicks = ticks
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if input.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}
	if g.resetArmed > 0 {
		g.resetArmed--
	}

	switch {
	case g.gameOver:
		if input.Has(platformcore.ActionRestart) && g.pack != nil {
			g.gameOver = false
			g.levelIndex = 0
			g.message = ""
			g.loadLevel()
		}
	case g.paused:
		// Frozen until unpaused.
	case input.Has(platformcore.ActionResetProgress):
		g.handleResetProgress()
	case g.solved:
		g.updateBanner()
		if input.Has(platformcore.ActionConfirm) {
			g.nextLevel()
		} else if input.Has(platformcore.ActionRestart) {
			g.restartLevel()
		}
	case g.engine.Board() == nil:
		// Unbuildable level; allow skipping it.
		if input.Has(platformcore.ActionConfirm) {
			g.message = ""
			g.nextLevel()
		}
	case g.layout.tooSmall:
		// Nothing to click on until the window grows.
	default:
		g.levelTicks++
		g.handleKeys(input)
		for _, ev := range input.Pointer {
			if g.solved {
				break
			}
			g.handlePointer(ev)
		}
	}

	events := g.events
	g.events = nil
	return platformcore.StepResult{State: g.State(), Events: events}
}

// handleResetProgress implements the two-press progress reset.
func (g *Game) handleResetProgress() {
	if g.resetArmed == 0 {
		g.resetArmed = 3 * g.tickRate
		g.flash("Press R again to reset progress", g.resetArmed)
		return
	}
	g.resetArmed = 0
	g.logger.Info("progress reset", "from", g.levelIndex)
	g.emit(platformcore.Event{Kind: platformcore.EventProgressReset, Level: g.levelIndex})
	g.flash("Progress reset", 2*g.tickRate)
	g.levelIndex = 0
	g.gameOver = false
	g.loadLevel()
}

// handleKeys applies keyboard actions to the cursor and the engine.
func (g *Game) handleKeys(input platformcore.InputFrame) {
	board := g.engine.Board()
	size := board.Size()

	moved := false
	move := func(dx, dy int) {
		next := core.C(
			platformcore.Clamp(g.cursor.X+dx, 0, size-1),
			platformcore.Clamp(g.cursor.Y+dy, 0, size-1),
		)
		if next != g.cursor {
			g.cursor = next
			moved = true
		}
	}
	if input.Has(platformcore.ActionUp) {
		move(0, -1)
	}
	if input.Has(platformcore.ActionDown) {
		move(0, 1)
	}
	if input.Has(platformcore.ActionLeft) {
		move(-1, 0)
	}
	if input.Has(platformcore.ActionRight) {
		move(1, 0)
	}
	if moved && g.engine.Drawing() && !g.dragging {
		g.engine.ExtendPath(board.Grid.Center(g.cursor))
	}

	switch {
	case input.Has(platformcore.ActionConfirm):
		if g.engine.Drawing() {
			g.finishPath(&g.cursor)
		} else {
			g.engine.BeginPath(g.cursor)
		}
	case input.Has(platformcore.ActionCancel):
		g.engine.CancelPath()
		g.dragging = false
	case input.Has(platformcore.ActionRemove):
		g.removeAt(board.Grid.Center(g.cursor))
	case input.Has(platformcore.ActionRestart):
		g.restartLevel()
	}
}

// handlePointer applies one mouse event.
func (g *Game) handlePointer(ev platformcore.PointerEvent) {
	board := g.engine.Board()
	p := g.layout.toWorld(ev.X, ev.Y)
	cell, onBoard := board.Grid.CellAt(p)
	onBoard = onBoard && g.layout.bounds().Contains(ev.X, ev.Y)
	if onBoard {
		g.cursor = cell
	}

	switch ev.Kind {
	case platformcore.PointerDown:
		if !onBoard {
			return
		}
		if ep, ok := board.EndpointAt(cell); ok {
			g.dragging = g.engine.BeginPath(ep.Pos)
			return
		}
		g.removeAt(p)
	case platformcore.PointerMove:
		if g.dragging {
			g.engine.ExtendPath(p)
		}
	case platformcore.PointerUp:
		if !g.dragging {
			return
		}
		g.dragging = false
		if onBoard {
			g.finishPath(&cell)
		} else {
			g.engine.EndPath(nil)
		}
	}
}

// finishPath ends the provisional path on target and reports rejections.
func (g *Game) finishPath(target *core.Coord) {
	color, _, _ := g.engine.Provisional()
	ep, isEndpoint := g.engine.Board().EndpointAt(*target)

	// Counted up front so the completion observer sees this move.
	g.moves++
	var res core.EndResult
	if CrossesAtVertex(g.engine, *target) {
		g.engine.EndPath(nil)
	} else {
		res = g.engine.EndPath(target)
	}
	if res.Accepted {
		return
	}
	g.moves--
	// Same-color unconnected target means the path itself was refused.
	if isEndpoint && ep.Color == color && !ep.Connected {
		g.logger.Debug("path rejected", "color", color, "level", g.levelIndex)
		g.flash("Lines cannot cross", g.tickRate)
	}
}

// removeAt removes the path owning the endpoint at p, or the line near p.
func (g *Game) removeAt(p core.Point) {
	board := g.engine.Board()
	if cell, ok := board.Grid.CellAt(p); ok {
		if ep, ok := board.EndpointAt(cell); ok && ep.Connected {
			g.engine.RemovePath(ep.Color)
			return
		}
	}
	if color, ok := board.PathNear(p, g.opts.Config.Rules.RemoveTolerance); ok {
		g.engine.RemovePath(color)
	}
}

// updateBanner advances the completion banner animation.
func (g *Game) updateBanner() {
	if g.banner == nil {
		return
	}
	y, done := g.banner.Update(1 / float32(g.tickRate))
	g.bannerY = y
	if done {
		g.banner = nil
	}
}

// Resize recomputes the layout without touching the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.calculateLayout()
	if g.solved {
		_, g.bannerY = g.bannerRange()
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Level:    g.levelIndex,
		Solved:   g.solved,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// LevelLabel returns the player-facing level label.
func LevelLabel(index int) string {
	return fmt.Sprintf("Level %d", index+1)
}
