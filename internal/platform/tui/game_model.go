package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-linkdots/internal/core"
	"github.com/vovakirdan/tui-linkdots/internal/registry"
)

// resizer is implemented by games that can adapt to a new screen size
// without restarting.
type resizer interface {
	Resize(w, h int)
}

// GameModel runs one game inside a Bubble Tea program.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	theme      Theme
	progress   *Progress
	config     core.RuntimeConfig
	keys       GameKeyMap
	inputFrame core.InputFrame
	gameState  core.GameState
	logger     *log.Logger

	tickID        int
	screenshotDir string

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A nil progress plays without
// persistence.
func NewGameModel(game registry.Game, progress *Progress, cfg core.RuntimeConfig, theme Theme, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.Default()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		theme:      theme,
		progress:   progress,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		inputFrame: core.NewInputFrame(),
		logger:     logger,
	}
}

// WithTickID returns a copy whose ticks carry id.
func (m GameModel) WithTickID(id int) GameModel {
	m.tickID = id
	return m
}

// WithScreenshotDir returns a copy that saves screenshots under dir.
func (m GameModel) WithScreenshotDir(dir string) GameModel {
	m.screenshotDir = dir
	return m
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.tickID)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := pointerFromMouse(msg); ok {
			m.inputFrame.AddPointer(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// pointerFromMouse converts a mouse message to a pointer event.
// Only the left button draws.
func pointerFromMouse(msg tea.MouseMsg) (core.PointerEvent, bool) {
	ev := core.PointerEvent{X: msg.X, Y: msg.Y}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		ev.Kind = core.PointerDown
	case tea.MouseActionMotion:
		ev.Kind = core.PointerMove
	case tea.MouseActionRelease:
		ev.Kind = core.PointerUp
	default:
		return ev, false
	}
	return ev, true
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick steps the game and persists its events.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.progress.Apply(result.Events)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.tickID)
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	if m.screenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.screenshotDir, "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(m.screenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.theme)
}

// State returns the last game state seen by the model.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
