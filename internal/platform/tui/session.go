package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-linkdots/internal/core"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/registry"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

// SessionOptions configures a player session.
type SessionOptions struct {
	Store   *storage.Store // Nil plays without persistence
	Profile string
	Config  core.RuntimeConfig
	Theme   Theme
	Logger  *log.Logger

	// ScreenshotDir enables ctrl+s screenshots when set.
	ScreenshotDir string
}

// sessionView is the screen a session is showing.
type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewHistory
)

// SessionModel manages the flow menu -> game or history -> menu.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	opts    SessionOptions
	config  core.RuntimeConfig
	view    sessionView
	menu    MenuModel
	game    GameModel
	history HistoryModel
	ticks   int // ID of the latest game run

	quitting bool
}

// NewSessionModel creates a session that opens on the start menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Profile == "" {
		opts.Profile = core.DefaultConfig().Profile
	}
	if opts.Theme.Palette == nil {
		opts.Theme = ClassicTheme()
	}
	opts.Logger = opts.Logger.With("profile", opts.Profile)

	m := SessionModel{opts: opts, config: opts.Config}
	m.menu = m.newMenu()
	return m
}

// NewGameSession creates a session that starts directly in mode id at
// startLevel. Backing out of the game opens the menu.
func NewGameSession(opts SessionOptions, id string, startLevel int) (SessionModel, error) {
	m := NewSessionModel(opts)
	if err := m.prepareGame(id, startLevel); err != nil {
		return m, err
	}
	return m, nil
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.opts.Store, m.opts.Profile, m.config.ScreenW, m.config.ScreenH, m.opts.Theme, m.opts.Logger)
}

// prepareGame creates the game model for mode id without starting it.
func (m *SessionModel) prepareGame(id string, startLevel int) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	cfg := m.config
	cfg.StartLevel = startLevel
	cfg.Profile = m.opts.Profile
	if m.opts.Config.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// Only the generated campaign keeps progress.
	var progress *Progress
	if id == linkdots.CampaignID {
		progress = NewProgress(m.opts.Store, m.opts.Profile, cfg.TickRate, m.opts.Logger)
	}

	m.ticks++
	m.game = NewGameModel(game, progress, cfg, m.opts.Theme, m.opts.Logger).
		WithTickID(m.ticks).
		WithScreenshotDir(m.opts.ScreenshotDir)
	m.view = viewGame
	m.opts.Logger.Info("game started", "mode", id, "level", startLevel)
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	var err error
	switch selected.Choice {
	case ChoiceContinue:
		err = m.prepareGame(linkdots.CampaignID, m.menu.SavedLevel())
	case ChoiceNewGame:
		err = m.prepareGame(linkdots.CampaignID, 0)
	case ChoicePack:
		err = m.prepareGame(linkdots.PackID, 0)
	case ChoiceHistory:
		m.history = NewHistoryModel(m.opts.Store, m.opts.Profile, m.config.ScreenW, m.config.ScreenH, m.opts.Theme)
		m.view = viewHistory
		return m, m.history.Init()
	}
	if err != nil {
		m.opts.Logger.Error("cannot start game", "err", err)
		m.menu = m.newMenu()
		return m, nil
	}
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.view = viewMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateHistory handles updates when showing the history.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		m.view = viewMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// ProgramOptions returns the Bubble Tea options every session runs with.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// Run runs a session in the local terminal until the player quits.
func Run(model SessionModel) error {
	p := tea.NewProgram(model, ProgramOptions()...)
	_, err := p.Run()
	return err
}
