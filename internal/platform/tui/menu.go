package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

// MenuChoice identifies a start menu entry.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceContinue
	ChoiceNewGame
	ChoicePack
	ChoiceHistory
	ChoiceQuit
)

// MenuItem is one selectable entry of the start menu.
type MenuItem struct {
	Choice      MenuChoice
	Title       string
	Description string
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	theme    Theme
	savedLvl int
	quitting bool
	selected *MenuItem
}

// NewMenuModel builds the start menu for profile. Continue is offered when
// the profile has saved progress beyond the first level.
func NewMenuModel(store *storage.Store, profile string, width, height int, theme Theme, logger *log.Logger) MenuModel {
	saved := 0
	if store != nil {
		lvl, err := store.LoadLevel(profile)
		switch {
		case err == nil:
			saved = lvl
		case !errors.Is(err, storage.ErrNoProgress) && logger != nil:
			logger.Warn("cannot load progress", "profile", profile, "err", err)
		}
	}

	items := make([]MenuItem, 0, 5)
	if saved > 0 {
		items = append(items, MenuItem{
			Choice:      ChoiceContinue,
			Title:       "Continue",
			Description: linkdots.LevelLabel(saved),
		})
	}
	items = append(items,
		MenuItem{Choice: ChoiceNewGame, Title: "New Game", Description: "Start from " + linkdots.LevelLabel(0)},
		MenuItem{Choice: ChoicePack, Title: "Level Pack", Description: "Hand-made puzzles"},
	)
	if store != nil {
		items = append(items, MenuItem{Choice: ChoiceHistory, Title: "History", Description: "Recent solves"})
	}
	items = append(items, MenuItem{Choice: ChoiceQuit, Title: "Quit"})

	return MenuModel{
		items:    items,
		width:    width,
		height:   height,
		theme:    theme,
		savedLvl: saved,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Choice == ChoiceQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &selected
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	top := max((m.height-len(m.items)*2-8)/2, 0)
	b.WriteString(strings.Repeat("\n", top))

	b.WriteString(centerText(m.theme.MenuTitle.Render("L I N K D O T S"), "L I N K D O T S", m.width))
	b.WriteString("\n\n")
	subtitle := "Connect the dots. Lines may not cross."
	b.WriteString(centerText(m.theme.MenuDescription.Render(subtitle), subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			line = "> " + item.Title
			style = m.theme.MenuItemActive
		}
		if item.Description != "" {
			line = fmt.Sprintf("%-14s %s", line, item.Description)
		}
		b.WriteString(centerText(style.Render(line), line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(m.theme.HelpText.Render(controls), controls, m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// SavedLevel returns the profile's saved level index.
func (m MenuModel) SavedLevel() int {
	return m.savedLvl
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads rendered so that plain, its unstyled text, is centered.
func centerText(rendered, plain string, width int) string {
	n := len([]rune(plain))
	if n >= width {
		return rendered
	}
	return strings.Repeat(" ", (width-n)/2) + rendered
}
