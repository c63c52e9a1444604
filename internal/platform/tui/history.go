package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

// maxHistory is the number of solves loaded into the table.
const maxHistory = 100

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel shows the recent solves and totals of one profile.
type HistoryModel struct {
	profile   string
	solves    []storage.Solve
	stats     *storage.ProfileStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	theme     Theme
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel loads the history of profile from store.
func NewHistoryModel(store *storage.Store, profile string, width, height int, theme Theme) HistoryModel {
	m := HistoryModel{
		profile: profile,
		keys:    DefaultHistoryKeyMap(),
		help:    help.New(),
		theme:   theme,
		width:   width,
		height:  height,
	}
	m.load(store)
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads solves and totals. Errors are shown instead of the table.
func (m *HistoryModel) load(store *storage.Store) {
	if store == nil {
		return
	}
	solves, err := store.RecentSolves(m.profile, maxHistory)
	if err != nil {
		m.loadErr = err
		return
	}
	stats, err := store.Stats(m.profile)
	if err != nil {
		m.loadErr = err
		return
	}
	m.solves = solves
	m.stats = stats
}

// createTable creates a table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 10},
		{Title: "Grid", Width: 6},
		{Title: "Pairs", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.TableBorder.GetForeground()).
		BorderBottom(true).
		Bold(true)
	s.Selected = m.theme.TableSelected
	t.SetStyles(s)
	return t
}

// updateTableRows fills the table from the loaded solves.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.solves))
	for i, s := range m.solves {
		rows[i] = table.Row{
			linkdots.LevelLabel(s.Level),
			fmt.Sprintf("%dx%d", s.GridSize, s.GridSize),
			fmt.Sprintf("%d", s.Pairs),
			fmt.Sprintf("%d", s.Moves),
			formatDuration(s.Duration),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders a solve time as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	title := "HISTORY - " + m.profile
	b.WriteString(centerText(m.theme.MenuTitle.Render(title), title, m.width))
	b.WriteString("\n\n")

	summary := m.summary()
	b.WriteString(centerText(m.theme.MenuDescription.Render(summary), summary, m.width))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.TableBorder.GetForeground()).
		Padding(0, 1)
	b.WriteString(box.Render(m.tableContent()))
	b.WriteString("\n")
	b.WriteString(m.theme.HelpText.Render(m.help.View(m.keys)))
	return b.String()
}

// summary describes the profile totals in one line.
func (m HistoryModel) summary() string {
	if m.stats == nil || m.stats.Solves == 0 {
		return "No levels solved yet"
	}
	return fmt.Sprintf("Current: %s | Solved: %d | Best: %s | Avg time: %s",
		linkdots.LevelLabel(m.stats.Level),
		m.stats.Solves,
		linkdots.LevelLabel(m.stats.BestLevel),
		formatDuration(m.stats.AvgDuration))
}

// tableContent renders the table, an error or an empty message.
func (m HistoryModel) tableContent() string {
	switch {
	case m.loadErr != nil:
		return m.theme.EmptyText.Padding(1, 2).Render("Cannot load history:\n" + m.loadErr.Error())
	case len(m.solves) == 0:
		return m.theme.EmptyText.Padding(1, 2).Render("No solves recorded yet.\nFinish a level to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
