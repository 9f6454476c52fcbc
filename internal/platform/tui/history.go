package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/storage"
)

// maxRuns is the number of runs loaded into the table.
const maxRuns = 100

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Sort  key.Binding
	Clear key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Sort, k.Clear, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Sort}, {k.Clear, k.Back, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "recent/top"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// HistoryModel shows this process's finished runs. It lives inside the
// game model and is toggled with tab outside of play.
type HistoryModel struct {
	store  *storage.Store
	gameID string
	top    bool // Show best runs instead of most recent
	runs   []storage.Run
	weak   []storage.CharTotal
	err    error
	table  table.Model
	help   help.Model
	keys   HistoryKeyMap
	width  int
	height int
	closed bool
}

// NewHistoryModel creates a history view over the store. The top view ranks
// runs of gameID. A nil store shows an empty history.
func NewHistoryModel(store *storage.Store, gameID string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		gameID: gameID,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 22},
		{Title: "Result", Width: 9},
		{Title: "Score", Width: 7},
		{Title: "Acc", Width: 5},
		{Title: "WPM", Width: 5},
		{Title: "Combo", Width: 6},
		{Title: "When", Width: 8},
	}

	// Narrow terminals lose the level name first
	if m.width < 80 {
		columns[0].Width = 10
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, summary and help
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Open resets the screen and loads the latest runs.
func (m *HistoryModel) Open() {
	m.closed = false
	m.Refresh()
}

// Refresh reloads runs and letter totals from the store.
func (m *HistoryModel) Refresh() {
	m.runs, m.weak, m.err = nil, nil, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	if m.top {
		m.runs, m.err = m.store.TopRuns(m.gameID, maxRuns)
	} else {
		m.runs, m.err = m.store.RecentRuns(maxRuns)
	}
	if m.err == nil {
		var totals []storage.CharTotal
		totals, m.err = m.store.CharTotals()
		for _, t := range totals {
			if t.Accuracy() < typestrike.WeakThreshold {
				m.weak = append(m.weak, t)
			}
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		result := "cleared"
		if r.Outcome != "level_complete" {
			result = "lost"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%s %s", r.LevelID, r.LevelName),
			result,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d", r.MaxCombo),
			r.CreatedAt.Local().Format("15:04:05"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Closed reports whether the user left the history screen.
func (m HistoryModel) Closed() bool {
	return m.closed
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.closed = true
			return m, nil
		case key.Matches(msg, m.keys.Sort):
			m.top = !m.top
			m.Refresh()
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if m.store != nil {
				m.err = m.store.ClearRuns()
			}
			if m.err == nil {
				m.Refresh()
			}
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

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	title := "RECENT RUNS (this session)"
	if m.top {
		title = "TOP RUNS (this session)"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if best := m.selectedBest(); best != "" {
		b.WriteString(centerText(best, m.width))
		b.WriteString("\n")
	}

	if len(m.weak) > 0 {
		parts := make([]string, len(m.weak))
		for i, w := range m.weak {
			parts[i] = fmt.Sprintf("%c %.0f%%", w.Char, w.Accuracy())
		}
		weakStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
		b.WriteString(weakStyle.Render(centerText("Weak letters: "+strings.Join(parts, "  "), m.width)))
		b.WriteString("\n")
	}

	// Help bar
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// selectedBest describes the best score on the highlighted run's level.
func (m HistoryModel) selectedBest() string {
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.runs) {
		return ""
	}
	r := m.runs[i]
	best, err := m.store.BestScore(r.LevelID)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Best on %s: %d", r.LevelName, best)
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("History unavailable: " + m.err.Error())
	}
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs yet.\nFinish a level to see it here!")
	}

	return m.table.View()
}

// centerText pads text to center it within width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return strings.Repeat(" ", (width-textWidth)/2) + text
}
