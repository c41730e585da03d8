package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/comfy-wars/internal/storage"
)

// Journal view layout constants
const (
	maxEntries = 200 // Max journal rows to load
	timeWidth  = 14
)

// JournalView selects the table the journal screen shows.
type JournalView int

const (
	ViewReloads JournalView = iota
	ViewFaults
)

func (v JournalView) String() string {
	if v == ViewFaults {
		return "FRAME FAULTS"
	}
	return "RELOADS"
}

// JournalKeyMap defines the key bindings for the journal screen.
type JournalKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Switch, k.Quit}}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "reloads/faults"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel is the Bubble Tea model listing the reload journal.
type JournalModel struct {
	store    *storage.Store
	view     JournalView
	reloads  []storage.ReloadEntry
	faults   []storage.FaultEntry
	err      error
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	width    int
	height   int
	quitting bool
}

// NewJournalModel creates a journal model and loads both tables.
func NewJournalModel(store *storage.Store, view JournalView, width, height int) JournalModel {
	m := JournalModel{
		store:  store,
		view:   view,
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *JournalModel) load() {
	if m.store == nil {
		return
	}
	if m.reloads, m.err = m.store.RecentReloads(maxEntries); m.err != nil {
		return
	}
	m.faults, m.err = m.store.RecentFaults(maxEntries)
}

// columns sizes the table to the window. The last column takes the rest.
func (m *JournalModel) columns() []table.Column {
	rest := max(m.width-timeWidth-16-8, 20)
	if m.view == ViewFaults {
		return []table.Column{
			{Title: "When", Width: timeWidth},
			{Title: "Unit", Width: 16},
			{Title: "Message", Width: rest},
		}
	}
	return []table.Column{
		{Title: "When", Width: timeWidth},
		{Title: "Unit", Width: 16},
		{Title: "Outcome", Width: 8},
		{Title: "Error", Width: max(rest-10, 10)},
	}
}

// createTable creates a new table with appropriate columns.
func (m *JournalModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for title, help, and margins
	)

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

// Rows returns the rows of the current view.
func (m *JournalModel) Rows() []table.Row {
	if m.view == ViewFaults {
		rows := make([]table.Row, len(m.faults))
		for i, f := range m.faults {
			rows[i] = table.Row{f.CreatedAt.Format("Jan 02 15:04"), f.Unit, f.Message}
		}
		return rows
	}
	rows := make([]table.Row, len(m.reloads))
	for i, r := range m.reloads {
		rows[i] = table.Row{r.CreatedAt.Format("Jan 02 15:04"), r.Unit, r.Outcome, r.Error}
	}
	return rows
}

// updateTableRows updates the table with the current view.
func (m *JournalModel) updateTableRows() {
	// Columns must change before rows of a different width go in.
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.Rows())
	m.table.GotoTop()
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal screen.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			m.view = 1 - m.view
			m.updateTableRows()
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

// View renders the journal screen.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d reloads, %d faults)", m.view, len(m.reloads), len(m.faults))))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m JournalModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Cannot read the journal:\n" + m.err.Error())
	case len(m.table.Rows()) == 0 && m.view == ViewFaults:
		return emptyStyle.Render("No frame faults recorded.")
	case len(m.table.Rows()) == 0:
		return emptyStyle.Render("No reloads recorded yet.\nRun 'comfywars play' to load a unit.")
	}
	return m.table.View()
}

// RunJournal runs the journal screen.
func RunJournal(store *storage.Store, view JournalView, width, height int) error {
	p := tea.NewProgram(
		NewJournalModel(store, view, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
