// Package browse is an interactive terminal view of parsed questions.
package browse

import (
	"io"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizdoc/internal/question"
)

// Model renders the question browser using Bubble Tea.
type Model struct {
	state   State
	table   table.Model
	noColor bool
}

// Options configures the browser.
type Options struct {
	Title   string
	Source  string
	NoColor bool
}

// NewModel constructs a browser over questions.
func NewModel(questions []question.Question, opts Options) Model {
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows(rowsFor(questions)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	title := opts.Title
	if title == "" {
		title = question.DefaultTitle
	}
	return Model{
		state:   State{Title: title, Source: opts.Source, Questions: questions},
		table:   t,
		noColor: opts.NoColor,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keys and resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-10, 3))
		m.table.SetColumns(columnsForWidth(typed.Width))
		return m, nil
	case tea.KeyMsg:
		switch typed.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.state = m.state.NextFilter()
			m.table.SetRows(rowsFor(m.state.Visible()))
			m.table.SetCursor(0)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the highlighted question, or nil when the view is empty.
func (m Model) Selected() *question.Question {
	visible := m.state.Visible()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(visible) {
		return nil
	}
	q := visible[cursor]
	return &q
}

// State returns the current browser state.
func (m Model) State() State {
	return m.state
}

// View renders the browser.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.noColor),
		renderSummary(m.state, m.noColor),
		m.table.View(),
		renderDetail(m.Selected(), m.noColor),
		renderFooter(m.noColor),
	)
}

// Run starts the browser on the given terminal streams.
func Run(questions []question.Question, opts Options, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(NewModel(questions, opts), tea.WithInput(in), tea.WithOutput(out), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
