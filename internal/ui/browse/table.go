package browse

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quizdoc/internal/question"
)

func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle().Reverse(true)
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth gives the prompt column whatever the fixed columns leave.
func columnsForWidth(width int) []table.Column {
	prompt := max(width-4-14-6-8-8, 20)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Kind", Width: 14},
		{Title: "No.", Width: 6},
		{Title: "Question", Width: prompt},
		{Title: "Options", Width: 8},
	}
}

func rowsFor(questions []question.Question) []table.Row {
	rows := make([]table.Row, 0, len(questions))
	for i, q := range questions {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			q.Kind().Label(),
			q.Number(),
			formatPrompt(q.Body()),
			strconv.Itoa(q.OptionCount()),
		})
	}
	return rows
}

func formatPrompt(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	const limit = 80
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}
