package browse

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizdoc/internal/question"
)

func renderHeader(state State, noColor bool) string {
	line := state.Title
	if state.Source != "" {
		line += " | " + state.Source
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

func renderSummary(state State, noColor bool) string {
	counts := question.CountByKind(state.Questions)
	parts := make([]string, 0, len(counts)+1)
	for _, kind := range question.Kinds() {
		parts = append(parts, kind.Label()+": "+strconv.Itoa(counts[kind]))
	}
	filter := "all"
	if kind := state.Filter(); kind != "" {
		filter = kind.Label()
	}
	parts = append(parts, "Filter: "+filter)
	return stylize(strings.Join(parts, "  "), noColor, lipgloss.Color("242"))
}

func renderDetail(q *question.Question, noColor bool) string {
	if q == nil {
		return stylize("No questions", noColor, lipgloss.Color("244"))
	}
	lines := []string{stylize(q.Prompt(), noColor, lipgloss.Color("252"))}
	for _, opt := range q.Options() {
		lines = append(lines, "  "+opt.Text())
	}
	return strings.Join(lines, "\n")
}

func renderFooter(noColor bool) string {
	return stylize("tab: filter  up/down: move  q: quit", noColor, lipgloss.Color("240"))
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
