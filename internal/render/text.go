package render

import (
	"bufio"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// The grouped listing printed after parsing.
func writeText(w io.Writer, doc Document) error {
	out := bufio.NewWriter(w)
	out.WriteString(stylize(doc.title(), doc.NoColor, titleStyle) + "\n")
	for _, group := range doc.Groups() {
		out.WriteString("\n" + stylize(group.Heading, doc.NoColor, headingStyle) + "\n")
		for i, q := range group.Questions {
			out.WriteString(stylize("Question "+strconv.Itoa(i+1)+": ", doc.NoColor, labelStyle) + q.Prompt() + "\n")
			if q.OptionCount() == 0 {
				continue
			}
			out.WriteString("  Options:\n")
			for _, opt := range q.Options() {
				out.WriteString("    - " + stylize(opt.Text(), doc.NoColor, optionStyle) + "\n")
			}
		}
	}
	return out.Flush()
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// stylize applies optional styling.
func stylize(text string, noColor bool, style lipgloss.Style) string {
	if noColor {
		return text
	}
	return style.Render(text)
}
