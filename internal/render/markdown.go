package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// markdownEscaper neutralises inline markup, links, raw HTML and ATX headings.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`",
	`[`, `\[`, `]`, `\]`, `<`, `\<`, `>`, `\>`, `#`, `\#`,
)

func writeMarkdown(w io.Writer, doc Document) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "# %s\n", escapeMarkdown(doc.title()))
	for _, group := range doc.Groups() {
		fmt.Fprintf(out, "\n## %s\n", escapeMarkdown(group.Heading))
		for _, q := range group.Questions {
			fmt.Fprintf(out, "\n**%s**\n", escapeMarkdown(q.Prompt()))
			if q.OptionCount() > 0 {
				out.WriteString("\n")
			}
			for _, opt := range q.Options() {
				fmt.Fprintf(out, "- %s\n", escapeMarkdown(opt.Text()))
			}
		}
	}
	return out.Flush()
}

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}
