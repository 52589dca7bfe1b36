package extract

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cleanText folds compatibility characters (ligatures, full-width digits),
// unifies line endings and strips trailing spaces. Line structure is kept.
func cleanText(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\f\v")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
