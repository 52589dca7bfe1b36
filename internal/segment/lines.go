package segment

import (
	"regexp"
	"strings"
)

var lineBreakRun = regexp.MustCompile(`[\r\n]+`)

// NormalizeLines collapses every run of line breaks into one and trims each line.
// Lines that are blank after trimming stay in the result as "" so indices line up
// with what the section engine walks. Empty input yields a single blank line.
func NormalizeLines(text string) []string {
	text = lineBreakRun.ReplaceAllString(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
