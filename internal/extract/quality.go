package extract

import (
	"strings"
	"unicode"
)

// Quality captures heuristics about accepted text.
type Quality struct {
	PrintableRatio float64 `json:"printable_ratio"`
	WordlikeRatio  float64 `json:"wordlike_ratio"`
	Lines          int     `json:"lines"`
}

// Garbled reports whether the text looks like undecoded font bytes.
func (q Quality) Garbled() bool {
	return q.PrintableRatio < 0.85 || (q.Lines > 0 && q.WordlikeRatio < 0.3)
}

func measureQuality(text string) Quality {
	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}
	return Quality{
		PrintableRatio: printableRatio(text),
		WordlikeRatio:  wordlikeRatio(text),
		Lines:          lines,
	}
}

// printableRatio excludes the private use area, U+FFFD and control characters
// other than line whitespace.
func printableRatio(text string) float64 {
	total := 0
	printable := 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			printable++
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	if r == 0xFFFD {
		return true
	}
	return r < 0x0020 && r != '\n' && r != '\t'
}

// wordlikeRatio is the share of tokens between 1 and 20 runes that contain a letter or digit.
func wordlikeRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	wordlike := 0
	for _, f := range fields {
		n := len([]rune(f))
		if n < 1 || n > 20 {
			continue
		}
		if strings.IndexFunc(f, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0 {
			wordlike++
		}
	}
	return float64(wordlike) / float64(len(fields))
}
