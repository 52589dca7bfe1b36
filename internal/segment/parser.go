// Package segment finds quiz section headers in extracted document text and
// turns each section body into ordered question records.
package segment

import (
	"fmt"
	"io"
	"regexp"

	"quizdoc/internal/question"
)

// Parser holds the precompiled patterns. It keeps no state between calls and is
// safe for concurrent use.
type Parser struct {
	headers      []headerPattern
	questionLine *regexp.Regexp
	optionLine   *regexp.Regexp
	configs      map[question.Kind]sectionConfig
}

// NewParser creates a parser with the question, option and header patterns compiled.
func NewParser() *Parser {
	return &Parser{
		headers:      compileHeaders(),
		questionLine: regexp.MustCompile(`^(\d+)[.)\s\p{Zs}]+(.+)$`),
		optionLine:   regexp.MustCompile(`(?i)^([a-d1-4])[.)\s\p{Zs}]+(.+)$`),
		configs:      sectionConfigs(),
	}
}

var defaultParser = NewParser()

// Stats are per-parse counters reported alongside the questions.
type Stats struct {
	Lines            int                   `json:"lines"`
	SectionsByKind   map[question.Kind]int `json:"sections_by_kind"`
	QuestionsByKind  map[question.Kind]int `json:"questions_by_kind"`
	OptionsCollected int                   `json:"options_collected"`
	SkippedLines     int                   `json:"skipped_lines"`
}

// Result is the outcome of parsing one text.
type Result struct {
	Questions []question.Question `json:"questions"`
	Sections  []SectionSpan       `json:"sections"`
	Stats     Stats               `json:"stats"`
}

// Total returns the number of questions across all sections.
func (r Result) Total() int { return len(r.Questions) }

// ByKind returns the questions of one kind in encounter order.
func (r Result) ByKind(kind question.Kind) []question.Question {
	out := []question.Question{}
	for _, q := range r.Questions {
		if q.Kind() == kind {
			out = append(out, q)
		}
	}
	return out
}

// Parse segments text into questions. Unrecognized lines are skipped; text with no
// headers yields an empty, non-nil question list.
func (p *Parser) Parse(text string) Result {
	lines := NormalizeLines(text)
	found := p.dispatch(lines, 0)

	stats := Stats{
		Lines:            len(lines),
		SectionsByKind:   make(map[question.Kind]int, len(p.configs)),
		QuestionsByKind:  question.CountByKind(found.questions),
		OptionsCollected: found.options,
		SkippedLines:     found.skipped,
	}
	for _, kind := range question.Kinds() {
		stats.SectionsByKind[kind] = 0
	}
	for _, span := range found.sections {
		stats.SectionsByKind[span.Kind]++
	}
	return Result{Questions: found.questions, Sections: found.sections, Stats: stats}
}

// ParseReader reads all of r and parses it.
func (p *Parser) ParseReader(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read text: %w", err)
	}
	return p.Parse(string(data)), nil
}

// Parse segments text with the default parser.
func Parse(text string) Result {
	return defaultParser.Parse(text)
}
