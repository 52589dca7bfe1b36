package segment

import (
	"strings"

	"quizdoc/internal/question"
)

// sectionConfig parameterizes the one section engine for a question kind.
type sectionConfig struct {
	kind         question.Kind
	allowOptions bool
	maxOptions   int
	terminators  map[question.Kind]bool
}

func newSectionConfig(kind question.Kind) sectionConfig {
	cfg := sectionConfig{kind: kind, terminators: map[question.Kind]bool{}}
	if kind.AllowsOptions() {
		cfg.allowOptions = true
		cfg.maxOptions = question.MaxOptions
	}
	for _, other := range question.Kinds() {
		if other != kind {
			cfg.terminators[other] = true
		}
	}
	return cfg
}

func sectionConfigs() map[question.Kind]sectionConfig {
	configs := make(map[question.Kind]sectionConfig, len(question.Kinds()))
	for _, kind := range question.Kinds() {
		configs[kind] = newSectionConfig(kind)
	}
	return configs
}

// sectionResult is what one section run hands back to the dispatcher.
type sectionResult struct {
	questions []question.Question
	next      int
	skipped   int
	options   int
}

// parseSection consumes lines from start until end of input or until a header of
// a terminator kind, which is left unconsumed at the returned index.
func (p *Parser) parseSection(lines []string, start int, cfg sectionConfig) sectionResult {
	res := sectionResult{questions: []question.Question{}}
	i := start
	if i < len(lines) && lines[i] == "" {
		i++
	}
	for i < len(lines) {
		line := lines[i]
		if line == "" {
			i++
			continue
		}
		if kind, ok := p.MatchHeader(line); ok && cfg.terminators[kind] {
			break
		}
		match := p.questionLine.FindStringSubmatch(line)
		if match == nil {
			res.skipped++
			i++
			continue
		}
		number, body := match[1], strings.TrimSpace(match[2])
		i++

		var options []question.Option
		if cfg.allowOptions {
			options, i = p.collectOptions(lines, i, cfg.maxOptions)
		}
		q, err := question.New(cfg.kind, number, body, options...)
		if err != nil {
			// Unreachable with the built-in configs.
			res.skipped++
			continue
		}
		res.options += len(options)
		res.questions = append(res.questions, q)
	}
	res.next = i
	return res
}

// collectOptions reads up to limit option lines starting at i. Blank lines are
// skipped and not counted; the first non-option line ends the scan unconsumed.
func (p *Parser) collectOptions(lines []string, i, limit int) ([]question.Option, int) {
	options := make([]question.Option, 0, limit)
	for i < len(lines) && len(options) < limit {
		line := lines[i]
		if line == "" {
			i++
			continue
		}
		match := p.optionLine.FindStringSubmatch(line)
		if match == nil {
			break
		}
		options = append(options, question.NewOption(match[1], strings.TrimSpace(match[2])))
		i++
	}
	return options, i
}
