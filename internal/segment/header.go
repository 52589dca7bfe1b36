package segment

import (
	"regexp"

	"quizdoc/internal/question"
)

type headerPattern struct {
	kind    question.Kind
	pattern *regexp.Regexp
}

// Headers are tested in canonical kind order; only the start of the line matters.
// \p{Zs} covers the no-break and thin spaces PDF text often carries.
func compileHeaders() []headerPattern {
	return []headerPattern{
		{kind: question.KindMultipleChoice, pattern: regexp.MustCompile(`(?i)^multiple[\s\p{Zs}]+choice`)},
		{kind: question.KindTrueFalse, pattern: regexp.MustCompile(`(?i)^true[\s\p{Zs}]+or[\s\p{Zs}]+false`)},
		{kind: question.KindShortAnswer, pattern: regexp.MustCompile(`(?i)^short[\s\p{Zs}]+answer`)},
		{kind: question.KindLongAnswer, pattern: regexp.MustCompile(`(?i)^long[\s\p{Zs}]+answer`)},
	}
}

// MatchHeader reports the section kind a trimmed line introduces, if any.
func (p *Parser) MatchHeader(line string) (question.Kind, bool) {
	for _, h := range p.headers {
		if h.pattern.MatchString(line) {
			return h.kind, true
		}
	}
	return "", false
}

// MatchHeader reports the section kind a trimmed line introduces using the default parser.
func MatchHeader(line string) (question.Kind, bool) {
	return defaultParser.MatchHeader(line)
}
