package segment

import "quizdoc/internal/question"

// SectionSpan describes one section invocation: the header that opened it and
// the line range its engine consumed.
type SectionSpan struct {
	Kind       question.Kind       `json:"kind"`
	Header     string              `json:"header"`
	HeaderLine int                 `json:"header_line"`
	Start      int                 `json:"start"`
	End        int                 `json:"end"`
	Count      int                 `json:"count"`
	Questions  []question.Question `json:"-"`
}

type dispatchResult struct {
	questions []question.Question
	sections  []SectionSpan
	skipped   int
	options   int
}

// dispatch scans lines from index from to the end, running the section engine
// for every header it meets. Same-kind sections concatenate in encounter order.
func (p *Parser) dispatch(lines []string, from int) dispatchResult {
	out := dispatchResult{questions: []question.Question{}, sections: []SectionSpan{}}
	i := from
	for i < len(lines) {
		line := lines[i]
		if line == "" {
			i++
			continue
		}
		kind, ok := p.MatchHeader(line)
		if !ok {
			out.skipped++
			i++
			continue
		}
		section := p.parseSection(lines, i+1, p.configs[kind])
		out.sections = append(out.sections, SectionSpan{
			Kind:       kind,
			Header:     line,
			HeaderLine: i,
			Start:      i + 1,
			End:        section.next,
			Count:      len(section.questions),
			Questions:  section.questions,
		})
		out.questions = append(out.questions, section.questions...)
		out.skipped += section.skipped
		out.options += section.options
		i = section.next
	}
	return out
}
