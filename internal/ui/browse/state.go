package browse

import "quizdoc/internal/question"

// State is the browsable question list with its kind filter.
type State struct {
	Title     string
	Source    string
	Questions []question.Question
	// filter indexes into filters; 0 shows every kind.
	filter int
}

var filters = append([]question.Kind{""}, question.Kinds()...)

// Filter returns the active kind filter, empty for all kinds.
func (s State) Filter() question.Kind {
	return filters[s.filter]
}

// NextFilter cycles to the next kind filter.
func (s State) NextFilter() State {
	s.filter = (s.filter + 1) % len(filters)
	return s
}

// Visible returns the questions matching the filter.
func (s State) Visible() []question.Question {
	kind := s.Filter()
	if kind == "" {
		return s.Questions
	}
	out := []question.Question{}
	for _, q := range s.Questions {
		if q.Kind() == kind {
			out = append(out, q)
		}
	}
	return out
}
