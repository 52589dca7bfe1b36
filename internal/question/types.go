package question

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the section a question was found in.
type Kind string

const (
	KindMultipleChoice Kind = "mcq"
	KindTrueFalse      Kind = "true_false"
	KindShortAnswer    Kind = "short_answer"
	KindLongAnswer     Kind = "long_answer"
)

// MaxOptions is the largest number of options a multiple-choice question carries.
const MaxOptions = 4

var (
	// ErrInvalidKind reports a kind outside the four supported ones.
	ErrInvalidKind = errors.New("invalid question kind")
	// ErrOptionsNotAllowed reports options attached to a non multiple-choice question.
	ErrOptionsNotAllowed = errors.New("options are only allowed on multiple-choice questions")
	// ErrTooManyOptions reports more than MaxOptions options.
	ErrTooManyOptions = errors.New("too many options")
)

var kindOrder = []Kind{KindMultipleChoice, KindTrueFalse, KindShortAnswer, KindLongAnswer}

// Kinds returns every kind in canonical rendering order.
func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMultipleChoice, KindTrueFalse, KindShortAnswer, KindLongAnswer:
		return true
	default:
		return false
	}
}

// AllowsOptions reports whether questions of this kind may carry options.
func (k Kind) AllowsOptions() bool {
	return k == KindMultipleChoice
}

// Heading returns the section heading used when the kind is rendered.
func (k Kind) Heading() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple Choice Questions:"
	case KindTrueFalse:
		return "True or False:"
	case KindShortAnswer:
		return "Short Answer Questions:"
	case KindLongAnswer:
		return "Long Answer Questions:"
	default:
		return string(k)
	}
}

// Label returns a short human label for listings.
func (k Kind) Label() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple Choice"
	case KindTrueFalse:
		return "True or False"
	case KindShortAnswer:
		return "Short Answer"
	case KindLongAnswer:
		return "Long Answer"
	default:
		return string(k)
	}
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, value)
	}
	return kind, nil
}

// Option is a single labelled answer choice of a multiple-choice question.
type Option struct {
	label string
	body  string
}

// NewOption builds an option from its label token and body text.
func NewOption(label, body string) Option {
	return Option{label: label, body: body}
}

// Label returns the label token as written (a-d or 1-4).
func (o Option) Label() string { return o.label }

// Body returns the option text without its label.
func (o Option) Body() string { return o.body }

// Text returns the label and body joined for display.
func (o Option) Text() string { return o.label + ". " + o.body }

// Question is one parsed question. The zero value is not a valid question; use New.
type Question struct {
	number  string
	body    string
	kind    Kind
	options []Option
}

// New builds a question, enforcing the option rules of its kind.
func New(kind Kind, number, body string, options ...Option) (Question, error) {
	if !kind.Valid() {
		return Question{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if len(options) > 0 && !kind.AllowsOptions() {
		return Question{}, fmt.Errorf("%s question %s: %w", kind, number, ErrOptionsNotAllowed)
	}
	if len(options) > MaxOptions {
		return Question{}, fmt.Errorf("question %s has %d options (max %d): %w", number, len(options), MaxOptions, ErrTooManyOptions)
	}
	owned := make([]Option, len(options))
	copy(owned, options)
	return Question{number: number, body: body, kind: kind, options: owned}, nil
}

// Number returns the numeric label captured from the source text.
func (q Question) Number() string { return q.number }

// Body returns the question text without its number.
func (q Question) Body() string { return q.body }

// Prompt returns the number and body joined for display.
func (q Question) Prompt() string { return q.number + ". " + q.body }

// Kind returns the section kind of the question.
func (q Question) Kind() Kind { return q.kind }

// Options returns a copy of the options. It is never nil.
func (q Question) Options() []Option {
	out := make([]Option, len(q.options))
	copy(out, q.options)
	return out
}

// OptionCount returns the number of options without copying them.
func (q Question) OptionCount() int { return len(q.options) }

// GroupByKind buckets questions by kind, preserving order inside each bucket.
func GroupByKind(questions []Question) map[Kind][]Question {
	groups := make(map[Kind][]Question, len(kindOrder))
	for _, q := range questions {
		groups[q.kind] = append(groups[q.kind], q)
	}
	return groups
}

// CountByKind returns the number of questions of each kind. Every kind is present.
func CountByKind(questions []Question) map[Kind]int {
	counts := make(map[Kind]int, len(kindOrder))
	for _, kind := range kindOrder {
		counts[kind] = 0
	}
	for _, q := range questions {
		counts[q.kind]++
	}
	return counts
}
