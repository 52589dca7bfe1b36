package question

import (
	"errors"
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question set.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question set validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeSet trims whitespace, validates a decoded set record and builds the Set.
func NormalizeSet(rec setRecord) (Set, error) {
	collector := &issueCollector{}
	if rec.Version == 0 {
		collector.add("version", "is required")
	} else if rec.Version != SetVersion {
		collector.add("version", fmt.Sprintf("unsupported version %d", rec.Version))
	}

	questions := make([]Question, 0, len(rec.Questions))
	for i, qr := range rec.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		qr.Number = strings.TrimSpace(qr.Number)
		if qr.Number == "" {
			collector.add(prefix+".number", "is required")
		} else if !isDigits(qr.Number) {
			collector.add(prefix+".number", fmt.Sprintf("must be digits, got %q", qr.Number))
		}
		if stripLabel(qr.Text, qr.Number) == "" {
			collector.add(prefix+".text", "is required")
		}
		kind, err := ParseKind(string(qr.Type))
		if err != nil {
			collector.add(prefix+".type", fmt.Sprintf("unknown type %q", qr.Type))
		}
		qr.Type = kind
		if len(qr.Options) > 0 && kind.Valid() && !kind.AllowsOptions() {
			collector.add(prefix+".options", fmt.Sprintf("not allowed for %s questions", kind))
		}
		if len(qr.Options) > MaxOptions {
			collector.add(prefix+".options", fmt.Sprintf("at most %d entries, got %d", MaxOptions, len(qr.Options)))
		}
		for optionIndex, opt := range qr.Options {
			field := fmt.Sprintf("%s.options[%d]", prefix, optionIndex)
			label := NormalizeLabel(opt.Letter)
			if !ValidLabel(label) {
				collector.add(field+".letter", fmt.Sprintf("must be one of a-d or 1-4, got %q", opt.Letter))
			}
			if stripLabel(opt.Text, strings.TrimSpace(opt.Letter)) == "" {
				collector.add(field+".text", "is required")
			}
		}
		if len(collector.issues) > 0 {
			continue
		}
		q, err := qr.question()
		if err != nil {
			collector.add(prefix, err.Error())
			continue
		}
		questions = append(questions, q)
	}

	if err := collector.result(); err != nil {
		return Set{}, err
	}
	return NewSet(strings.TrimSpace(rec.Title), questions), nil
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
