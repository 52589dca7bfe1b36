package question

import (
	"errors"
	"testing"
)

// TestNewBuildsPromptAndOptionText verifies label joining on both records.
func TestNewBuildsPromptAndOptionText(t *testing.T) {
	q, err := New(KindMultipleChoice, "1", "What is 2+2?", NewOption("a", "3"), NewOption("b", "4"))
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	if q.Prompt() != "1. What is 2+2?" {
		t.Fatalf("expected prompt %q, got %q", "1. What is 2+2?", q.Prompt())
	}
	if q.Body() != "What is 2+2?" || q.Number() != "1" {
		t.Fatalf("unexpected number/body: %q %q", q.Number(), q.Body())
	}
	opts := q.Options()
	if len(opts) != 2 || opts[1].Text() != "b. 4" || opts[1].Body() != "4" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

// TestNewRejectsInvalidShapes verifies the option rules per kind.
func TestNewRejectsInvalidShapes(t *testing.T) {
	cases := []struct {
		name    string
		kind    Kind
		options []Option
		want    error
	}{
		{name: "bad kind", kind: Kind("essay"), want: ErrInvalidKind},
		{name: "options on true/false", kind: KindTrueFalse, options: []Option{NewOption("a", "x")}, want: ErrOptionsNotAllowed},
		{name: "five options", kind: KindMultipleChoice, options: []Option{
			NewOption("a", "1"), NewOption("b", "2"), NewOption("c", "3"), NewOption("d", "4"), NewOption("1", "5"),
		}, want: ErrTooManyOptions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.kind, "1", "body", tc.options...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

// TestOptionsAreCopied verifies callers cannot mutate a question through slices.
func TestOptionsAreCopied(t *testing.T) {
	input := []Option{NewOption("a", "one")}
	q, err := New(KindMultipleChoice, "1", "Q", input...)
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	input[0] = NewOption("z", "changed")
	out := q.Options()
	out[0] = NewOption("y", "changed")
	if q.Options()[0].Label() != "a" {
		t.Fatalf("expected question to keep its own options, got %+v", q.Options())
	}
}

// TestNonMultipleChoiceHasEmptyOptions verifies the empty slice is non-nil.
func TestNonMultipleChoiceHasEmptyOptions(t *testing.T) {
	q, err := New(KindShortAnswer, "4", "Define entropy.")
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	if q.Options() == nil || len(q.Options()) != 0 {
		t.Fatalf("expected empty non-nil options, got %#v", q.Options())
	}
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" True_False ")
	if err != nil || kind != KindTrueFalse {
		t.Fatalf("expected true_false, got %q (%v)", kind, err)
	}
	if _, err := ParseKind("essay"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestCountByKindIncludesEveryKind(t *testing.T) {
	q, _ := New(KindLongAnswer, "1", "Essay")
	counts := CountByKind([]Question{q, q})
	if len(counts) != len(Kinds()) {
		t.Fatalf("expected %d kinds, got %d", len(Kinds()), len(counts))
	}
	if counts[KindLongAnswer] != 2 || counts[KindMultipleChoice] != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	groups := GroupByKind([]Question{q})
	if len(groups[KindLongAnswer]) != 1 {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}
