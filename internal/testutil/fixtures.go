package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizdoc/internal/question"
)

// MultipleChoice builds a multiple-choice question; each option is written
// "label. body", as in a source document.
func MultipleChoice(t testing.TB, number, body string, options ...string) question.Question {
	t.Helper()
	opts := make([]question.Option, 0, len(options))
	for _, raw := range options {
		label, text, ok := strings.Cut(raw, ".")
		if !ok {
			t.Fatalf("option %q has no label", raw)
		}
		opts = append(opts, question.NewOption(strings.TrimSpace(label), strings.TrimSpace(text)))
	}
	return mustQuestion(t, question.KindMultipleChoice, number, body, opts...)
}

// Plain builds a question of a kind without options.
func Plain(t testing.TB, kind question.Kind, number, body string) question.Question {
	t.Helper()
	return mustQuestion(t, kind, number, body)
}

func mustQuestion(t testing.TB, kind question.Kind, number, body string, opts ...question.Option) question.Question {
	t.Helper()
	q, err := question.New(kind, number, body, opts...)
	if err != nil {
		t.Fatalf("build question: %v", err)
	}
	return q
}

// WriteFile writes content under a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
