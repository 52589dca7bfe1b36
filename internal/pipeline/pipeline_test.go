package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"quizdoc/internal/archive"
	"quizdoc/internal/logging"
	"quizdoc/internal/question"
)

const quizText = `Weekly quiz covering the first chapter of the course material.

Multiple Choice Questions:
1. What is 1+2?
a. 3
b. 4
c. 5
d. 6

True or False:
5. The sky is blue.
`

type recordingSink struct {
	mu   sync.Mutex
	runs []archive.RunInput
	err  error
}

func (s *recordingSink) SaveRun(_ context.Context, in archive.RunInput) (archive.RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return archive.RunSummary{}, s.err
	}
	s.runs = append(s.runs, in)
	return archive.RunSummary{ID: "run-" + in.Source, QuestionCount: len(in.Questions)}, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(logging.NewHandler(buf, logging.Options{NoColor: true}))
}

// TestProcessParsesExtractedText verifies the end-to-end flow for a text file.
func TestProcessParsesExtractedText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "quiz.txt", quizText)
	var logs bytes.Buffer
	p := New(Config{Logger: quietLogger(&logs)})

	out, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if out.Extraction.Strategy != "plain" {
		t.Fatalf("expected plain strategy, got %q", out.Extraction.Strategy)
	}
	if len(out.Questions()) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(out.Questions()))
	}
	if out.Run != nil {
		t.Fatalf("expected no archive run without a sink")
	}
	if !strings.Contains(logs.String(), "[INFO] parsed document") || !strings.Contains(logs.String(), "mcq=1") {
		t.Fatalf("expected summary log line, got %q", logs.String())
	}
}

// TestProcessShortFileYieldsNoQuestions verifies the extraction failure path.
func TestProcessShortFileYieldsNoQuestions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "short.txt", "Multiple Choice\n1. Hi")
	var logs bytes.Buffer
	out, err := New(Config{Logger: quietLogger(&logs)}).Process(context.Background(), path)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !out.Extraction.Failed {
		t.Fatalf("expected failed extraction")
	}
	if len(out.Questions()) != 0 {
		t.Fatalf("expected no questions, got %d", len(out.Questions()))
	}
	if !strings.Contains(logs.String(), "[WARN] text extraction failed") {
		t.Fatalf("expected warning, got %q", logs.String())
	}
}

// TestProcessTextArchives verifies the sink receives the parsed questions.
func TestProcessTextArchives(t *testing.T) {
	sink := &recordingSink{}
	var logs bytes.Buffer
	p := New(Config{Archive: sink, Logger: quietLogger(&logs), Title: "Week 1"})

	out, err := p.ProcessText(context.Background(), "pasted", quizText)
	if err != nil {
		t.Fatalf("process text: %v", err)
	}
	if out.Run == nil || out.Run.ID != "run-pasted" {
		t.Fatalf("expected archived run, got %+v", out.Run)
	}
	if len(sink.runs) != 1 || sink.runs[0].Title != "Week 1" || len(sink.runs[0].Questions) != 2 {
		t.Fatalf("unexpected sink input: %+v", sink.runs)
	}
}

func TestProcessTextArchiveError(t *testing.T) {
	sink := &recordingSink{err: errors.New("disk full")}
	var logs bytes.Buffer
	out, err := New(Config{Archive: sink, Logger: quietLogger(&logs)}).ProcessText(context.Background(), "x", quizText)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected archive error, got %v", err)
	}
	if len(out.Questions()) != 2 {
		t.Fatalf("expected parse result to survive archive error")
	}
}

// TestProcessAllKeepsOrder verifies batch outcomes follow the input order.
func TestProcessAllKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.txt", quizText),
		filepath.Join(dir, "missing.txt"),
		writeFile(t, dir, "c.txt", strings.Replace(quizText, "True or False:\n5. The sky is blue.\n", "", 1)),
	}
	var logs bytes.Buffer
	outcomes, err := New(Config{Logger: quietLogger(&logs)}).ProcessAll(context.Background(), paths, 2)
	if err != nil {
		t.Fatalf("process all: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	for i, out := range outcomes {
		if out.Source != paths[i] {
			t.Fatalf("expected outcome %d for %s, got %s", i, paths[i], out.Source)
		}
	}
	if len(outcomes[0].Questions()) != 2 {
		t.Fatalf("expected 2 questions in a.txt, got %d", len(outcomes[0].Questions()))
	}
	if !outcomes[1].Extraction.Failed {
		t.Fatalf("expected missing file to fail extraction")
	}
	if got := question.CountByKind(outcomes[2].Questions()); got[question.KindMultipleChoice] != 1 || got[question.KindTrueFalse] != 0 {
		t.Fatalf("unexpected counts for c.txt: %v", got)
	}
}

func TestProcessAllCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", quizText)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var logs bytes.Buffer
	if _, err := New(Config{Logger: quietLogger(&logs)}).ProcessAll(ctx, []string{path}, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
