package segment

import (
	"testing"

	"quizdoc/internal/question"
)

// TestSectionConfigs verifies each kind terminates on the other three.
func TestSectionConfigs(t *testing.T) {
	for kind, cfg := range sectionConfigs() {
		if cfg.kind != kind {
			t.Fatalf("expected config kind %q, got %q", kind, cfg.kind)
		}
		if cfg.terminators[kind] {
			t.Fatalf("%s must not terminate on its own header", kind)
		}
		if len(cfg.terminators) != 3 {
			t.Fatalf("%s: expected 3 terminators, got %d", kind, len(cfg.terminators))
		}
		if cfg.allowOptions != (kind == question.KindMultipleChoice) {
			t.Fatalf("%s: unexpected allowOptions %v", kind, cfg.allowOptions)
		}
	}
}

// TestParseSectionStopsAtOtherHeader verifies the terminator line is not consumed.
func TestParseSectionStopsAtOtherHeader(t *testing.T) {
	p := NewParser()
	lines := []string{"", "1. One", "Short Answer:", "2. Two"}
	res := p.parseSection(lines, 0, p.configs[question.KindTrueFalse])
	if res.next != 2 {
		t.Fatalf("expected resume index 2, got %d", res.next)
	}
	if len(res.questions) != 1 || res.questions[0].Number() != "1" {
		t.Fatalf("unexpected questions: %+v", res.questions)
	}
}

// TestParseSectionSkipsOwnHeader verifies a repeated own-kind header is prose.
func TestParseSectionSkipsOwnHeader(t *testing.T) {
	p := NewParser()
	lines := []string{"1. One", "True or False (continued)", "2. Two"}
	res := p.parseSection(lines, 0, p.configs[question.KindTrueFalse])
	if len(res.questions) != 2 || res.next != len(lines) {
		t.Fatalf("expected 2 questions to end of input, got %d next=%d", len(res.questions), res.next)
	}
	if res.skipped != 1 {
		t.Fatalf("expected 1 skipped line, got %d", res.skipped)
	}
}

// TestCollectOptionsSkipsBlanksWithoutCounting verifies blank lines do not use option slots.
func TestCollectOptionsSkipsBlanksWithoutCounting(t *testing.T) {
	p := NewParser()
	lines := []string{"a. 1", "", "b) 2", "", "", "C 3", "4. four", "d. extra"}
	options, next := p.collectOptions(lines, 0, 4)
	if len(options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(options))
	}
	if next != 7 {
		t.Fatalf("expected scan to stop after the fourth option, got %d", next)
	}
	want := []string{"a. 1", "b. 2", "C. 3", "4. four"}
	for i, opt := range options {
		if opt.Text() != want[i] {
			t.Fatalf("option %d: expected %q, got %q", i, want[i], opt.Text())
		}
	}
}

// TestCollectOptionsStopsOnNonOption verifies the non-matching line stays unconsumed.
func TestCollectOptionsStopsOnNonOption(t *testing.T) {
	p := NewParser()
	lines := []string{"a. 1", "Explain your answer", "b. 2"}
	options, next := p.collectOptions(lines, 0, 4)
	if len(options) != 1 || next != 1 {
		t.Fatalf("expected 1 option and resume at 1, got %d and %d", len(options), next)
	}
}
