package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// TestHandlerFormatsRecords verifies the plain line layout.
func TestHandlerFormatsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, Options{}))
	logger.Info("parsed document", "path", "exam one.pdf", "questions", 12, "took", 1500*time.Microsecond)
	want := "[INFO] parsed document path=\"exam one.pdf\" questions=12 took=2ms\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false, true).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}
	New(&buf, true, true).Debug("shown")
	if !strings.HasPrefix(buf.String(), "[DEBUG] shown") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

// TestHandlerAttrsAndGroups verifies logger attributes and group prefixes.
func TestHandlerAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, Options{})).With("component", "batch").WithGroup("doc")
	logger.Warn("extraction failed", "strategy", "pdf-content", slog.Group("quality", "lines", 0), "err", errors.New("bad xref"))
	want := "[WARN] extraction failed component=batch doc.strategy=pdf-content doc.quality.lines=0 doc.err=\"bad xref\"\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestHandlerGroupThenAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, Options{})).WithGroup("doc").With("a", 1).WithGroup("page").With("n", 2)
	logger.Info("scanned", "chars", 40)
	want := "[INFO] scanned doc.a=1 doc.page.n=2 doc.page.chars=40\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

// TestShouldUseStylingNonTerminal verifies buffers never get ANSI codes.
func TestShouldUseStylingNonTerminal(t *testing.T) {
	if ShouldUseStyling(&bytes.Buffer{}) {
		t.Fatalf("expected no styling for a buffer")
	}
	t.Setenv("NO_COLOR", "1")
	if ShouldUseStyling(nil) {
		t.Fatalf("expected no styling for nil writer")
	}
}
