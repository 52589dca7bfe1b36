package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizdoc/internal/question"
)

func sampleDocument(t *testing.T) Document {
	t.Helper()
	mcq, err := question.New(question.KindMultipleChoice, "1", "What is 2+2?",
		question.NewOption("a", "3"), question.NewOption("b", "4"))
	if err != nil {
		t.Fatalf("new mcq: %v", err)
	}
	long, err := question.New(question.KindLongAnswer, "3", "Discuss <b>HTML</b> & escaping.")
	if err != nil {
		t.Fatalf("new long: %v", err)
	}
	tf, err := question.New(question.KindTrueFalse, "2", "The sky is blue.")
	if err != nil {
		t.Fatalf("new tf: %v", err)
	}
	return Document{Questions: []question.Question{long, mcq, tf}, NoColor: true}
}

func TestParseFormat(t *testing.T) {
	for value, want := range map[string]Format{"PDF": FormatPDF, "md": FormatMarkdown, "htm": FormatHTML, "txt": FormatText, "json": FormatJSON} {
		got, err := ParseFormat(value)
		if err != nil || got != want {
			t.Fatalf("%s: expected %s, got %s (%v)", value, want, got, err)
		}
	}
	if _, err := ParseFormat("docx"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := FormatFromPath("out"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat for missing extension, got %v", err)
	}
}

// TestGroupsCanonicalOrder verifies grouping skips empty kinds and keeps order.
func TestGroupsCanonicalOrder(t *testing.T) {
	groups := sampleDocument(t).Groups()
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	kinds := []question.Kind{groups[0].Kind, groups[1].Kind, groups[2].Kind}
	want := []question.Kind{question.KindMultipleChoice, question.KindTrueFalse, question.KindLongAnswer}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, kinds)
		}
	}
}

// TestWriteText verifies the grouped listing layout.
func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, sampleDocument(t)); err != nil {
		t.Fatalf("write text: %v", err)
	}
	want := `Questionnaire

Multiple Choice Questions:
Question 1: 1. What is 2+2?
  Options:
    - a. 3
    - b. 4

True or False:
Question 1: 2. The sky is blue.

Long Answer Questions:
Question 1: 3. Discuss <b>HTML</b> & escaping.
`
	if buf.String() != want {
		t.Fatalf("unexpected text output:\n%s", buf.String())
	}
}

func TestWriteMarkdownEscapesMarkup(t *testing.T) {
	q, err := question.New(question.KindShortAnswer, "4", "Why is [x](y) not #1 <b>?")
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, FormatMarkdown, Document{Title: "# Week [2]", Questions: []question.Question{q}}); err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# \\# Week \\[2\\]\n") {
		t.Fatalf("expected escaped title, got %q", out)
	}
	if !strings.Contains(out, "**4. Why is \\[x\\](y) not \\#1 \\<b\\>?**") {
		t.Fatalf("expected escaped prompt, got %q", out)
	}
}

// TestWriteMarkdown verifies headings and option bullets.
func TestWriteMarkdown(t *testing.T) {
	doc := sampleDocument(t)
	doc.Title = "Unit_1"
	var buf bytes.Buffer
	if err := Write(&buf, FormatMarkdown, doc); err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"# Unit\\_1\n", "## Multiple Choice Questions:\n", "**1. What is 2+2?**\n", "- b. 4\n", "## Long Answer Questions:\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in markdown:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Short Answer") {
		t.Fatalf("expected empty kinds to be skipped")
	}
}

// TestWriteHTMLEscapes verifies question text is escaped.
func TestWriteHTMLEscapes(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatHTML, sampleDocument(t)); err != nil {
		t.Fatalf("write html: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<b>HTML</b>") {
		t.Fatalf("expected prompt markup to be escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;HTML&lt;/b&gt; &amp; escaping.") {
		t.Fatalf("expected escaped prompt in html:\n%s", out)
	}
	if !strings.Contains(out, "<li>a. 3</li><li>b. 4</li>") {
		t.Fatalf("expected option list in html:\n%s", out)
	}
	if !strings.Contains(out, "<title>Questionnaire</title>") {
		t.Fatalf("expected default title in html")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleDocument(t)); err != nil {
		t.Fatalf("write json: %v", err)
	}
	set, err := question.ParseSet(buf.Bytes(), "quiz.json")
	if err != nil {
		t.Fatalf("reload json: %v", err)
	}
	if set.Title != "Questionnaire" || len(set.Questions) != 3 {
		t.Fatalf("unexpected set: %+v", set)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("rtf"), Document{}); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

// TestWriteFileDetectsFormat verifies extension detection and directory creation.
func TestWriteFileDetectsFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quiz.md")
	if err := WriteFile(path, "", sampleDocument(t)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Questionnaire") {
		t.Fatalf("expected markdown output, got %q", data)
	}
}

// TestLayoutPDF verifies line order, indentation and page breaks.
func TestLayoutPDF(t *testing.T) {
	pages := layoutPDF(sampleDocument(t))
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	lines := pages[0].Lines
	if lines[0].Text != "Questionnaire" || lines[0].Size != 18 {
		t.Fatalf("expected title first, got %+v", lines[0])
	}
	if lines[1].Text != "Multiple Choice Questions:" {
		t.Fatalf("expected mcq heading, got %q", lines[1].Text)
	}
	if lines[3].Text != "a. 3" || lines[3].X != pageMargin+20 {
		t.Fatalf("expected indented option, got %+v", lines[3])
	}
	for i := 1; i < len(lines); i++ {
		if lines[i].Y >= lines[i-1].Y {
			t.Fatalf("expected lines to move down the page at %d", i)
		}
	}

	var many []question.Question
	for i := 0; i < 80; i++ {
		q, _ := question.New(question.KindShortAnswer, "1", "Define a term.")
		many = append(many, q)
	}
	pages = layoutPDF(Document{Questions: many})
	if len(pages) < 2 {
		t.Fatalf("expected page breaks for 80 questions, got %d pages", len(pages))
	}
	for _, page := range pages {
		for _, line := range page.Lines {
			if line.Y < pageMargin {
				t.Fatalf("line below bottom margin: %+v", line)
			}
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 30, 10)
	if strings.Join(lines, "|") != "one|two|three|four" {
		t.Fatalf("unexpected wrap: %q", lines)
	}
	lines = wrapText("abcdefghij", 30, 10)
	if strings.Join(lines, "|") != "abcdef|ghij" {
		t.Fatalf("unexpected split: %q", lines)
	}
}

// TestPDFJSON verifies the pdfcpu page description.
func TestPDFJSON(t *testing.T) {
	data, err := pdfJSON(layoutPDF(sampleDocument(t)))
	if err != nil {
		t.Fatalf("pdf json: %v", err)
	}
	var spec pdfSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatalf("decode pdf json: %v", err)
	}
	page, ok := spec.Pages["1"]
	if !ok || spec.Paper != "Letter" {
		t.Fatalf("unexpected spec: %s", data)
	}
	if page.Content.Text[0].Value != "Questionnaire" || page.Content.Text[0].Font.Name != "Helvetica-Bold" {
		t.Fatalf("unexpected first text: %+v", page.Content.Text[0])
	}
}
