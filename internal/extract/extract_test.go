package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const quizText = `Multiple Choice Questions:
1. What is the capital of France?
a. Paris
b. Rome
c. Madrid
d. Berlin
True or False:
2. The sun rises in the east.`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	cases := map[string]Format{
		"a.PDF": FormatPDF, "b.docx": FormatDocx, "c.odt": FormatODT,
		"d.htm": FormatHTML, "e.markdown": FormatMarkdown, "f.txt": FormatText,
	}
	for path, want := range cases {
		got, err := Detect(path)
		if err != nil || got != want {
			t.Fatalf("%s: expected %s, got %s (%v)", path, want, got, err)
		}
	}
	if _, err := Detect("g.rtf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

// TestExtractPlainText verifies text files pass through with line structure.
func TestExtractPlainText(t *testing.T) {
	path := writeFile(t, "quiz.txt", []byte(strings.ReplaceAll(quizText, "\n", "\r\n")+"   \r\n"))
	res, err := New(Config{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Failed || res.Strategy != StrategyPlain {
		t.Fatalf("expected plain strategy, got %+v", res.Attempts)
	}
	if res.Text != quizText {
		t.Fatalf("unexpected text %q", res.Text)
	}
	if res.Quality.Lines != 8 {
		t.Fatalf("expected 8 lines, got %d", res.Quality.Lines)
	}
}

// TestExtractUnknownExtensionFallsBackToPlain verifies unknown files are tried as text.
func TestExtractUnknownExtensionFallsBackToPlain(t *testing.T) {
	path := writeFile(t, "quiz.exam", []byte(quizText))
	res, err := New(Config{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Format != FormatText || res.Failed {
		t.Fatalf("expected text result, got %+v", res)
	}
}

// TestExtractShortTextFails verifies the threshold produces the sentinel.
func TestExtractShortTextFails(t *testing.T) {
	path := writeFile(t, "short.txt", []byte("1. Too short"))
	res, err := New(Config{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !res.Failed || res.Text != FailureText {
		t.Fatalf("expected failure sentinel, got %+v", res)
	}
	if len(res.Attempts) != 1 || res.Attempts[0].Chars != 12 {
		t.Fatalf("unexpected attempts: %+v", res.Attempts)
	}
}

func TestExtractMinCharsConfigurable(t *testing.T) {
	path := writeFile(t, "short.txt", []byte("1. Short but fine"))
	res, _ := New(Config{MinChars: 5}).Extract(context.Background(), path)
	if res.Failed {
		t.Fatalf("expected acceptance with MinChars 5")
	}
}

func TestExtractMissingFile(t *testing.T) {
	res, err := New(Config{}).Extract(context.Background(), filepath.Join(t.TempDir(), "none.pdf"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !res.Failed || len(res.Attempts) != 2 {
		t.Fatalf("expected two failed pdf attempts, got %+v", res.Attempts)
	}
	if !strings.Contains(res.Attempts[0].Error, "stat") {
		t.Fatalf("expected stat error, got %q", res.Attempts[0].Error)
	}
}

// TestExtractFileTooLarge verifies the size limit fails every strategy.
func TestExtractFileTooLarge(t *testing.T) {
	path := writeFile(t, "quiz.txt", []byte(quizText))
	res, _ := New(Config{MaxFileSize: 10}).Extract(context.Background(), path)
	if !res.Failed || !strings.Contains(res.Attempts[0].Error, "too large") {
		t.Fatalf("expected size failure, got %+v", res.Attempts)
	}
}

func TestExtractCancelled(t *testing.T) {
	path := writeFile(t, "quiz.txt", []byte(quizText))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Config{}).Extract(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// TestExtractDocx verifies one line per paragraph.
func TestExtractDocx(t *testing.T) {
	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, line := range strings.Split(quizText, "\n") {
		body.WriteString(`<w:p><w:r><w:t>` + line + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)
	path := writeFile(t, "quiz.docx", buildZip(t, map[string]string{"word/document.xml": body.String()}))

	res, err := New(Config{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Failed || res.Strategy != StrategyDocx {
		t.Fatalf("expected docx strategy, got %+v", res.Attempts)
	}
	if res.Text != quizText {
		t.Fatalf("unexpected text %q", res.Text)
	}
}

// TestExtractDocxMissingDocument verifies a broken archive fails softly.
func TestExtractDocxMissingDocument(t *testing.T) {
	path := writeFile(t, "broken.docx", buildZip(t, map[string]string{"other.xml": "<x/>"}))
	res, _ := New(Config{}).Extract(context.Background(), path)
	if !res.Failed || !strings.Contains(res.Attempts[0].Error, "not found") {
		t.Fatalf("expected missing member failure, got %+v", res.Attempts)
	}
}

// TestExtractODT verifies headings and paragraphs become lines.
func TestExtractODT(t *testing.T) {
	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"><office:body><office:text>`)
	for i, line := range strings.Split(quizText, "\n") {
		if i == 0 {
			body.WriteString(`<text:h text:outline-level="1">` + line + `</text:h>`)
			continue
		}
		body.WriteString(`<text:p>` + line + `</text:p>`)
	}
	body.WriteString(`</office:text></office:body></office:document-content>`)
	path := writeFile(t, "quiz.odt", buildZip(t, map[string]string{"content.xml": body.String()}))

	res, err := New(Config{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Text != quizText {
		t.Fatalf("unexpected text %q", res.Text)
	}
}

// TestExtractHTMLKeepsLines verifies the first HTML strategy keeps question lines.
func TestExtractHTMLKeepsLines(t *testing.T) {
	page := `<html><head><title>Quiz</title><style>p{}</style></head><body>
<h2>Multiple Choice Questions:</h2>
<p>1. What is the capital of France?</p>
<p>a. Paris</p><p>b. Rome</p><p>c. Madrid</p><p>d. Berlin</p>
<p style="display:none">hidden</p>
<h2>True or False:</h2>
<p>2. The sun rises in the east.</p>
</body></html>`
	path := writeFile(t, "quiz.html", []byte(page))
	res, err := New(Config{}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Failed {
		t.Fatalf("expected html extraction to succeed: %+v", res.Attempts)
	}
	for _, want := range []string{"Multiple Choice Questions:", "1. What is the capital of France?", "a. Paris", "2. The sun rises in the east."} {
		if !containsLine(res.Text, want) {
			t.Fatalf("expected line %q in %q", want, res.Text)
		}
	}
}

// TestHTMLBlockTextSkipsHidden verifies the DOM walker drops hidden and script content.
func TestHTMLBlockTextSkipsHidden(t *testing.T) {
	text, err := htmlBlockText(context.Background(), []byte(`<body><script>x()</script><p>1. Visible</p><div style="visibility: hidden"><p>2. Hidden</p></div><ul><li>a. first</li></ul></body>`))
	if err != nil {
		t.Fatalf("html blocks: %v", err)
	}
	if text != "1. Visible\na. first\n" {
		t.Fatalf("unexpected text %q", text)
	}
}

// TestHTMLStripText verifies block boundaries become line breaks.
func TestHTMLStripText(t *testing.T) {
	text, err := htmlStripText(context.Background(), []byte(`<div>1. Tom &amp; Jerry?</div><div>a. yes<br>b. no</div>`))
	if err != nil {
		t.Fatalf("html strip: %v", err)
	}
	if got := cleanText(text); got != "1. Tom & Jerry?\na. yes\nb. no" {
		t.Fatalf("unexpected text %q", got)
	}
}

// TestCleanTextFoldsCompatibilityForms verifies NFKC folding and trailing space removal.
func TestCleanTextFoldsCompatibilityForms(t *testing.T) {
	got := cleanText("ﬁnd the ﬂow   \r\n１. Ｑ one\t\n")
	if got != "find the flow\n1. Q one" {
		t.Fatalf("unexpected cleaned text %q", got)
	}
}

type fakeRecognizer struct {
	text  string
	err   error
	calls int
	mime  string
}

func (f *fakeRecognizer) Recognize(_ context.Context, mimeType string, _ []byte) (string, error) {
	f.calls++
	f.mime = mimeType
	return f.text, f.err
}

// TestExtractOCRFallback verifies OCR runs only after the PDF readers fail.
func TestExtractOCRFallback(t *testing.T) {
	path := writeFile(t, "scan.pdf", []byte("%PDF-1.4\nnot really a pdf\n"))
	ocr := &fakeRecognizer{text: quizText}
	res, err := New(Config{OCR: ocr}).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Strategy != StrategyGeminiOCR || ocr.calls != 1 || ocr.mime != "application/pdf" {
		t.Fatalf("expected OCR strategy, got %s (calls %d)", res.Strategy, ocr.calls)
	}
	if len(res.Attempts) != 3 || res.Attempts[0].Error == "" {
		t.Fatalf("expected two failed attempts before OCR, got %+v", res.Attempts)
	}
}

// TestExtractOCRError verifies OCR failures still yield the sentinel.
func TestExtractOCRError(t *testing.T) {
	path := writeFile(t, "scan.pdf", []byte("garbage"))
	res, _ := New(Config{OCR: &fakeRecognizer{err: errors.New("quota")}}).Extract(context.Background(), path)
	if !res.Failed || res.Attempts[2].Error != "quota" {
		t.Fatalf("expected OCR failure recorded, got %+v", res.Attempts)
	}
}

func TestGeminiOCRRequiresKey(t *testing.T) {
	g := NewGeminiOCR(" ", "")
	if g.Model != DefaultOCRModel {
		t.Fatalf("expected default model, got %q", g.Model)
	}
	if _, err := g.Recognize(context.Background(), "application/pdf", nil); err == nil {
		t.Fatalf("expected missing key error")
	}
}

// TestQuality verifies the text heuristics.
func TestQuality(t *testing.T) {
	q := measureQuality(quizText)
	if q.PrintableRatio != 1 || q.WordlikeRatio < 0.9 || q.Garbled() {
		t.Fatalf("unexpected quality for clean text: %+v", q)
	}
	bad := measureQuality("�\x01ab")
	if !bad.Garbled() {
		t.Fatalf("expected garbled text, got %+v", bad)
	}
}

func containsLine(text, want string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}
