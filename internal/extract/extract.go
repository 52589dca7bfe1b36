// Package extract recovers plain text from quiz source documents.
//
// Each format has an ordered list of strategies. The first strategy whose
// cleaned text is longer than MinChars wins; when none does, the result carries
// FailureText instead of an error so callers can keep going.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FailureText replaces the document text when no strategy recovers enough of it.
const FailureText = "Text extraction failed for this document."

// MinChars is the default length a strategy's text must exceed to be accepted.
const MinChars = 100

// ErrUnsupportedFormat reports an extension without a dedicated reader.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format identifies a source document type.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDocx     Format = "docx"
	FormatODT      Format = "odt"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// Config configures an Extractor.
type Config struct {
	// MinChars is the accepted text length threshold (default: MinChars).
	MinChars int
	// MaxFileSize is the largest file read (default: 100 MB).
	MaxFileSize int64
	// OCR enables the gemini-ocr strategy for PDFs when set.
	OCR Recognizer
	// Logger for debug messages.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.MinChars <= 0 {
		c.MinChars = MinChars
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 100 * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Attempt records one strategy run.
type Attempt struct {
	Strategy string `json:"strategy"`
	Chars    int    `json:"chars"`
	Error    string `json:"error,omitempty"`
}

// Result is what Extract recovered from one document.
type Result struct {
	Path     string    `json:"path"`
	Format   Format    `json:"format"`
	Text     string    `json:"text"`
	Strategy string    `json:"strategy,omitempty"`
	Attempts []Attempt `json:"attempts"`
	Quality  Quality   `json:"quality"`
	Failed   bool      `json:"failed"`
}

// Extractor runs the strategy chain for a document.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Extractor with the given configuration.
func New(cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{cfg: cfg, logger: cfg.Logger}
}

// MinChars returns the configured acceptance threshold.
func (e *Extractor) MinChars() int { return e.cfg.MinChars }

// Detect returns the document format based on file extension.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDocx, nil
	case ".odt":
		return FormatODT, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".txt", ".text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Extract reads path and returns the first text that passes the threshold.
// Extraction problems are reported through Result, never as an error; the only
// error is a cancelled context.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	format, err := Detect(path)
	if err != nil {
		format = FormatText
	}
	res := Result{Path: path, Format: format, Attempts: []Attempt{}}
	data, readErr := e.read(path)
	for _, s := range e.strategies(format) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		attempt := Attempt{Strategy: s.name}
		var text string
		if readErr != nil {
			attempt.Error = readErr.Error()
		} else if text, err = s.run(ctx, data); err != nil {
			attempt.Error = err.Error()
		}
		text = cleanText(text)
		attempt.Chars = utf8.RuneCountInString(text)
		res.Attempts = append(res.Attempts, attempt)
		e.logger.Debug("extraction attempt", "path", path, "strategy", s.name, "chars", attempt.Chars, "error", attempt.Error)
		if attempt.Error == "" && attempt.Chars > e.cfg.MinChars {
			res.Text = text
			res.Strategy = s.name
			res.Quality = measureQuality(text)
			return res, nil
		}
	}
	res.Text = FailureText
	res.Failed = true
	res.Quality = measureQuality(FailureText)
	e.logger.Warn("text extraction failed", "path", path, "format", format, "attempts", len(res.Attempts))
	return res, nil
}

func (e *Extractor) read(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > e.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), e.cfg.MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// SupportedFormats returns the formats with dedicated readers.
func SupportedFormats() []Format {
	return []Format{FormatPDF, FormatDocx, FormatODT, FormatHTML, FormatMarkdown, FormatText}
}
