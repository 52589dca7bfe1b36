// Package render writes a parsed question list as a new document, grouped by
// kind in canonical order.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizdoc/internal/question"
)

// Format names an output document type.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// ErrUnknownFormat reports an output format name or extension without a renderer.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns every supported output format.
func Formats() []Format {
	return []Format{FormatPDF, FormatMarkdown, FormatHTML, FormatText, FormatJSON}
}

// ParseFormat resolves a format name, accepting common aliases.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pdf":
		return FormatPDF, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// FormatFromPath picks the format from a destination file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type of a rendered format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for a format, with the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// Document is the renderer input.
type Document struct {
	Title     string
	Questions []question.Question
	// NoColor disables terminal styling in the text format.
	NoColor bool
}

func (d Document) title() string {
	if strings.TrimSpace(d.Title) == "" {
		return question.DefaultTitle
	}
	return d.Title
}

// Group is one rendered section.
type Group struct {
	Kind      question.Kind
	Heading   string
	Questions []question.Question
}

// Groups buckets questions by kind in canonical order, dropping empty kinds.
func (d Document) Groups() []Group {
	byKind := question.GroupByKind(d.Questions)
	groups := make([]Group, 0, len(byKind))
	for _, kind := range question.Kinds() {
		qs := byKind[kind]
		if len(qs) == 0 {
			continue
		}
		groups = append(groups, Group{Kind: kind, Heading: kind.Heading(), Questions: qs})
	}
	return groups
}

// Write renders doc in the given format to w.
func Write(w io.Writer, format Format, doc Document) error {
	var err error
	switch format {
	case FormatPDF:
		err = writePDF(w, doc)
	case FormatMarkdown:
		err = writeMarkdown(w, doc)
	case FormatHTML:
		err = writeHTML(w, doc)
	case FormatText:
		err = writeText(w, doc)
	case FormatJSON:
		err = writeJSON(w, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}

// WriteFile renders doc to path, creating parent directories. An empty format
// is derived from the extension.
func WriteFile(path string, format Format, doc Document) error {
	if format == "" {
		detected, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		format = detected
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Write(file, format, doc); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
