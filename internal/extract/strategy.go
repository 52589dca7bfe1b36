package extract

import (
	"context"
	"errors"
	"unicode/utf8"
)

type strategy struct {
	name string
	run  func(ctx context.Context, data []byte) (string, error)
}

// Strategy names as reported in Result.Strategy and Attempt.Strategy.
const (
	StrategyPDFContent   = "pdf-content"
	StrategyPDFStreams   = "pdf-streams"
	StrategyGeminiOCR    = "gemini-ocr"
	StrategyDocx         = "docx"
	StrategyODT          = "odt"
	StrategyHTMLMarkdown = "html-markdown"
	StrategyHTMLBlocks   = "html-blocks"
	StrategyHTMLStrip    = "html-strip"
	StrategyPlain        = "plain"
)

func (e *Extractor) strategies(format Format) []strategy {
	switch format {
	case FormatPDF:
		list := []strategy{
			{name: StrategyPDFContent, run: pdfContentText},
			{name: StrategyPDFStreams, run: pdfStreamText},
		}
		if e.cfg.OCR != nil {
			list = append(list, strategy{name: StrategyGeminiOCR, run: func(ctx context.Context, data []byte) (string, error) {
				return e.cfg.OCR.Recognize(ctx, "application/pdf", data)
			}})
		}
		return list
	case FormatDocx:
		return []strategy{{name: StrategyDocx, run: docxText}}
	case FormatODT:
		return []strategy{{name: StrategyODT, run: odtText}}
	case FormatHTML:
		return []strategy{
			{name: StrategyHTMLMarkdown, run: htmlMarkdownText},
			{name: StrategyHTMLBlocks, run: htmlBlockText},
			{name: StrategyHTMLStrip, run: htmlStripText},
		}
	default:
		return []strategy{{name: StrategyPlain, run: plainText}}
	}
}

var errNotUTF8 = errors.New("not valid UTF-8 text")

func plainText(_ context.Context, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errNotUTF8
	}
	return string(data), nil
}
