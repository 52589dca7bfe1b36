package render

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Letter page geometry in points.
const (
	pageWidth  = 612.0
	pageHeight = 792.0
	pageMargin = 72.0
)

type textStyle struct {
	font   string
	size   float64
	indent float64
	before float64
}

var (
	pdfTitle    = textStyle{font: "Helvetica-Bold", size: 18, before: 0}
	pdfHeading  = textStyle{font: "Helvetica-Bold", size: 14, before: 18}
	pdfQuestion = textStyle{font: "Helvetica-Bold", size: 12, before: 10}
	pdfOption   = textStyle{font: "Helvetica", size: 11, indent: 20, before: 2}
)

// pdfLine is one positioned text line. Y is measured from the bottom edge.
type pdfLine struct {
	Text string
	Font string
	Size float64
	X    float64
	Y    float64
}

type pdfPage struct {
	Lines []pdfLine
}

// layoutPDF flows the document onto pages, wrapping long lines by an average
// glyph width estimate and breaking pages at the bottom margin.
func layoutPDF(doc Document) []pdfPage {
	pages := []pdfPage{{}}
	y := pageHeight - pageMargin
	place := func(text string, style textStyle) {
		width := pageWidth - 2*pageMargin - style.indent
		for i, line := range wrapText(text, width, style.size) {
			lead := style.size * 1.3
			if i == 0 {
				lead += style.before
			}
			if y-lead < pageMargin {
				pages = append(pages, pdfPage{})
				y = pageHeight - pageMargin
				lead = style.size * 1.3
			}
			y -= lead
			current := &pages[len(pages)-1]
			current.Lines = append(current.Lines, pdfLine{
				Text: line,
				Font: style.font,
				Size: style.size,
				X:    pageMargin + style.indent,
				Y:    y,
			})
		}
	}

	place(doc.title(), pdfTitle)
	for _, group := range doc.Groups() {
		place(group.Heading, pdfHeading)
		for _, q := range group.Questions {
			place(q.Prompt(), pdfQuestion)
			for _, opt := range q.Options() {
				place(opt.Text(), pdfOption)
			}
		}
	}
	return pages
}

// wrapText splits text into lines no wider than width for a font size,
// assuming an average glyph width of half the size.
func wrapText(text string, width, size float64) []string {
	limit := int(width / (size * 0.5))
	if limit < 1 {
		limit = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := ""
	for _, word := range words {
		for len([]rune(word)) > limit {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:limit]))
			word = string(runes[limit:])
		}
		switch {
		case current == "":
			current = word
		case len([]rune(current))+1+len([]rune(word)) <= limit:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

type pdfFont struct {
	Name string  `json:"name"`
	Size float64 `json:"size"`
}

type pdfText struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  pdfFont    `json:"font"`
	Align string     `json:"align"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPageSpec struct {
	Content pdfContent `json:"content"`
}

type pdfSpec struct {
	Paper  string                 `json:"paper"`
	Origin string                 `json:"origin"`
	Pages  map[string]pdfPageSpec `json:"pages"`
}

// pdfJSON builds the pdfcpu create description for the laid out pages.
func pdfJSON(pages []pdfPage) ([]byte, error) {
	spec := pdfSpec{Paper: "Letter", Origin: "LowerLeft", Pages: make(map[string]pdfPageSpec, len(pages))}
	for i, page := range pages {
		texts := make([]pdfText, 0, len(page.Lines))
		for _, line := range page.Lines {
			texts = append(texts, pdfText{
				Value: line.Text,
				Pos:   [2]float64{line.X, line.Y},
				Font:  pdfFont{Name: line.Font, Size: line.Size},
				Align: "left",
			})
		}
		spec.Pages[strconv.Itoa(i+1)] = pdfPageSpec{Content: pdfContent{Text: texts}}
	}
	return json.Marshal(spec)
}

func writePDF(w io.Writer, doc Document) error {
	data, err := pdfJSON(layoutPDF(doc))
	if err != nil {
		return err
	}
	return api.Create(nil, bytes.NewReader(data), w, model.NewDefaultConfiguration())
}
