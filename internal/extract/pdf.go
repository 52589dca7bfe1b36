package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var errNoPDFText = errors.New("no text content found in PDF")

func readPDF(data []byte) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx, nil
}

// pdfContentText decodes each page's content stream in page order.
func pdfContentText(ctx context.Context, data []byte) (string, error) {
	pdf, err := readPDF(data)
	if err != nil {
		return "", err
	}
	pages := make([]string, 0, pdf.PageCount)
	for pageNr := 1; pageNr <= pdf.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		r, err := pdfcpu.ExtractPageContent(pdf, pageNr)
		if err != nil || r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil || len(content) == 0 {
			continue
		}
		if text := streamText(content); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return "", errNoPDFText
	}
	return strings.Join(pages, "\n"), nil
}

// pdfStreamText decodes every non-image stream in the cross-reference table.
// It still finds text when the page tree is broken or content is in form XObjects.
func pdfStreamText(ctx context.Context, data []byte) (string, error) {
	pdf, err := readPDF(data)
	if err != nil {
		return "", err
	}
	objNrs := make([]int, 0, len(pdf.Table))
	for nr := range pdf.Table {
		objNrs = append(objNrs, nr)
	}
	sort.Ints(objNrs)

	var chunks []string
	for _, nr := range objNrs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		entry := pdf.Table[nr]
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok || !isContentStream(sd) {
			continue
		}
		if sd.Content == nil {
			if err := sd.Decode(); err != nil {
				continue
			}
		}
		if text := streamText(sd.Content); text != "" {
			chunks = append(chunks, text)
		}
	}
	if len(chunks) == 0 {
		return "", errNoPDFText
	}
	return strings.Join(chunks, "\n"), nil
}

func isContentStream(sd types.StreamDict) bool {
	if t := sd.Type(); t != nil && *t != "XObject" {
		return false
	}
	if subtype, found := sd.Find("Subtype"); found {
		name, isName := subtype.(types.Name)
		return isName && name == "Form"
	}
	return true
}

// streamText interprets the text operators of a content stream. Line moves
// (T*, ', ", Td/TD with a vertical offset, Tm, ET) end the current line so
// question and option lines survive extraction.
func streamText(data []byte) string {
	var sb strings.Builder
	var pending strings.Builder
	var numbers []float64
	inArray := false

	newline := func() {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}
	}
	flush := func() {
		sb.WriteString(pending.String())
		pending.Reset()
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isPDFSpace(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			raw, n := readLiteral(data[i:])
			pending.WriteString(latin1(decodePDFString(raw)))
			i += n
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2
		case c == '>' && i+1 < len(data) && data[i+1] == '>':
			i += 2
		case c == '<':
			end := bytes.IndexByte(data[i:], '>')
			if end < 0 {
				return finishStream(sb.String())
			}
			pending.WriteString(latin1(decodeHex(data[i+1 : i+end])))
			i += end + 1
		case c == '[':
			inArray = true
			i++
		case c == ']':
			inArray = false
			i++
		default:
			start := i
			for i < len(data) && !isPDFSpace(data[i]) && !isPDFDelimiter(data[i]) {
				i++
			}
			if i == start {
				i++
				continue
			}
			token := string(data[start:i])
			if v, err := strconv.ParseFloat(token, 64); err == nil {
				if inArray && v < -250 {
					pending.WriteByte(' ')
				}
				numbers = append(numbers, v)
				continue
			}
			switch token {
			case "Tj", "TJ":
				flush()
			case "'", "\"":
				newline()
				flush()
			case "T*", "Tm", "ET":
				newline()
			case "Td", "TD":
				if len(numbers) >= 2 && numbers[len(numbers)-1] != 0 {
					newline()
				} else if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
			}
			pending.Reset()
			numbers = numbers[:0]
		}
	}
	return finishStream(sb.String())
}

func finishStream(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func isPDFSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// readLiteral returns the bytes inside a balanced (...) string and the number
// of bytes consumed, including both parentheses.
func readLiteral(data []byte) ([]byte, int) {
	depth := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return data[1:i], i + 1
			}
		}
	}
	return data[1:], len(data)
}

// decodePDFString handles the escape sequences of a literal string.
func decodePDFString(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			out = append(out, raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b', 'f':
		case '\n':
			// Line continuation.
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				out = append(out, byte(val))
			} else {
				out = append(out, raw[i])
			}
		}
	}
	return out
}

func decodeHex(raw []byte) []byte {
	digits := make([]byte, 0, len(raw))
	for _, c := range raw {
		if !isPDFSpace(c) {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

// latin1 maps single-byte string content to runes.
func latin1(b []byte) string {
	runes := make([]rune, 0, len(b))
	for _, c := range b {
		switch {
		case c == '\r' || c == '\n':
			runes = append(runes, '\n')
		case c < 0x20 && c != '\t':
		default:
			runes = append(runes, rune(c))
		}
	}
	return string(runes)
}
