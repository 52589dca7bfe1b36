package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

func openZipMember(data []byte, name string) (io.ReadCloser, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", name, err)
			}
			return rc, nil
		}
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// docxText writes one line per w:p paragraph of word/document.xml. Tabs and
// explicit breaks inside a paragraph become a space and a newline.
func docxText(_ context.Context, data []byte) (string, error) {
	rc, err := openZipMember(data, "word/document.xml")
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var sb strings.Builder
	var paragraph strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				paragraph.Reset()
			case "t":
				inText = true
			case "tab":
				paragraph.WriteByte(' ')
			case "br", "cr":
				paragraph.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString(strings.TrimSpace(paragraph.String()))
				sb.WriteByte('\n')
				paragraph.Reset()
			}
		}
	}
	return sb.String(), nil
}

// odtText writes one line per text:h and text:p element of content.xml.
func odtText(_ context.Context, data []byte) (string, error) {
	rc, err := openZipMember(data, "content.xml")
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var sb strings.Builder
	var block strings.Builder
	depth := 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode content.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "h", "p":
				if depth == 0 {
					block.Reset()
				}
				depth++
			case "s", "tab":
				if depth > 0 {
					block.WriteByte(' ')
				}
			case "line-break":
				if depth > 0 {
					block.WriteByte('\n')
				}
			}
		case xml.CharData:
			if depth > 0 {
				block.Write(t)
			}
		case xml.EndElement:
			if (t.Name.Local == "h" || t.Name.Local == "p") && depth > 0 {
				depth--
				if depth == 0 {
					sb.WriteString(strings.TrimSpace(block.String()))
					sb.WriteByte('\n')
				}
			}
		}
	}
	return sb.String(), nil
}
