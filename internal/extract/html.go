package extract

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var markdownConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// Markdown list markers and emphasis would hide "1." and "a." at line start.
var (
	markdownListMarker = regexp.MustCompile(`(?m)^\s*(?:[-*+]\s+)`)
	markdownHeading    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	markdownEmphasis   = regexp.MustCompile(`\*\*|__`)
	markdownEscape     = regexp.MustCompile(`\\([.)\-*_#+\[\]])`)
)

func htmlMarkdownText(_ context.Context, data []byte) (string, error) {
	md, err := markdownConverter.ConvertString(string(data))
	if err != nil {
		return "", err
	}
	md = markdownHeading.ReplaceAllString(md, "")
	md = markdownListMarker.ReplaceAllString(md, "")
	md = markdownEmphasis.ReplaceAllString(md, "")
	md = markdownEscape.ReplaceAllString(md, "$1")
	return md, nil
}

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
}

func hasHiddenStyle(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "style" {
			for _, pat := range hiddenStylePatterns {
				if pat.MatchString(a.Val) {
					return true
				}
			}
		}
	}
	return false
}

// htmlBlockText walks the DOM and writes one line per block element.
func htmlBlockText(_ context.Context, data []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Head:
				return
			}
			if hasHiddenStyle(n) {
				return
			}
			switch n.DataAtom {
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.P, atom.Li, atom.Dt, atom.Dd, atom.Tr, atom.Caption:
				if text := collectHTMLText(n); text != "" {
					sb.WriteString(text)
					sb.WriteByte('\n')
				}
				return
			case atom.Br:
				sb.WriteByte('\n')
				return
			}
		}
		if n.Type == html.TextNode {
			// Loose text directly inside containers such as div or body.
			if text := strings.TrimSpace(n.Data); text != "" {
				sb.WriteString(strings.Join(strings.Fields(text), " "))
				sb.WriteByte('\n')
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String(), nil
}

// collectHTMLText joins the visible text of a subtree with single spaces.
func collectHTMLText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, strings.Fields(n.Data)...)
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
			if hasHiddenStyle(n) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

var (
	stripPolicy   = bluemonday.StrictPolicy()
	blockBoundary = regexp.MustCompile(`(?i)<\s*(?:br\s*/?|/p|/div|/li|/h[1-6]|/tr)\s*>`)
)

// htmlStripText is the last resort for markup the DOM walkers cannot use:
// block boundaries become newlines and every remaining tag is removed.
func htmlStripText(_ context.Context, data []byte) (string, error) {
	marked := blockBoundary.ReplaceAllString(string(data), "$0\n")
	return html.UnescapeString(stripPolicy.Sanitize(marked)), nil
}
