package loader

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/slidegest/internal/docmodel"
)

// HTMLLoader handles HTML files.
type HTMLLoader struct{}

// Load maps h1..h6 to heading paragraphs, block elements to body
// paragraphs, hr to page breaks, and the inline style tags (b/strong,
// i/em, u, s/del, sup/sub, mark, a) to run attributes.
func (l *HTMLLoader) Load(r io.Reader, filename string) (*docmodel.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &docmodel.Document{Title: titleFromFilename(filename)}
	if title := findTitle(root); title != "" {
		doc.Title = title
	}

	w := &htmlWalker{doc: doc}
	if body := findBody(root); body != nil {
		w.walk(body)
	} else {
		w.walk(root)
	}

	assignOrdinals(doc)
	return doc, nil
}

type htmlWalker struct {
	doc       *docmodel.Document
	pageBreak bool
}

func (w *htmlWalker) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if level := htmlHeadingLevel(n.Data); level > 0 {
			w.emit(docmodel.Paragraph{
				HeadingLevel: level,
				Runs:         htmlRuns(n, docmodel.Run{}),
			})
			return
		}

		switch n.Data {
		case "script", "style", "nav", "footer", "header":
			return
		case "hr":
			w.pageBreak = true
			return
		case "p", "li", "td", "blockquote", "pre":
			w.emit(docmodel.Paragraph{Runs: htmlRuns(n, docmodel.Run{})})
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *htmlWalker) emit(p docmodel.Paragraph) {
	if p.IsEmpty() {
		return
	}
	p.PageBreakBefore = w.pageBreak
	w.pageBreak = false
	w.doc.Paragraphs = append(w.doc.Paragraphs, p)
}

// htmlRuns flattens an element's inline content into styled runs,
// accumulating style state down the tree.
func htmlRuns(n *html.Node, style docmodel.Run) []docmodel.Run {
	var runs []docmodel.Run

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text := collapseSpace(c.Data)
			if strings.TrimSpace(text) == "" {
				continue
			}
			run := style
			run.Text = text
			runs = append(runs, run)

		case html.ElementNode:
			nested := style
			switch c.Data {
			case "b", "strong":
				nested.Bold = true
			case "i", "em":
				nested.Italic = true
			case "u":
				nested.Underline = docmodel.UnderlineSingle
			case "s", "del", "strike":
				nested.Strike = true
			case "sup":
				nested.Superscript = true
			case "sub":
				nested.Subscript = true
			case "mark":
				nested.Highlight = docmodel.HighlightYellow
			case "a":
				nested.HyperlinkURL = htmlAttr(c, "href")
			case "br":
				runs = append(runs, docmodel.Run{Text: "\n"})
				continue
			}
			runs = append(runs, htmlRuns(c, nested)...)
		}
	}

	return runs
}

// collapseSpace folds whitespace runs into single spaces, keeping
// boundary spaces so adjacent inline elements stay separated.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			space = true
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	if space && b.Len() > 0 {
		b.WriteByte(' ')
	}
	return b.String()
}

func htmlHeadingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func htmlAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return htmlText(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func htmlText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
