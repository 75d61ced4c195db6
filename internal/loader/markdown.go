package loader

import (
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/slidegest/internal/docmodel"
)

// MarkdownLoader handles Markdown files using goldmark.
type MarkdownLoader struct{}

// Load maps headings to heading paragraphs, emphasis to bold/italic
// runs, and thematic breaks to page breaks.
func (l *MarkdownLoader) Load(r io.Reader, filename string) (*docmodel.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	doc := &docmodel.Document{Title: titleFromFilename(filename)}
	pageBreak := false

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			para := docmodel.Paragraph{
				HeadingLevel:    node.Level,
				PageBreakBefore: pageBreak,
				Runs:            inlineRuns(node, src, docmodel.Run{}),
			}
			pageBreak = false
			if !para.IsEmpty() {
				doc.Paragraphs = append(doc.Paragraphs, para)
			}

		case *ast.ThematicBreak:
			pageBreak = true

		default:
			para := docmodel.Paragraph{
				PageBreakBefore: pageBreak,
				Runs:            blockRuns(n, src),
			}
			pageBreak = false
			if !para.IsEmpty() {
				doc.Paragraphs = append(doc.Paragraphs, para)
			}
		}
	}

	assignOrdinals(doc)
	return doc, nil
}

// inlineRuns flattens a block node's inline children into styled runs,
// carrying the emphasis state down through nesting.
func inlineRuns(n ast.Node, src []byte, style docmodel.Run) []docmodel.Run {
	var runs []docmodel.Run

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			run := style
			run.Text = string(node.Value(src))
			if node.HardLineBreak() || node.SoftLineBreak() {
				run.Text += "\n"
			}
			if run.Text != "" {
				runs = append(runs, run)
			}

		case *ast.Emphasis:
			nested := style
			if node.Level >= 2 {
				nested.Bold = true
			} else {
				nested.Italic = true
			}
			runs = append(runs, inlineRuns(c, src, nested)...)

		case *ast.Link:
			nested := style
			nested.HyperlinkURL = string(node.Destination)
			runs = append(runs, inlineRuns(c, src, nested)...)

		case *ast.CodeSpan:
			run := style
			run.Text = string(node.Text(src))
			if run.Text != "" {
				runs = append(runs, run)
			}

		default:
			runs = append(runs, inlineRuns(c, src, style)...)
		}
	}

	return runs
}

// blockRuns extracts runs from a non-heading block, falling back to the
// block's raw lines when it has no inline children (code blocks).
func blockRuns(n ast.Node, src []byte) []docmodel.Run {
	if n.FirstChild() != nil {
		if runs := inlineRuns(n, src, docmodel.Run{}); len(runs) > 0 {
			return runs
		}
	}

	if n.Type() == ast.TypeBlock {
		var buf []byte
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf = append(buf, line.Value(src)...)
		}
		if len(buf) > 0 {
			return []docmodel.Run{{Text: string(buf)}}
		}
	}

	return nil
}
