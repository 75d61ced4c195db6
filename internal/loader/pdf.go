package loader

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/slidegest/internal/docmodel"
)

// PDFLoader handles PDF files. Page boundaries become page-break flags,
// so the page chunking strategy sees the true pagination.
type PDFLoader struct{}

func (l *PDFLoader) Load(r io.Reader, filename string) (*docmodel.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "slidegest-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc := &docmodel.Document{Title: titleFromFilename(filename)}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		appendPageParagraphs(doc, text, i > 1)
	}

	assignOrdinals(doc)
	return doc, nil
}

// appendPageParagraphs splits one page of text on blank lines and adds
// the paragraphs, flagging a page break on the first paragraph of every
// page after the first.
func appendPageParagraphs(doc *docmodel.Document, text string, pageBreak bool) {
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		doc.Paragraphs = append(doc.Paragraphs, docmodel.Paragraph{
			PageBreakBefore: pageBreak,
			Runs:            []docmodel.Run{{Text: block}},
		})
		pageBreak = false
	}
}
