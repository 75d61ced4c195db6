package loader

import (
	"bufio"
	"strings"

	"io"

	"github.com/dgallion1/slidegest/internal/docmodel"
)

// TextLoader handles plain text files: blank lines separate paragraphs,
// form feeds mark page breaks.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader, filename string) (*docmodel.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &docmodel.Document{Title: titleFromFilename(filename)}
	var current strings.Builder
	pageBreak := false

	flush := func() {
		text := strings.TrimSpace(current.String())
		current.Reset()
		if text == "" {
			return
		}
		doc.Paragraphs = append(doc.Paragraphs, docmodel.Paragraph{
			PageBreakBefore: pageBreak,
			Runs:            []docmodel.Run{{Text: text}},
		})
		pageBreak = false
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "\f") {
			parts := strings.Split(line, "\f")
			for i, part := range parts {
				if i > 0 {
					flush()
					pageBreak = true
				}
				if strings.TrimSpace(part) != "" {
					if current.Len() > 0 {
						current.WriteString("\n")
					}
					current.WriteString(part)
				}
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	assignOrdinals(doc)
	return doc, nil
}
