package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/slidegest/internal/docmodel"
)

// JSONLoader reads the document model's own JSON form. This is the
// full-fidelity input: run styling, page breaks, and annotations all
// survive, unlike the plain-text formats.
type JSONLoader struct{}

func (l *JSONLoader) Load(r io.Reader, filename string) (*docmodel.Document, error) {
	var doc docmodel.Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document json: %w", err)
	}
	if doc.Title == "" {
		doc.Title = titleFromFilename(filename)
	}
	// Number the paragraphs only when the input didn't; annotation
	// anchors refer to the ordinals as given.
	unnumbered := true
	for i := range doc.Paragraphs {
		if doc.Paragraphs[i].Ordinal != 0 {
			unnumbered = false
			break
		}
	}
	if unnumbered {
		assignOrdinals(&doc)
	}
	return &doc, nil
}
