// Package loader reads source files into the document model. Each
// format adapter fills in whatever fidelity the format carries: docx
// and the JSON document form keep styling and structure, the plain-text
// formats produce body paragraphs only.
package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/slidegest/internal/docmodel"
)

// Loader converts raw document bytes into a Document.
type Loader interface {
	Load(r io.Reader, filename string) (*docmodel.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".docx": true,
	".md":   true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".txt":  true,
	".json": true,
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return &DocxLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{}, nil
	case ".txt":
		return &TextLoader{}, nil
	case ".json":
		return &JSONLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// assignOrdinals numbers the paragraphs in document order. Annotation
// anchors refer to these ordinals.
func assignOrdinals(doc *docmodel.Document) {
	for i := range doc.Paragraphs {
		doc.Paragraphs[i].Ordinal = i
	}
}

func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
