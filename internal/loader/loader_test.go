package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/slidegest/internal/docmodel"
)

func TestForFile(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"report.docx", "*loader.DocxLoader"},
		{"notes.md", "*loader.MarkdownLoader"},
		{"page.html", "*loader.HTMLLoader"},
		{"scan.pdf", "*loader.PDFLoader"},
		{"plain.txt", "*loader.TextLoader"},
		{"doc.json", "*loader.JSONLoader"},
	}
	for _, tc := range cases {
		l, err := ForFile(tc.filename)
		if err != nil {
			t.Fatalf("%s: %v", tc.filename, err)
		}
		if got := typeName(l); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.filename, tc.want, got)
		}
	}

	if _, err := ForFile("image.png"); err == nil {
		t.Errorf("expected error for unsupported extension")
	}
	if IsSupportedExtension("image.png") {
		t.Errorf("png should not be supported")
	}
	if !IsSupportedExtension("REPORT.DOCX") {
		t.Errorf("extension check should be case-insensitive")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *DocxLoader:
		return "*loader.DocxLoader"
	case *MarkdownLoader:
		return "*loader.MarkdownLoader"
	case *HTMLLoader:
		return "*loader.HTMLLoader"
	case *PDFLoader:
		return "*loader.PDFLoader"
	case *TextLoader:
		return "*loader.TextLoader"
	case *JSONLoader:
		return "*loader.JSONLoader"
	default:
		return "unknown"
	}
}

func TestMarkdownLoader(t *testing.T) {
	src := "# Title\n\nSome *italic* and **bold** text.\n\n---\n\nAfter the break.\n"

	doc, err := (&MarkdownLoader{}).Load(strings.NewReader(src), "notes.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(doc.Paragraphs))
	}

	if doc.Paragraphs[0].HeadingLevel != 1 || doc.Paragraphs[0].Text() != "Title" {
		t.Errorf("heading not parsed: %+v", doc.Paragraphs[0])
	}

	var italic, bold bool
	for _, run := range doc.Paragraphs[1].Runs {
		if run.Italic && run.Text == "italic" {
			italic = true
		}
		if run.Bold && run.Text == "bold" {
			bold = true
		}
	}
	if !italic || !bold {
		t.Errorf("emphasis not mapped to runs: %+v", doc.Paragraphs[1].Runs)
	}

	if !doc.Paragraphs[2].PageBreakBefore {
		t.Errorf("thematic break should set page break on the next paragraph")
	}

	for i, p := range doc.Paragraphs {
		if p.Ordinal != i {
			t.Errorf("paragraph %d: ordinal %d", i, p.Ordinal)
		}
	}
}

func TestHTMLLoader(t *testing.T) {
	src := `<html><head><title>Doc Title</title></head><body>
<h2>Section</h2>
<p>Plain with <b>bold</b> and <mark>marked</mark> words.</p>
<hr>
<p>Next page.</p>
</body></html>`

	doc, err := (&HTMLLoader{}).Load(strings.NewReader(src), "page.html")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Title != "Doc Title" {
		t.Errorf("title: %q", doc.Title)
	}
	if len(doc.Paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(doc.Paragraphs))
	}
	if doc.Paragraphs[0].HeadingLevel != 2 {
		t.Errorf("h2 not mapped: %+v", doc.Paragraphs[0])
	}

	var bold, marked bool
	for _, run := range doc.Paragraphs[1].Runs {
		if run.Bold && strings.TrimSpace(run.Text) == "bold" {
			bold = true
		}
		if run.Highlight == docmodel.HighlightYellow && strings.TrimSpace(run.Text) == "marked" {
			marked = true
		}
	}
	if !bold || !marked {
		t.Errorf("inline tags not mapped: %+v", doc.Paragraphs[1].Runs)
	}

	if !doc.Paragraphs[2].PageBreakBefore {
		t.Errorf("hr should set page break on the next paragraph")
	}
}

func TestTextLoader(t *testing.T) {
	src := "first paragraph\nstill first\n\nsecond paragraph\n\fthird on new page\n"

	doc, err := (&TextLoader{}).Load(strings.NewReader(src), "plain.txt")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %+v", len(doc.Paragraphs), doc.Paragraphs)
	}
	if doc.Paragraphs[0].Text() != "first paragraph\nstill first" {
		t.Errorf("first paragraph: %q", doc.Paragraphs[0].Text())
	}
	if !doc.Paragraphs[2].PageBreakBefore {
		t.Errorf("form feed should set page break")
	}
}

func TestJSONLoader(t *testing.T) {
	src := `{
  "title": "From JSON",
  "paragraphs": [
    {"runs": [{"text": "Heading", "bold": true}], "heading_level": 1},
    {"runs": [{"text": "body", "highlight": "teal"}]}
  ],
  "comments": [
    {"type": "comment", "id": "c1", "anchor": 1, "runs": [{"text": "note"}]}
  ]
}`

	doc, err := (&JSONLoader{}).Load(strings.NewReader(src), "doc.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Title != "From JSON" {
		t.Errorf("title: %q", doc.Title)
	}
	if len(doc.Paragraphs) != 2 || doc.Paragraphs[0].HeadingLevel != 1 {
		t.Fatalf("paragraphs not decoded: %+v", doc.Paragraphs)
	}
	if doc.Paragraphs[1].Runs[0].Highlight != docmodel.HighlightTeal {
		t.Errorf("run styling lost: %+v", doc.Paragraphs[1].Runs[0])
	}
	if len(doc.Comments) != 1 || doc.Comments[0].Anchor != 1 {
		t.Errorf("comments lost: %+v", doc.Comments)
	}
	if doc.Paragraphs[1].Ordinal != 1 {
		t.Errorf("ordinals not assigned: %+v", doc.Paragraphs[1])
	}
}

func TestJSONLoader_Malformed(t *testing.T) {
	if _, err := (&JSONLoader{}).Load(strings.NewReader("{broken"), "doc.json"); err == nil {
		t.Errorf("expected decode error")
	}
}

func TestWriteDocx(t *testing.T) {
	doc := &docmodel.Document{
		Paragraphs: []docmodel.Paragraph{
			{HeadingLevel: 1, Runs: []docmodel.Run{{Text: "Title"}}},
			{Alignment: docmodel.AlignCenter, Runs: []docmodel.Run{
				{Text: "hello ", Bold: true},
				{Text: "link", HyperlinkURL: "https://example.com"},
			}},
		},
	}

	var buf bytes.Buffer
	if err := WriteDocx(doc, &buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("expected non-empty docx output")
	}
	// ZIP container magic.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Errorf("output is not a zip package")
	}
}
