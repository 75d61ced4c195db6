package chunker

import (
	"testing"

	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/docmodel"
)

func para(text string, level int) docmodel.Paragraph {
	return docmodel.Paragraph{
		Runs:         []docmodel.Run{{Text: text}},
		HeadingLevel: level,
	}
}

func pageBreakPara(text string, level int) docmodel.Paragraph {
	p := para(text, level)
	p.PageBreakBefore = true
	return p
}

func chunkTexts(c docmodel.Chunk) []string {
	var out []string
	for _, p := range c.Paragraphs {
		out = append(out, p.Text())
	}
	return out
}

func TestSplit_ParagraphStrategy(t *testing.T) {
	paras := []docmodel.Paragraph{
		para("one", 0),
		para("two", 0),
		para("", 0), // empty: merged into preceding chunk
		para("three", 0),
	}

	chunks := Split(paras, config.Config{ChunkType: config.ChunkParagraph})

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks (one per non-empty paragraph), got %d", len(chunks))
	}
	if len(chunks[1].Paragraphs) != 2 {
		t.Errorf("expected empty paragraph merged into chunk 1, got %d paragraphs", len(chunks[1].Paragraphs))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
	}
}

func TestSplit_ParagraphStrategy_LeadingEmptyDropped(t *testing.T) {
	paras := []docmodel.Paragraph{
		para("", 0),
		para("body", 0),
	}
	chunks := Split(paras, config.Config{ChunkType: config.ChunkParagraph})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0].Paragraphs) != 1 {
		t.Errorf("leading empty paragraph should be dropped, got %d paragraphs", len(chunks[0].Paragraphs))
	}
}

func TestSplit_HeadingFlat(t *testing.T) {
	paras := []docmodel.Paragraph{
		para("Intro", 0),
		para("Section A", 1),
		para("body", 0),
		para("Section B", 1),
		para("body2", 0),
	}

	chunks := Split(paras, config.Config{ChunkType: config.ChunkHeadingFlat})

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	want := [][]string{
		{"Intro"},
		{"Section A", "body"},
		{"Section B", "body2"},
	}
	for i, w := range want {
		got := chunkTexts(chunks[i])
		if len(got) != len(w) {
			t.Fatalf("chunk %d: expected %v, got %v", i, w, got)
		}
		for j := range w {
			if got[j] != w[j] {
				t.Errorf("chunk %d paragraph %d: expected %q, got %q", i, j, w[j], got[j])
			}
		}
	}
	if chunks[1].HeadingLevel != 1 {
		t.Errorf("expected chunk 1 heading level 1, got %d", chunks[1].HeadingLevel)
	}
}

func TestSplit_HeadingFlat_HeadingOnlyDocument(t *testing.T) {
	paras := []docmodel.Paragraph{
		para("A", 1),
		para("B", 2),
		para("C", 1),
	}
	chunks := Split(paras, config.Config{ChunkType: config.ChunkHeadingFlat})
	if len(chunks) != 3 {
		t.Fatalf("expected one chunk per heading, got %d", len(chunks))
	}
}

func TestSplit_HeadingNested_ThresholdRespected(t *testing.T) {
	paras := []docmodel.Paragraph{
		para("H1 first", 1),
		para("body", 0),
		para("H2 deeper", 2),
		para("more body", 0),
		para("H1 second", 1),
	}

	chunks := Split(paras, config.Config{
		ChunkType:        config.ChunkHeadingNested,
		HeadingNestLevel: 1,
	})

	if len(chunks) != 2 {
		t.Fatalf("level-2 heading must not open a chunk at threshold 1; expected 2 chunks, got %d", len(chunks))
	}
	if len(chunks[0].Paragraphs) != 4 {
		t.Errorf("expected first chunk to hold 4 paragraphs, got %d", len(chunks[0].Paragraphs))
	}
	// Deeper headings keep their level for downstream formatting.
	if chunks[0].Paragraphs[2].HeadingLevel != 2 {
		t.Errorf("nested heading lost its level: got %d", chunks[0].Paragraphs[2].HeadingLevel)
	}
}

func TestSplit_PageStrategy(t *testing.T) {
	paras := []docmodel.Paragraph{
		para("page one a", 0),
		para("page one b", 0),
		pageBreakPara("page two", 0),
		para("page two b", 0),
	}

	chunks := Split(paras, config.Config{ChunkType: config.ChunkPage})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Page != 1 || chunks[1].Page != 2 {
		t.Errorf("expected pages 1 and 2, got %d and %d", chunks[0].Page, chunks[1].Page)
	}
}

func TestSplit_PageBreakForcesBoundaryInHeadingStrategies(t *testing.T) {
	paras := []docmodel.Paragraph{
		para("Section", 1),
		para("body", 0),
		pageBreakPara("spilled onto next page", 0),
	}

	for _, cfg := range []config.Config{
		{ChunkType: config.ChunkHeadingFlat},
		{ChunkType: config.ChunkHeadingNested, HeadingNestLevel: 1},
	} {
		chunks := Split(paras, cfg)
		if len(chunks) != 2 {
			t.Errorf("%s: page break mid-section must force a new chunk; expected 2, got %d",
				cfg.ChunkType, len(chunks))
		}
	}
}

func TestSplit_EmptyDocument(t *testing.T) {
	for _, cfg := range []config.Config{
		{ChunkType: config.ChunkParagraph},
		{ChunkType: config.ChunkPage},
		{ChunkType: config.ChunkHeadingFlat},
		{ChunkType: config.ChunkHeadingNested, HeadingNestLevel: 2},
	} {
		if got := Split(nil, cfg); len(got) != 0 {
			t.Errorf("%s: expected zero chunks for empty input, got %d", cfg.ChunkType, len(got))
		}
	}
}

func TestFilterPageRange(t *testing.T) {
	paras := []docmodel.Paragraph{
		para("Section 1", 1),
		para("Section 2", 1),
		pageBreakPara("Section 3", 1),
	}
	chunks := Split(paras, config.Config{ChunkType: config.ChunkHeadingFlat})
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].Page != 1 || chunks[1].Page != 1 || chunks[2].Page != 2 {
		t.Fatalf("unexpected page numbering: %d %d %d", chunks[0].Page, chunks[1].Page, chunks[2].Page)
	}

	kept := FilterPageRange(chunks, 2, 2)
	if len(kept) != 1 {
		t.Fatalf("expected only the page-2 chunk, got %d chunks", len(kept))
	}
	if kept[0].Paragraphs[0].Text() != "Section 3" {
		t.Errorf("wrong chunk kept: %q", kept[0].Paragraphs[0].Text())
	}
	// Index refers to pre-filter insertion order.
	if kept[0].Index != 2 {
		t.Errorf("expected preserved index 2, got %d", kept[0].Index)
	}
}

func TestFilterPageRange_Unbounded(t *testing.T) {
	chunks := []docmodel.Chunk{{Page: 1}, {Page: 2}, {Page: 3}}

	if got := FilterPageRange(chunks, 0, 0); len(got) != 3 {
		t.Errorf("no bounds: expected all chunks, got %d", len(got))
	}
	if got := FilterPageRange(chunks, 2, 0); len(got) != 2 {
		t.Errorf("open end: expected 2 chunks, got %d", len(got))
	}
	if got := FilterPageRange(chunks, 0, 1); len(got) != 1 {
		t.Errorf("open start: expected 1 chunk, got %d", len(got))
	}
}
