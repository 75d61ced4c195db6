// Package chunker splits an ordered paragraph sequence into chunks,
// one chunk per output slide. All strategies break a new chunk on a
// page break to prevent slide text overflow.
package chunker

import (
	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/docmodel"
)

// Split produces ordered chunks from paragraphs under the configured
// strategy. Chunk indexes are assigned in insertion order and page
// numbers are the running page-break count, starting at 1; both are
// fixed before any range filtering so ranges refer to original
// pagination.
func Split(paras []docmodel.Paragraph, cfg config.Config) []docmodel.Chunk {
	var chunks []docmodel.Chunk

	switch cfg.ChunkType {
	case config.ChunkPage:
		chunks = splitAt(paras, func(docmodel.Paragraph) bool {
			return false // page breaks alone decide boundaries
		})
	case config.ChunkHeadingFlat:
		chunks = splitAt(paras, func(p docmodel.Paragraph) bool {
			return p.HeadingLevel > 0
		})
	case config.ChunkHeadingNested:
		threshold := cfg.HeadingNestLevel
		chunks = splitAt(paras, func(p docmodel.Paragraph) bool {
			return p.HeadingLevel > 0 && p.HeadingLevel <= threshold
		})
	default:
		chunks = splitByParagraph(paras)
	}

	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}

// splitByParagraph makes one chunk per non-empty paragraph. Empty
// paragraphs merge into the preceding chunk to respect intentional
// whitespace, or are dropped when nothing precedes them.
func splitByParagraph(paras []docmodel.Paragraph) []docmodel.Chunk {
	var chunks []docmodel.Chunk
	page := 1

	for _, p := range paras {
		if p.PageBreakBefore {
			page++
		}
		if p.IsEmpty() {
			if len(chunks) > 0 {
				chunks[len(chunks)-1].AddParagraph(p)
			}
			continue
		}
		c := docmodel.Chunk{Page: page}
		c.AddParagraph(p)
		chunks = append(chunks, c)
	}

	return chunks
}

// splitAt accumulates paragraphs into chunks, starting a new chunk at
// every paragraph for which boundary reports true. Regardless of
// strategy, a page break mid-chunk also forces a boundary. An empty
// open chunk absorbs the next paragraph no matter its style.
func splitAt(paras []docmodel.Paragraph, boundary func(docmodel.Paragraph) bool) []docmodel.Chunk {
	var chunks []docmodel.Chunk
	cur := docmodel.Chunk{}
	page := 1

	flush := func() {
		if len(cur.Paragraphs) > 0 {
			chunks = append(chunks, cur)
			cur = docmodel.Chunk{}
		}
	}

	for _, p := range paras {
		if p.PageBreakBefore {
			page++
		}
		if p.IsEmpty() {
			continue
		}

		if len(cur.Paragraphs) == 0 {
			cur.Page = page
			cur.AddParagraph(p)
			continue
		}

		if p.PageBreakBefore || boundary(p) {
			flush()
			cur.Page = page
			cur.AddParagraph(p)
			continue
		}

		cur.AddParagraph(p)
	}
	flush()

	return chunks
}

// FilterPageRange drops chunks whose page falls outside the inclusive
// [start, end] range. Zero means unbounded on that side. Chunk indexes
// are preserved from before filtering.
func FilterPageRange(chunks []docmodel.Chunk, start, end int) []docmodel.Chunk {
	if start == 0 && end == 0 {
		return chunks
	}
	kept := make([]docmodel.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if start > 0 && c.Page < start {
			continue
		}
		if end > 0 && c.Page > end {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
