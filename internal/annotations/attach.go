// Package annotations carries comments, footnotes, and endnotes through
// the conversion: attaching them to chunks, merging them into
// human-readable speaker notes, and round-tripping them through a JSON
// metadata block appended to the notes.
package annotations

import "github.com/dgallion1/slidegest/internal/docmodel"

// AttachToChunks distributes the document's annotations onto the chunks
// that contain their anchor paragraphs. Comment threading is flattened;
// replies become ordinary comments on the same chunk. An annotation
// whose anchor paragraph did not survive chunking lands on the nearest
// chunk that starts at or before the anchor.
func AttachToChunks(chunks []docmodel.Chunk, doc *docmodel.Document) {
	if len(chunks) == 0 {
		return
	}

	byOrdinal := make(map[int]int)
	for i, c := range chunks {
		for _, p := range c.Paragraphs {
			byOrdinal[p.Ordinal] = i
		}
	}

	place := func(a docmodel.Annotation) int {
		if i, ok := byOrdinal[a.Anchor]; ok {
			return i
		}
		best := 0
		for i, c := range chunks {
			if len(c.Paragraphs) > 0 && c.Paragraphs[0].Ordinal <= a.Anchor {
				best = i
			}
		}
		return best
	}

	for _, a := range doc.Comments {
		i := place(a)
		chunks[i].Comments = append(chunks[i].Comments, a)
	}
	for _, a := range doc.Footnotes {
		i := place(a)
		chunks[i].Footnotes = append(chunks[i].Footnotes, a)
	}
	for _, a := range doc.Endnotes {
		i := place(a)
		chunks[i].Endnotes = append(chunks[i].Endnotes, a)
	}
}
