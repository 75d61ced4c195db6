package annotations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/docmodel"
)

// Marker lines wrapping the blocks this package writes into speaker
// notes. Restoration locates the blocks by these exact strings, so they
// must not change between a forward run and the reverse run that reads
// its output.
const (
	NotesMarkerHeader = "START OF COPIED NOTES FROM SOURCE DOCX"
	NotesMarkerFooter = "END OF COPIED NOTES FROM SOURCE DOCX"

	MetadataMarkerHeader = "START OF JSON METADATA FROM SOURCE DOCUMENT"
	MetadataMarkerFooter = "END OF JSON METADATA FROM SOURCE DOCUMENT"
)

// timestampLayout renders annotation timestamps in speaker notes.
const timestampLayout = "Monday, January 02, 2006 at 03:04 PM"

var separator = strings.Repeat("=", 40)

// MergeSpeakerNotes renders a chunk's annotations as the human-readable
// notes block: comments first, then footnotes, then endnotes, each
// section under its own header. Returns "" when no enabled type has
// content. Anchoring is not preserved; neither comment text ranges nor
// footnote/endnote reference markers are reinserted into the body.
func MergeSpeakerNotes(c docmodel.Chunk, cfg config.Config) string {
	hasContent := (cfg.DisplayComments && len(c.Comments) > 0) ||
		(cfg.DisplayFootnotes && len(c.Footnotes) > 0) ||
		(cfg.DisplayEndnotes && len(c.Endnotes) > 0)
	if !hasContent {
		return ""
	}

	var b strings.Builder
	// Blank lines push the copied block below where a presenter types.
	b.WriteString("\n\n\n\n\n\n\n" + NotesMarkerHeader + "\n" + separator + "\n")

	if cfg.DisplayComments && len(c.Comments) > 0 {
		writeComments(&b, c.Comments, cfg)
	}
	if cfg.DisplayFootnotes && len(c.Footnotes) > 0 {
		writeNotes(&b, c.Footnotes, "FOOTNOTES FROM SOURCE DOCUMENT")
	}
	if cfg.DisplayEndnotes && len(c.Endnotes) > 0 {
		writeNotes(&b, c.Endnotes, "ENDNOTES FROM SOURCE DOCUMENT")
	}

	b.WriteString(separator + "\n" + NotesMarkerFooter)
	return b.String()
}

func writeComments(b *strings.Builder, comments []docmodel.Annotation, cfg config.Config) {
	ordered := comments
	if cfg.CommentsSortByDate {
		ordered = make([]docmodel.Annotation, len(comments))
		copy(ordered, comments)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Timestamp.Before(ordered[j].Timestamp)
		})
	}

	b.WriteString("COMMENTS FROM SOURCE DOCUMENT:\n" + separator)

	for i, cm := range ordered {
		text := strings.TrimRight(cm.Text(), " \t\r\n")
		if text == "" {
			continue
		}
		if cfg.DisplayAnnotationMetadata {
			author := cm.Author
			if author == "" {
				author = "Unknown Author"
			}
			when := "Unknown Date"
			if !cm.Timestamp.IsZero() {
				when = cm.Timestamp.Format(timestampLayout)
			}
			fmt.Fprintf(b, "\n %d. %s (%s):\n", i+1, author, when)
		} else {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}
	b.WriteString("\n")
}

func writeNotes(b *strings.Builder, notes []docmodel.Annotation, header string) {
	b.WriteString("\n" + header + ":\n" + separator)

	for _, n := range notes {
		fmt.Fprintf(b, "\n%s. %s\n", n.ID, strings.TrimSpace(n.Text()))
		if len(n.Hyperlinks) > 0 {
			b.WriteString("\nHyperlinks:")
			for _, url := range n.Hyperlinks {
				b.WriteString("\n" + url)
			}
			b.WriteString("\n")
		}
	}
}
