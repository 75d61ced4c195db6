package annotations

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/slidegest/internal/docmodel"
)

// HeadingRecord preserves a heading paragraph's text and level so the
// reverse pipeline can restore the style by exact text match.
type HeadingRecord struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// HighlightSpan records a highlighted range of the slide body text, by
// rune offset into the newline-joined body form.
type HighlightSpan struct {
	Start int                `json:"start"`
	End   int                `json:"end"`
	Color docmodel.Highlight `json:"color"`
}

// Snapshot is the per-slide metadata record written into speaker notes
// when round-trip preservation is on. It must be sufficient to restore
// heading levels, highlight spans, and annotation bodies without the
// original source document.
type Snapshot struct {
	Headings   []HeadingRecord `json:"headings,omitempty"`
	Highlights []HighlightSpan `json:"highlights,omitempty"`

	Comments  []docmodel.Annotation `json:"comments,omitempty"`
	Footnotes []docmodel.Annotation `json:"footnotes,omitempty"`
	Endnotes  []docmodel.Annotation `json:"endnotes,omitempty"`
}

// IsEmpty reports whether the snapshot carries nothing worth writing.
func (s Snapshot) IsEmpty() bool {
	return len(s.Headings) == 0 && len(s.Highlights) == 0 &&
		len(s.Comments) == 0 && len(s.Footnotes) == 0 && len(s.Endnotes) == 0
}

// Annotations returns all annotation records in merge order.
func (s Snapshot) Annotations() []docmodel.Annotation {
	out := make([]docmodel.Annotation, 0, len(s.Comments)+len(s.Footnotes)+len(s.Endnotes))
	out = append(out, s.Comments...)
	out = append(out, s.Footnotes...)
	out = append(out, s.Endnotes...)
	return out
}

// AppendMetadata appends the snapshot, wrapped in the metadata marker
// lines, to the given speaker-note text. Empty snapshots append
// nothing.
func AppendMetadata(notes string, snap Snapshot) (string, error) {
	if snap.IsEmpty() {
		return notes, nil
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return notes, fmt.Errorf("encode slide metadata: %w", err)
	}

	var b strings.Builder
	b.WriteString(notes)
	b.WriteString("\n\n\n\n\n\n\n" + MetadataMarkerHeader + "\n" + separator + "\n\n")
	b.Write(payload)
	b.WriteString("\n" + separator + "\n" + MetadataMarkerFooter)
	return b.String(), nil
}

// SlideNotes is the parsed form of a slide's speaker-note text:
// whatever the presenter typed, plus the recovered snapshot if a
// metadata block was present and valid.
type SlideNotes struct {
	UserNotes string

	Snapshot    Snapshot
	HasSnapshot bool

	// MetadataErr is set when a metadata block was found but its JSON
	// payload failed to parse. Restoration degrades to best-effort.
	MetadataErr error
}

// SplitSpeakerNotes separates a slide's raw speaker-note text into the
// user-authored portion and the recovered metadata snapshot. Both the
// metadata block and the copied-notes block are stripped from the user
// notes whether or not they parse.
func SplitSpeakerNotes(text string) SlideNotes {
	var out SlideNotes

	jsonStart := strings.Index(text, MetadataMarkerHeader)
	jsonEnd := strings.Index(text, MetadataMarkerFooter)
	notesStart := strings.Index(text, NotesMarkerHeader)
	notesEnd := strings.Index(text, NotesMarkerFooter)

	if jsonStart != -1 && jsonEnd != -1 && jsonEnd > jsonStart {
		payload := text[jsonStart+len(MetadataMarkerHeader) : jsonEnd]
		payload = strings.TrimSpace(strings.Trim(strings.TrimSpace(payload), "="))
		if err := json.Unmarshal([]byte(payload), &out.Snapshot); err != nil {
			out.MetadataErr = fmt.Errorf("decode slide metadata: %w", err)
		} else {
			out.HasSnapshot = true
		}
	}

	var remove [][2]int
	if jsonStart != -1 && jsonEnd != -1 && jsonEnd > jsonStart {
		remove = append(remove, [2]int{jsonStart, jsonEnd + len(MetadataMarkerFooter)})
	}
	if notesStart != -1 && notesEnd != -1 && notesEnd > notesStart {
		remove = append(remove, [2]int{notesStart, notesEnd + len(NotesMarkerFooter)})
	}

	out.UserNotes = strings.TrimSpace(removeRanges(text, remove))
	return out
}

// removeRanges cuts the given [start, end) index ranges out of text,
// merging overlaps first and cutting back to front so earlier offsets
// stay valid.
func removeRanges(text string, ranges [][2]int) string {
	if len(ranges) == 0 {
		return text
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	merged := [][2]int{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r[0] <= last[1] {
			if r[1] > last[1] {
				last[1] = r[1]
			}
			continue
		}
		merged = append(merged, r)
	}

	for i := len(merged) - 1; i >= 0; i-- {
		text = text[:merged[i][0]] + text[merged[i][1]:]
	}
	return text
}
