package builder

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/slidegest/internal/annotations"
	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/docmodel"
	"github.com/dgallion1/slidegest/internal/formatting"
)

// Comment header prefixed to speaker-note text carried back into the
// document.
const userNotesCommentHeader = "Copied from the PPTX Speaker Notes: \n\n"

// Comment header for annotation metadata that could not be re-anchored
// to body text.
const unmatchedCommentHeader = "We found metadata for these annotations (comments, footnotes, or endnotes), " +
	"but weren't able to match them to specific text in this paragraph: \n\n"

// Reconstructor turns a slide deck back into a document. Paragraph
// order strictly follows slide order; heading levels, highlight spans,
// and annotations are restored from each slide's metadata snapshot when
// present, and by heuristic text matching otherwise.
type Reconstructor struct {
	cfg    config.Config
	mapper *formatting.Mapper
	log    *slog.Logger

	// headingCache maps heading text seen in snapshots earlier in the
	// same run to its level, for slides whose own snapshot is missing.
	headingCache map[string]int
}

// NewReconstructor returns a document reconstructor for one reverse
// call.
func NewReconstructor(cfg config.Config, log *slog.Logger) *Reconstructor {
	if log == nil {
		log = slog.Default()
	}
	return &Reconstructor{
		cfg:          cfg,
		mapper:       formatting.NewMapper(cfg),
		log:          log,
		headingCache: make(map[string]int),
	}
}

// Reconstruct produces a document from the deck's slides, in order.
// Restored comment anchors may drift to a nearby paragraph when the
// snapshot reference text is not found verbatim.
func (r *Reconstructor) Reconstruct(deck *deckmodel.Deck) (*docmodel.Document, []docmodel.Warning, error) {
	doc := &docmodel.Document{}
	var warnings []docmodel.Warning

	for si, slide := range deck.Slides {
		notes := annotations.SplitSpeakerNotes(slide.Notes)
		if notes.MetadataErr != nil {
			warnings = append(warnings, docmodel.Warnf(docmodel.WarnAnnotationRestore,
				"slide %d: %v; annotations restored as plain text", si+1, notes.MetadataErr))
		}

		r.restoreSlide(slide, notes, doc)
	}

	return doc, warnings, nil
}

func (r *Reconstructor) restoreSlide(slide deckmodel.Slide, notes annotations.SlideNotes, doc *docmodel.Document) {
	matched := make(map[string]bool)
	firstOrdinal := len(doc.Paragraphs)

	offset := 0 // rune offset into the newline-joined slide body
	for pi, tp := range slide.Body {
		if pi > 0 {
			offset++
		}

		para := r.mapper.ParaToDoc(tp)
		para.Ordinal = len(doc.Paragraphs)

		for _, tr := range tp.Runs {
			run := r.mapper.RunToDoc(tr)
			n := utf8.RuneCountInString(run.Text)

			if notes.HasSnapshot && r.cfg.ExperimentalFormattingOn {
				r.applyHighlightSpans(&run, notes.Snapshot.Highlights, offset, offset+n)
			}

			if notes.HasSnapshot {
				r.matchComments(run.Text, para.Ordinal, notes.Snapshot.Comments, matched, doc)
			}

			offset += n
			para.Runs = append(para.Runs, run)
		}

		r.applyHeading(&para, notes)
		doc.Paragraphs = append(doc.Paragraphs, para)
	}

	lastOrdinal := len(doc.Paragraphs) - 1
	if lastOrdinal < firstOrdinal {
		lastOrdinal = firstOrdinal
	}

	r.restoreNotesAnnotations(slide, notes, matched, lastOrdinal, doc)
}

// applyHeading sets the paragraph's heading level from the snapshot's
// heading records by exact text match, falling back to heading text
// remembered from earlier slides in the same run. The fallback is
// approximate by design.
func (r *Reconstructor) applyHeading(para *docmodel.Paragraph, notes annotations.SlideNotes) {
	text := strings.TrimSpace(para.Text())
	if text == "" {
		return
	}

	if notes.HasSnapshot {
		for _, h := range notes.Snapshot.Headings {
			r.headingCache[strings.TrimSpace(h.Text)] = h.Level
			if strings.TrimSpace(h.Text) == text {
				para.HeadingLevel = h.Level
				return
			}
		}
		return
	}

	if level, ok := r.headingCache[text]; ok {
		para.HeadingLevel = level
	}
}

// applyHighlightSpans restores a run's highlight when its body-text
// range overlaps a recorded span.
func (r *Reconstructor) applyHighlightSpans(run *docmodel.Run, spans []annotations.HighlightSpan, start, end int) {
	if run.Highlight != docmodel.HighlightNone {
		return
	}
	for _, s := range spans {
		if s.Start < end && start < s.End {
			run.Highlight = s.Color
			return
		}
	}
}

// matchComments anchors snapshot comments whose reference text appears
// in the run text. A comment is applied at most once; several comments
// may anchor to the same run.
func (r *Reconstructor) matchComments(runText string, ordinal int, comments []docmodel.Annotation, matched map[string]bool, doc *docmodel.Document) {
	for _, cm := range comments {
		if matched[cm.ID] || cm.RefText == "" {
			continue
		}
		if strings.Contains(runText, cm.RefText) {
			restored := cm
			restored.Anchor = ordinal
			doc.Comments = append(doc.Comments, restored)
			matched[cm.ID] = true
		}
	}
}

// restoreNotesAnnotations carries the remaining speaker-note content
// into the document: footnotes and endnotes as typed annotations on the
// slide's last paragraph, unmatched comments combined into one comment,
// and the presenter's own notes as another comment.
func (r *Reconstructor) restoreNotesAnnotations(slide deckmodel.Slide, notes annotations.SlideNotes, matched map[string]bool, anchor int, doc *docmodel.Document) {
	if len(slide.Body) == 0 {
		return
	}

	if notes.HasSnapshot {
		for _, f := range notes.Snapshot.Footnotes {
			restored := f
			restored.Anchor = anchor
			doc.Footnotes = append(doc.Footnotes, restored)
		}
		for _, e := range notes.Snapshot.Endnotes {
			restored := e
			restored.Anchor = anchor
			doc.Endnotes = append(doc.Endnotes, restored)
		}

		var unmatchedParts []string
		for _, cm := range notes.Snapshot.Comments {
			if matched[cm.ID] || strings.TrimSpace(cm.Text()) == "" {
				continue
			}
			unmatchedParts = append(unmatchedParts, "Comment: "+cm.Text())
		}
		if len(unmatchedParts) > 0 {
			doc.Comments = append(doc.Comments, docmodel.Annotation{
				Type:   docmodel.AnnotationComment,
				Anchor: anchor,
				Runs: []docmodel.Run{{
					Text: unmatchedCommentHeader + strings.Join(unmatchedParts, "\n\n"),
				}},
			})
		}
	}

	if notes.UserNotes != "" {
		doc.Comments = append(doc.Comments, docmodel.Annotation{
			Type:   docmodel.AnnotationComment,
			Anchor: anchor,
			Runs:   []docmodel.Run{{Text: userNotesCommentHeader + notes.UserNotes}},
		})
	} else if notes.MetadataErr != nil {
		// Unreadable metadata with nothing else to carry still leaves a
		// trace in the document.
		doc.Comments = append(doc.Comments, docmodel.Annotation{
			Type:   docmodel.AnnotationComment,
			Anchor: anchor,
			Runs:   []docmodel.Run{{Text: "Speaker-note metadata was present but could not be read."}},
		})
	}
}
