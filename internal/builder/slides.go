// Package builder assembles chunks into slides (forward) and slides
// back into a document (reverse). Both directions run sequentially and
// collect non-fatal warnings alongside the produced result.
package builder

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/dgallion1/slidegest/internal/annotations"
	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/docmodel"
	"github.com/dgallion1/slidegest/internal/formatting"
)

// Builder turns ordered chunks into an ordered slide deck. Slide order
// strictly follows chunk order.
type Builder struct {
	cfg    config.Config
	mapper *formatting.Mapper
	log    *slog.Logger
}

// NewBuilder returns a slide builder for one conversion call.
func NewBuilder(cfg config.Config, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{cfg: cfg, mapper: formatting.NewMapper(cfg), log: log}
}

// Build produces one slide per chunk, in chunk order, writing speaker
// notes per the annotation display flags and appending the metadata
// snapshot when round-trip preservation is on.
func (b *Builder) Build(chunks []docmodel.Chunk, tmpl deckmodel.Template) (*deckmodel.Deck, []docmodel.Warning, error) {
	deck := &deckmodel.Deck{
		Template: tmpl,
		Slides:   make([]deckmodel.Slide, 0, len(chunks)),
	}
	var warnings []docmodel.Warning

	for _, chunk := range chunks {
		if len(chunk.Paragraphs) == 0 {
			return nil, nil, fmt.Errorf("chunk %d has no paragraphs", chunk.Index)
		}

		slide, ws, err := b.buildSlide(chunk)
		if err != nil {
			return nil, nil, fmt.Errorf("build slide for chunk %d: %w", chunk.Index, err)
		}
		warnings = append(warnings, ws...)
		deck.Slides = append(deck.Slides, slide)
	}

	return deck, warnings, nil
}

func (b *Builder) buildSlide(chunk docmodel.Chunk) (deckmodel.Slide, []docmodel.Warning, error) {
	var slide deckmodel.Slide
	var warnings []docmodel.Warning

	snap := annotations.Snapshot{}
	offset := 0 // rune offset into the newline-joined slide body

	for pi, para := range chunk.Paragraphs {
		if pi > 0 {
			offset++ // paragraph separator
		}

		tp := b.mapper.ParaToSlide(para)

		if para.HeadingLevel > 0 {
			snap.Headings = append(snap.Headings, annotations.HeadingRecord{
				Text:  para.Text(),
				Level: para.HeadingLevel,
			})
			styled := false
			for _, run := range para.Runs {
				if run.HasInlineStyling() {
					styled = true
				}
				offset = b.appendHighlightSpan(&snap, run, offset)
				tp.Runs = append(tp.Runs, b.mapper.HeadingRunToSlide(run, para.HeadingLevel))
			}
			if styled {
				warnings = append(warnings, docmodel.Warnf(docmodel.WarnHeadingFormattingLoss,
					"inline formatting on heading %q was not carried to the slide", para.Text()))
			}
			slide.Body = append(slide.Body, tp)
			continue
		}

		for _, run := range para.Runs {
			if run.FieldCodeURL != "" {
				run.Text = fmt.Sprintf(" [Link: %s] ", run.FieldCodeURL)
				warnings = append(warnings, docmodel.Warnf(docmodel.WarnFieldCodeHyperlink,
					"field-code hyperlink %s copied as plain text", run.FieldCodeURL))
			}
			offset = b.appendHighlightSpan(&snap, run, offset)
			tp.Runs = append(tp.Runs, b.mapper.RunToSlide(run))
		}
		slide.Body = append(slide.Body, tp)
	}

	notes := annotations.MergeSpeakerNotes(chunk, b.cfg)

	if b.cfg.PreserveMetadataInSpeakerNotes {
		snap.Comments = chunk.Comments
		snap.Footnotes = chunk.Footnotes
		snap.Endnotes = chunk.Endnotes

		withMeta, err := annotations.AppendMetadata(notes, snap)
		if err != nil {
			return deckmodel.Slide{}, nil, err
		}
		notes = withMeta
	}
	slide.Notes = notes

	return slide, warnings, nil
}

// appendHighlightSpan records the run's highlight as an offset span
// over the slide body text and returns the offset after the run.
func (b *Builder) appendHighlightSpan(snap *annotations.Snapshot, run docmodel.Run, offset int) int {
	n := utf8.RuneCountInString(run.Text)
	if run.Highlight != docmodel.HighlightNone {
		snap.Highlights = append(snap.Highlights, annotations.HighlightSpan{
			Start: offset,
			End:   offset + n,
			Color: run.Highlight,
		})
	}
	return offset + n
}
