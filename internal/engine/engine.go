// Package engine exposes the two conversion entry points. Both are
// synchronous and single-threaded: a call either runs to completion or
// returns a terminal failure with no partial output. The context is
// carried for logging correlation only; there is no mid-call
// cancellation.
package engine

import (
	"context"
	"fmt"

	"github.com/dgallion1/slidegest/internal/annotations"
	"github.com/dgallion1/slidegest/internal/builder"
	"github.com/dgallion1/slidegest/internal/chunker"
	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/docmodel"
)

// Convert turns a document into a slide deck under the given
// configuration: chunk the paragraphs, attach annotations, apply the
// page-range filter, then build one slide per chunk.
func Convert(ctx context.Context, rc *RunContext, doc *docmodel.Document, tmpl deckmodel.Template, cfg config.Config) (*deckmodel.Deck, []docmodel.Warning, error) {
	if rc == nil {
		rc = NewRunContext("", cfg, nil)
	}
	log := rc.Logger()

	rc.setState(StateLoading)
	if err := cfg.Validate(); err != nil {
		rc.setState(StateFailed)
		return nil, nil, fmt.Errorf("%w: %v", ErrInputValidation, err)
	}
	if doc == nil || len(doc.Paragraphs) == 0 {
		rc.setState(StateFailed)
		return nil, nil, fmt.Errorf("%w: document has no paragraphs", ErrInputValidation)
	}
	if !tmpl.HasLayout(deckmodel.RequiredLayoutName) {
		rc.setState(StateFailed)
		return nil, nil, fmt.Errorf("%w: template %q lacks layout %q",
			ErrTemplateValidation, tmpl.Name, deckmodel.RequiredLayoutName)
	}

	rc.setState(StateTransforming)
	chunks := chunker.Split(doc.Paragraphs, cfg)
	annotations.AttachToChunks(chunks, doc)
	chunks = chunker.FilterPageRange(chunks, cfg.RangeStart, cfg.RangeEnd)
	if len(chunks) == 0 {
		rc.setState(StateFailed)
		return nil, nil, fmt.Errorf("%w: page range [%d,%d] selected no content",
			ErrConversion, cfg.RangeStart, cfg.RangeEnd)
	}
	log.InfoContext(ctx, "document chunked",
		"strategy", cfg.ChunkType, "chunks", len(chunks), "paragraphs", len(doc.Paragraphs))

	rc.setState(StateWriting)
	deck, warnings, err := builder.NewBuilder(cfg, log).Build(chunks, tmpl)
	if err != nil {
		rc.setState(StateFailed)
		return nil, nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	rc.setState(StateDone)
	log.InfoContext(ctx, "conversion complete", "slides", len(deck.Slides), "warnings", len(warnings))
	return deck, warnings, nil
}

// Reverse turns a slide deck back into a document, restoring headings,
// highlight spans, and annotations from speaker-note metadata where
// present. The reconstruction is lossy by design.
func Reverse(ctx context.Context, rc *RunContext, deck *deckmodel.Deck, cfg config.Config) (*docmodel.Document, []docmodel.Warning, error) {
	if rc == nil {
		rc = NewRunContext("", cfg, nil)
	}
	log := rc.Logger()

	rc.setState(StateLoading)
	if err := cfg.Validate(); err != nil {
		rc.setState(StateFailed)
		return nil, nil, fmt.Errorf("%w: %v", ErrInputValidation, err)
	}
	if deck == nil || len(deck.Slides) == 0 {
		rc.setState(StateFailed)
		return nil, nil, fmt.Errorf("%w: deck has no slides", ErrInputValidation)
	}

	rc.setState(StateTransforming)
	doc, warnings, err := builder.NewReconstructor(cfg, log).Reconstruct(deck)
	if err != nil {
		rc.setState(StateFailed)
		return nil, nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	rc.setState(StateDone)
	log.InfoContext(ctx, "reverse conversion complete",
		"paragraphs", len(doc.Paragraphs), "warnings", len(warnings))
	return doc, warnings, nil
}
