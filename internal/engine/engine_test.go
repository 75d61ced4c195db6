package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/slidegest/internal/annotations"
	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/docmodel"
)

func testDocument() *docmodel.Document {
	return &docmodel.Document{
		Paragraphs: []docmodel.Paragraph{
			{Ordinal: 0, HeadingLevel: 1, Runs: []docmodel.Run{{Text: "Introduction"}}},
			{Ordinal: 1, Runs: []docmodel.Run{
				{Text: "opening words with a "},
				{Text: "highlighted phrase", Highlight: docmodel.HighlightYellow},
			}},
			{Ordinal: 2, Runs: []docmodel.Run{{Text: "closing words"}}},
		},
		Comments: []docmodel.Annotation{{
			Type: docmodel.AnnotationComment, ID: "c1", Anchor: 1,
			RefText: "opening words",
			Runs:    []docmodel.Run{{Text: "tighten this up"}},
		}},
	}
}

func TestConvert_ParagraphStrategy(t *testing.T) {
	cfg := config.Default()
	rc := NewRunContext("", cfg, nil)

	deck, warnings, err := Convert(context.Background(), rc, testDocument(), deckmodel.DefaultTemplate(), cfg)
	require.NoError(t, err)
	require.Len(t, deck.Slides, 3)
	assert.Empty(t, warnings)
	assert.Equal(t, StateDone, rc.State())
	assert.Equal(t, "Introduction", deck.Slides[0].BodyText())
}

func TestConvert_InvalidConfig(t *testing.T) {
	cfg := config.Config{ChunkType: "sideways"}
	rc := NewRunContext("", cfg, nil)

	_, _, err := Convert(context.Background(), rc, testDocument(), deckmodel.DefaultTemplate(), cfg)
	require.ErrorIs(t, err, ErrInputValidation)
	assert.Equal(t, StateFailed, rc.State())
}

func TestConvert_EmptyDocument(t *testing.T) {
	cfg := config.Default()

	_, _, err := Convert(context.Background(), nil, &docmodel.Document{}, deckmodel.DefaultTemplate(), cfg)
	require.ErrorIs(t, err, ErrInputValidation)
}

func TestConvert_MissingLayout(t *testing.T) {
	cfg := config.Default()
	tmpl := deckmodel.Template{Name: "corporate", LayoutNames: []string{"title", "two-column"}}

	_, _, err := Convert(context.Background(), nil, testDocument(), tmpl, cfg)
	require.ErrorIs(t, err, ErrTemplateValidation)
}

func TestConvert_PageRangeSelectsNothing(t *testing.T) {
	cfg := config.Default()
	cfg.RangeStart, cfg.RangeEnd = 5, 9

	_, _, err := Convert(context.Background(), nil, testDocument(), deckmodel.DefaultTemplate(), cfg)
	require.ErrorIs(t, err, ErrConversion)
}

func TestConvert_AnnotationsTravelWithChunk(t *testing.T) {
	cfg := config.Default()
	cfg.DisplayComments = true

	deck, _, err := Convert(context.Background(), nil, testDocument(), deckmodel.DefaultTemplate(), cfg)
	require.NoError(t, err)

	// The comment is anchored to ordinal 1, which lands on the second
	// slide under the paragraph strategy.
	assert.NotContains(t, deck.Slides[0].Notes, "tighten this up")
	assert.Contains(t, deck.Slides[1].Notes, "tighten this up")
}

func TestReverse_EmptyDeck(t *testing.T) {
	cfg := config.Default()

	_, _, err := Reverse(context.Background(), nil, &deckmodel.Deck{}, cfg)
	require.ErrorIs(t, err, ErrInputValidation)
}

func TestReverse_MalformedMetadataIsNonFatal(t *testing.T) {
	cfg := config.Default()
	sep := strings.Repeat("=", 40)
	deck := &deckmodel.Deck{Slides: []deckmodel.Slide{{
		Body: []deckmodel.TextPara{{Runs: []deckmodel.TextRun{{Text: "body"}}}},
		Notes: annotations.MetadataMarkerHeader + "\n" + sep + "\n{oops\n" + sep + "\n" +
			annotations.MetadataMarkerFooter,
	}}}
	rc := NewRunContext("", cfg, nil)

	doc, warnings, err := Reverse(context.Background(), rc, deck, cfg)
	require.NoError(t, err)
	assert.Equal(t, StateDone, rc.State())

	require.Len(t, warnings, 1)
	assert.Equal(t, docmodel.WarnAnnotationRestore, warnings[0].Code)
	assert.Len(t, doc.Comments, 1)
}

func TestRoundTripIdempotence(t *testing.T) {
	cfg := config.Default()
	cfg.PreserveMetadataInSpeakerNotes = true

	ctx := context.Background()
	tmpl := deckmodel.DefaultTemplate()

	first, _, err := Convert(ctx, nil, testDocument(), tmpl, cfg)
	require.NoError(t, err)

	restored, _, err := Reverse(ctx, nil, first, cfg)
	require.NoError(t, err)

	second, _, err := Convert(ctx, nil, restored, tmpl, cfg)
	require.NoError(t, err)

	require.Len(t, second.Slides, len(first.Slides))
	for i := range first.Slides {
		assert.Equal(t, first.Slides[i].BodyText(), second.Slides[i].BodyText(), "slide %d body", i)

		a := annotations.SplitSpeakerNotes(first.Slides[i].Notes)
		b := annotations.SplitSpeakerNotes(second.Slides[i].Notes)
		assert.Equal(t, a.Snapshot.Headings, b.Snapshot.Headings, "slide %d headings", i)
		assert.Equal(t, a.Snapshot.Highlights, b.Snapshot.Highlights, "slide %d highlights", i)
	}
}

func TestRunContext_Identifiers(t *testing.T) {
	cfg := config.Default()
	rc := NewRunContext("", cfg, nil)

	assert.Len(t, rc.SessionID, 8)
	assert.Len(t, rc.RunID, 8)
	assert.Equal(t, StateIdle, rc.State())

	// A second run in the same session keeps the session id but gets a
	// fresh run id.
	rc2 := NewRunContext(rc.SessionID, cfg, nil)
	assert.Equal(t, rc.SessionID, rc2.SessionID)
	assert.NotEqual(t, rc.RunID, rc2.RunID)
}
