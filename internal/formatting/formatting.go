// Package formatting maps run and paragraph styling between the
// word-processing model and the slide model. The two models disagree
// on underline styles, highlight colors, alignment variants, and
// super/subscript representation; every lossy decision lives here.
package formatting

import (
	"github.com/dgallion1/slidegest/internal/config"
	"github.com/dgallion1/slidegest/internal/deckmodel"
	"github.com/dgallion1/slidegest/internal/docmodel"
)

// underlineToDeck maps word underline styles to drawing-ML u tokens.
// Word-only variants fall back to a single underline.
var underlineToDeck = map[docmodel.Underline]string{
	docmodel.UnderlineSingle:     deckmodel.UnderlineSingle,
	docmodel.UnderlineDouble:     deckmodel.UnderlineDouble,
	docmodel.UnderlineThick:      deckmodel.UnderlineHeavy,
	docmodel.UnderlineDotted:     deckmodel.UnderlineDotted,
	docmodel.UnderlineDash:       deckmodel.UnderlineDash,
	docmodel.UnderlineDotDash:    deckmodel.UnderlineDotDash,
	docmodel.UnderlineDotDotDash: deckmodel.UnderlineDotDotDash,
	docmodel.UnderlineWavy:       deckmodel.UnderlineWavy,
	docmodel.UnderlineWavyDouble: deckmodel.UnderlineWavyDouble,
	docmodel.UnderlineWords:      deckmodel.UnderlineSingle,
}

var underlineToDoc = map[string]docmodel.Underline{
	deckmodel.UnderlineSingle:     docmodel.UnderlineSingle,
	deckmodel.UnderlineDouble:     docmodel.UnderlineDouble,
	deckmodel.UnderlineHeavy:      docmodel.UnderlineThick,
	deckmodel.UnderlineDotted:     docmodel.UnderlineDotted,
	deckmodel.UnderlineDash:       docmodel.UnderlineDash,
	deckmodel.UnderlineDotDash:    docmodel.UnderlineDotDash,
	deckmodel.UnderlineDotDotDash: docmodel.UnderlineDotDotDash,
	deckmodel.UnderlineWavy:       docmodel.UnderlineWavy,
	deckmodel.UnderlineWavyDouble: docmodel.UnderlineWavyDouble,
}

// highlightToHex is Word's fixed 16-color highlight palette.
var highlightToHex = map[docmodel.Highlight]string{
	docmodel.HighlightYellow:      "FFFF00",
	docmodel.HighlightPink:        "FF00FF",
	docmodel.HighlightBlack:       "000000",
	docmodel.HighlightWhite:       "FFFFFF",
	docmodel.HighlightBlue:        "0000FF",
	docmodel.HighlightBrightGreen: "00FF00",
	docmodel.HighlightDarkBlue:    "000080",
	docmodel.HighlightDarkRed:     "800000",
	docmodel.HighlightDarkYellow:  "808000",
	docmodel.HighlightGray25:      "C0C0C0",
	docmodel.HighlightGray50:      "808080",
	docmodel.HighlightGreen:       "008000",
	docmodel.HighlightRed:         "FF0000",
	docmodel.HighlightTeal:        "008080",
	docmodel.HighlightTurquoise:   "00FFFF",
	docmodel.HighlightViolet:      "800080",
}

var highlightFromHex = func() map[string]docmodel.Highlight {
	m := make(map[string]docmodel.Highlight, len(highlightToHex))
	for k, v := range highlightToHex {
		m[v] = k
	}
	return m
}()

// alignToDeck collapses Word's justify variants onto the slide model's
// smaller set.
var alignToDeck = map[docmodel.Alignment]deckmodel.Align{
	docmodel.AlignLeft:       deckmodel.AlignLeft,
	docmodel.AlignCenter:     deckmodel.AlignCenter,
	docmodel.AlignRight:      deckmodel.AlignRight,
	docmodel.AlignJustify:    deckmodel.AlignJustify,
	docmodel.AlignJustifyHi:  deckmodel.AlignJustify,
	docmodel.AlignJustifyMed: deckmodel.AlignJustify,
	docmodel.AlignJustifyLow: deckmodel.AlignJustifyLow,
	docmodel.AlignDistribute: deckmodel.AlignDistribute,
	docmodel.AlignThai:       deckmodel.AlignThai,
}

var alignToDoc = map[deckmodel.Align]docmodel.Alignment{
	deckmodel.AlignLeft:       docmodel.AlignLeft,
	deckmodel.AlignCenter:     docmodel.AlignCenter,
	deckmodel.AlignRight:      docmodel.AlignRight,
	deckmodel.AlignJustify:    docmodel.AlignJustify,
	deckmodel.AlignJustifyLow: docmodel.AlignJustifyLow,
	deckmodel.AlignDistribute: docmodel.AlignDistribute,
	deckmodel.AlignThai:       docmodel.AlignThai,
}

// Slide text sizes applied to heading paragraphs, by heading level.
// Body text sizes are never copied explicitly so the destination
// layout's autosizer keeps working.
var headingSizePt = map[int]float64{
	1: 32,
	2: 28,
	3: 24,
	4: 22,
	5: 20,
	6: 20,
}

// HeadingSizePt returns the slide font size for a heading level.
func HeadingSizePt(level int) float64 {
	if s, ok := headingSizePt[level]; ok {
		return s
	}
	return headingSizePt[6]
}

// HighlightHex converts a named highlight color to its hex value, or
// "" when unknown.
func HighlightHex(h docmodel.Highlight) string {
	return highlightToHex[h]
}

// HighlightFromHex converts a hex value back to the named color, or
// HighlightNone when the value is not in the palette.
func HighlightFromHex(hex string) docmodel.Highlight {
	return highlightFromHex[hex]
}

// Mapper applies the basic and experimental attribute sets in both
// directions under one config snapshot.
type Mapper struct {
	cfg config.Config
}

// NewMapper returns a mapper bound to the given config.
func NewMapper(cfg config.Config) *Mapper {
	return &Mapper{cfg: cfg}
}

// RunToSlide copies a body run into the slide model. The basic set
// (bold, italic, underline, strikethrough, super/subscript, size) is
// always copied; highlight, inline color, caps, and explicit font
// family overrides only under the experimental flag.
func (m *Mapper) RunToSlide(src docmodel.Run) deckmodel.TextRun {
	out := deckmodel.TextRun{
		Text:         src.Text,
		Bold:         src.Bold,
		Italic:       src.Italic,
		SizePt:       src.SizePt,
		HyperlinkURL: src.HyperlinkURL,
	}

	if src.Underline != docmodel.UnderlineNone {
		if tok, ok := underlineToDeck[src.Underline]; ok {
			out.Underline = tok
		} else {
			out.Underline = deckmodel.UnderlineSingle
		}
	}

	switch {
	case src.DoubleStrike:
		out.Strike = deckmodel.StrikeDouble
	case src.Strike:
		out.Strike = deckmodel.StrikeSingle
	}

	out.Baseline = baselineFor(src, src.SizePt)

	if m.cfg.ExperimentalFormattingOn {
		out.Color = src.Color
		out.Highlight = highlightToHex[src.Highlight]
		out.FontFamily = src.FontFamily
		switch {
		case src.AllCaps:
			out.Cap = deckmodel.CapAll
		case src.SmallCaps:
			out.Cap = deckmodel.CapSmall
		}
	}

	return out
}

// HeadingRunToSlide copies a run belonging to a heading paragraph.
// Heading styling comes from paragraph/style metadata, not from the
// run, so inline character formatting is intentionally dropped; only
// the text and the per-level heading size survive. See the
// heading-formatting-loss warning emitted by the builder.
func (m *Mapper) HeadingRunToSlide(src docmodel.Run, level int) deckmodel.TextRun {
	return deckmodel.TextRun{
		Text:         src.Text,
		Bold:         true,
		SizePt:       HeadingSizePt(level),
		HyperlinkURL: src.HyperlinkURL,
	}
}

// ParaToSlide maps paragraph-level attributes. Alignment is part of
// the basic set; indentation and spacing are experimental.
func (m *Mapper) ParaToSlide(src docmodel.Paragraph) deckmodel.TextPara {
	out := deckmodel.TextPara{
		Align: alignToDeck[src.Alignment],
	}
	if m.cfg.ExperimentalFormattingOn {
		out.IndentLeftPt = src.IndentLeftPt
		out.SpaceBeforePt = src.SpaceBeforePt
		out.SpaceAfterPt = src.SpaceAfterPt
	}
	return out
}

// RunToDoc copies a slide run back onto a reconstructed document run,
// applying the same basic/experimental split as the forward direction.
func (m *Mapper) RunToDoc(src deckmodel.TextRun) docmodel.Run {
	out := docmodel.Run{
		Text:         src.Text,
		Bold:         src.Bold,
		Italic:       src.Italic,
		SizePt:       src.SizePt,
		HyperlinkURL: src.HyperlinkURL,
	}

	if src.Underline != deckmodel.UnderlineNone {
		if u, ok := underlineToDoc[src.Underline]; ok {
			out.Underline = u
		} else {
			out.Underline = docmodel.UnderlineSingle
		}
	}

	switch src.Strike {
	case deckmodel.StrikeSingle:
		out.Strike = true
	case deckmodel.StrikeDouble:
		out.DoubleStrike = true
	}

	if src.Baseline < 0 {
		out.Subscript = true
	} else if src.Baseline > 0 {
		out.Superscript = true
	}

	if m.cfg.ExperimentalFormattingOn {
		out.Color = src.Color
		out.Highlight = highlightFromHex[src.Highlight]
		out.FontFamily = src.FontFamily
		switch src.Cap {
		case deckmodel.CapAll:
			out.AllCaps = true
		case deckmodel.CapSmall:
			out.SmallCaps = true
		}
	}

	return out
}

// ParaToDoc maps slide paragraph attributes back onto a document
// paragraph. Collapsed justify variants come back as plain justify.
func (m *Mapper) ParaToDoc(src deckmodel.TextPara) docmodel.Paragraph {
	out := docmodel.Paragraph{
		Alignment: alignToDoc[src.Align],
	}
	if m.cfg.ExperimentalFormattingOn {
		out.IndentLeftPt = src.IndentLeftPt
		out.SpaceBeforePt = src.SpaceBeforePt
		out.SpaceAfterPt = src.SpaceAfterPt
	}
	return out
}

// baselineFor picks the super/subscript baseline offset. Large fonts
// (>= 24pt) use the shallower offsets so the shifted text stays inside
// the line box.
func baselineFor(src docmodel.Run, sizePt float64) int {
	large := sizePt >= 24
	switch {
	case src.Subscript && large:
		return deckmodel.BaselineSubscriptLargeFont
	case src.Subscript:
		return deckmodel.BaselineSubscriptSmallFont
	case src.Superscript && large:
		return deckmodel.BaselineSuperscriptLargeFont
	case src.Superscript:
		return deckmodel.BaselineSuperscriptSmallFont
	default:
		return 0
	}
}
