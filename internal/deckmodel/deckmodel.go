// Package deckmodel holds the presentation side of the conversion:
// slides, text paragraphs, and drawing-ML style run attributes, as
// consumed/produced by the external slide writer/loader.
package deckmodel

import "strings"

// Align is a slide-paragraph alignment token (drawing-ML algn values).
type Align string

const (
	AlignDefault    Align = ""
	AlignLeft       Align = "l"
	AlignCenter     Align = "ctr"
	AlignRight      Align = "r"
	AlignJustify    Align = "just"
	AlignJustifyLow Align = "justLow"
	AlignDistribute Align = "dist"
	AlignThai       Align = "thaiDist"
)

// Underline tokens (drawing-ML u attribute values).
const (
	UnderlineNone       = ""
	UnderlineSingle     = "sng"
	UnderlineDouble     = "dbl"
	UnderlineHeavy      = "heavy"
	UnderlineDotted     = "dotted"
	UnderlineDash       = "dash"
	UnderlineDotDash    = "dotDash"
	UnderlineDotDotDash = "dotDotDash"
	UnderlineWavy       = "wavy"
	UnderlineWavyDouble = "wavyDbl"
)

// Strike tokens (drawing-ML strike attribute values).
const (
	StrikeNone   = ""
	StrikeSingle = "sngStrike"
	StrikeDouble = "dblStrike"
)

// Cap tokens (drawing-ML cap attribute values).
const (
	CapNone  = ""
	CapAll   = "all"
	CapSmall = "small"
)

// Baseline offsets for super/subscript, in thousandths of a percent.
// The small/large split follows the 24pt threshold used when writing
// the attribute.
const (
	BaselineSubscriptSmallFont   = -25000
	BaselineSubscriptLargeFont   = -50000
	BaselineSuperscriptSmallFont = 60000
	BaselineSuperscriptLargeFont = 30000
)

// RequiredLayoutName is the master slide layout the destination
// template must expose. Slide creation depends on the structure of this
// layout, so absence is a fatal template-validation error.
const RequiredLayoutName = "slidegest"

// TextRun is a styled span of text in a slide text frame.
type TextRun struct {
	Text string `json:"text"`

	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline string `json:"underline,omitempty"` // u token
	Strike    string `json:"strike,omitempty"`    // strike token
	Baseline  int    `json:"baseline,omitempty"`  // super/subscript offset
	Cap       string `json:"cap,omitempty"`       // cap token

	SizePt    float64 `json:"size_pt,omitempty"` // 0 = layout default
	Color     string  `json:"color,omitempty"`   // RRGGBB hex
	Highlight string  `json:"highlight,omitempty"`

	FontFamily   string `json:"font_family,omitempty"`
	HyperlinkURL string `json:"hyperlink_url,omitempty"`
}

// TextPara is one paragraph in a slide body text frame.
type TextPara struct {
	Runs  []TextRun `json:"runs"`
	Align Align     `json:"align,omitempty"`

	IndentLeftPt  float64 `json:"indent_left_pt,omitempty"`
	SpaceBeforePt float64 `json:"space_before_pt,omitempty"`
	SpaceAfterPt  float64 `json:"space_after_pt,omitempty"`
}

// Text returns the concatenated run text of the paragraph.
func (p TextPara) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Slide is one output slide: a body text frame plus speaker notes.
type Slide struct {
	Body  []TextPara `json:"body"`
	Notes string     `json:"notes,omitempty"`
}

// BodyText returns the slide body as plain text, paragraphs joined by
// newlines. Metadata highlight offsets are computed against this form.
func (s Slide) BodyText() string {
	parts := make([]string, len(s.Body))
	for i, p := range s.Body {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// Template describes the destination presentation skeleton. Templates
// are read-only inputs and may be reused across sequential calls.
type Template struct {
	Name        string   `json:"name,omitempty"`
	LayoutNames []string `json:"layout_names"`
}

// HasLayout reports whether the template exposes a layout by name.
func (t Template) HasLayout(name string) bool {
	for _, n := range t.LayoutNames {
		if n == name {
			return true
		}
	}
	return false
}

// DefaultTemplate returns the built-in template skeleton used when the
// caller does not supply one.
func DefaultTemplate() Template {
	return Template{Name: "slidegest-default", LayoutNames: []string{RequiredLayoutName}}
}

// Deck is an ordered set of slides produced from one conversion call.
type Deck struct {
	Template Template `json:"template"`
	Slides   []Slide  `json:"slides"`
}
