// Package docmodel holds the word-processing side of the conversion:
// paragraphs, styled runs, and annotations, as produced by the document
// loaders and consumed by the chunker.
package docmodel

import (
	"strings"
	"time"
)

// Alignment is a paragraph alignment in the word-processing model.
// Word distinguishes several justify variants that the slide model
// collapses; we keep them apart here so the mapper owns the loss.
type Alignment string

const (
	AlignDefault    Alignment = ""
	AlignLeft       Alignment = "left"
	AlignCenter     Alignment = "center"
	AlignRight      Alignment = "right"
	AlignJustify    Alignment = "justify"
	AlignJustifyLow Alignment = "justify-low"
	AlignJustifyMed Alignment = "justify-med"
	AlignJustifyHi  Alignment = "justify-hi"
	AlignDistribute Alignment = "distribute"
	AlignThai       Alignment = "thai-justify"
)

// Underline is a word-model underline style.
type Underline string

const (
	UnderlineNone       Underline = ""
	UnderlineSingle     Underline = "single"
	UnderlineDouble     Underline = "double"
	UnderlineThick      Underline = "thick"
	UnderlineDotted     Underline = "dotted"
	UnderlineDash       Underline = "dash"
	UnderlineDotDash    Underline = "dot-dash"
	UnderlineDotDotDash Underline = "dot-dot-dash"
	UnderlineWavy       Underline = "wavy"
	UnderlineWavyDouble Underline = "wavy-double"
	UnderlineWords      Underline = "words"
)

// Highlight is a named highlight color index (Word's fixed palette).
type Highlight string

const (
	HighlightNone        Highlight = ""
	HighlightYellow      Highlight = "yellow"
	HighlightPink        Highlight = "pink"
	HighlightBlack       Highlight = "black"
	HighlightWhite       Highlight = "white"
	HighlightBlue        Highlight = "blue"
	HighlightBrightGreen Highlight = "bright-green"
	HighlightDarkBlue    Highlight = "dark-blue"
	HighlightDarkRed     Highlight = "dark-red"
	HighlightDarkYellow  Highlight = "dark-yellow"
	HighlightGray25      Highlight = "gray-25"
	HighlightGray50      Highlight = "gray-50"
	HighlightGreen       Highlight = "green"
	HighlightRed         Highlight = "red"
	HighlightTeal        Highlight = "teal"
	HighlightTurquoise   Highlight = "turquoise"
	HighlightViolet      Highlight = "violet"
)

// Run is a styled span of text inside a paragraph. Zero values mean
// "inherit from the style/defaults"; FontFamily is set only when the
// source run carries an explicit per-run override.
type Run struct {
	Text string `json:"text"`

	Bold         bool      `json:"bold,omitempty"`
	Italic       bool      `json:"italic,omitempty"`
	Underline    Underline `json:"underline,omitempty"`
	Strike       bool      `json:"strike,omitempty"`
	DoubleStrike bool      `json:"double_strike,omitempty"`
	Superscript  bool      `json:"superscript,omitempty"`
	Subscript    bool      `json:"subscript,omitempty"`
	AllCaps      bool      `json:"all_caps,omitempty"`
	SmallCaps    bool      `json:"small_caps,omitempty"`

	SizePt    float64   `json:"size_pt,omitempty"` // 0 = inherit
	Color     string    `json:"color,omitempty"`   // RRGGBB hex; "" = inherit
	Highlight Highlight `json:"highlight,omitempty"`

	FontFamily   string `json:"font_family,omitempty"`
	HyperlinkURL string `json:"hyperlink_url,omitempty"`

	// FieldCodeURL is set when the loader found a hyperlink stored in
	// the legacy field-code form. The forward pipeline copies it as
	// plain text and reports a warning.
	FieldCodeURL string `json:"field_code_url,omitempty"`
}

// HasInlineStyling reports whether the run carries any character
// formatting of its own (as opposed to pure text).
func (r Run) HasInlineStyling() bool {
	return r.Bold || r.Italic || r.Underline != UnderlineNone ||
		r.Strike || r.DoubleStrike || r.Superscript || r.Subscript ||
		r.AllCaps || r.SmallCaps || r.SizePt != 0 || r.Color != "" ||
		r.Highlight != HighlightNone || r.FontFamily != ""
}

// Paragraph is an ordered sequence of runs plus block-level attributes.
// Ordinal is the stable index of the paragraph in the source document.
type Paragraph struct {
	Runs []Run `json:"runs"`

	HeadingLevel    int       `json:"heading_level,omitempty"` // 0 = body text
	Alignment       Alignment `json:"alignment,omitempty"`
	PageBreakBefore bool      `json:"page_break_before,omitempty"`
	Ordinal         int       `json:"ordinal"`

	// Experimental block formatting, copied only when the experimental
	// flag is on.
	IndentLeftPt  float64 `json:"indent_left_pt,omitempty"`
	SpaceBeforePt float64 `json:"space_before_pt,omitempty"`
	SpaceAfterPt  float64 `json:"space_after_pt,omitempty"`
}

// Text returns the concatenated run text of the paragraph.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// IsEmpty reports whether the paragraph has no visible text.
func (p Paragraph) IsEmpty() bool {
	return strings.TrimSpace(p.Text()) == ""
}

// AnnotationType distinguishes comments, footnotes, and endnotes.
type AnnotationType string

const (
	AnnotationComment  AnnotationType = "comment"
	AnnotationFootnote AnnotationType = "footnote"
	AnnotationEndnote  AnnotationType = "endnote"
)

// Annotation is a comment, footnote, or endnote anchored to a source
// paragraph. ReplyTo records comment threading in the source; the
// conversion flattens threads and never carries it forward.
type Annotation struct {
	Type    AnnotationType `json:"type"`
	ID      string         `json:"id"`
	Anchor  int            `json:"anchor"` // ordinal of the anchoring paragraph
	RefText string         `json:"reference_text,omitempty"`

	Author    string    `json:"author,omitempty"`
	Initials  string    `json:"initials,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`

	Hyperlinks []string `json:"hyperlinks,omitempty"`
	ReplyTo    string   `json:"reply_to,omitempty"`

	Runs []Run `json:"runs,omitempty"`
}

// Text returns the annotation body as plain text.
func (a Annotation) Text() string {
	var b strings.Builder
	for _, r := range a.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Document is the loader-produced paragraph tree plus its annotations.
type Document struct {
	Title      string       `json:"title,omitempty"`
	Paragraphs []Paragraph  `json:"paragraphs"`
	Comments   []Annotation `json:"comments,omitempty"`
	Footnotes  []Annotation `json:"footnotes,omitempty"`
	Endnotes   []Annotation `json:"endnotes,omitempty"`
}

// Chunk is a contiguous group of source paragraphs that maps to exactly
// one output slide. Index is assigned in insertion order and stays
// stable through page-range filtering.
type Chunk struct {
	Index        int `json:"index"`
	Page         int `json:"page"`
	HeadingLevel int `json:"heading_level,omitempty"` // of the first paragraph

	Paragraphs []Paragraph `json:"paragraphs"`

	Comments  []Annotation `json:"comments,omitempty"`
	Footnotes []Annotation `json:"footnotes,omitempty"`
	Endnotes  []Annotation `json:"endnotes,omitempty"`
}

// AddParagraph appends a paragraph, capturing the chunk heading level
// from the first paragraph added.
func (c *Chunk) AddParagraph(p Paragraph) {
	if len(c.Paragraphs) == 0 {
		c.HeadingLevel = p.HeadingLevel
	}
	c.Paragraphs = append(c.Paragraphs, p)
}

// HasAnnotations reports whether any annotation list is non-empty.
func (c *Chunk) HasAnnotations() bool {
	return len(c.Comments) > 0 || len(c.Footnotes) > 0 || len(c.Endnotes) > 0
}
