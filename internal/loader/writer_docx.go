package loader

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/slidegest/internal/docmodel"
	"github.com/dgallion1/slidegest/internal/formatting"
)

// Word underline attribute values by underline style.
var docxUnderlineValues = map[docmodel.Underline]string{
	docmodel.UnderlineSingle:     "single",
	docmodel.UnderlineDouble:     "double",
	docmodel.UnderlineThick:      "thick",
	docmodel.UnderlineDotted:     "dotted",
	docmodel.UnderlineDash:       "dash",
	docmodel.UnderlineDotDash:    "dotDash",
	docmodel.UnderlineDotDotDash: "dotDotDash",
	docmodel.UnderlineWavy:       "wave",
	docmodel.UnderlineWavyDouble: "wavyDouble",
	docmodel.UnderlineWords:      "words",
}

// Word justification attribute values by alignment.
var docxJcValues = map[docmodel.Alignment]string{
	docmodel.AlignLeft:       "left",
	docmodel.AlignCenter:     "center",
	docmodel.AlignRight:      "right",
	docmodel.AlignJustify:    "both",
	docmodel.AlignJustifyLow: "lowKashida",
	docmodel.AlignJustifyMed: "mediumKashida",
	docmodel.AlignJustifyHi:  "highKashida",
	docmodel.AlignDistribute: "distribute",
	docmodel.AlignThai:       "thaiDistribute",
}

// WriteDocx renders the document as a .docx package. Headings are
// rendered as bold text at the per-level size; the package format this
// writer produces starts with one empty paragraph, which the loaders
// and the reverse pipeline accept as a structural artifact. Annotations
// are not written; the JSON document form carries them.
func WriteDocx(doc *docmodel.Document, w io.Writer) error {
	pkg := docx.New().WithDefaultTheme()

	// Leading empty paragraph, required by package creation.
	pkg.AddParagraph()

	for _, para := range doc.Paragraphs {
		p := pkg.AddParagraph()
		if jc, ok := docxJcValues[para.Alignment]; ok && para.Alignment != docmodel.AlignDefault {
			p.Justification(jc)
		}

		for _, run := range para.Runs {
			if run.Text == "" {
				continue
			}
			if run.HyperlinkURL != "" {
				p.AddLink(run.Text, run.HyperlinkURL)
				continue
			}
			writeDocxRun(p, run, para.HeadingLevel)
		}
	}

	if _, err := pkg.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func writeDocxRun(p *docx.Paragraph, run docmodel.Run, headingLevel int) {
	r := p.AddText(run.Text)

	if run.Bold || headingLevel > 0 {
		r.Bold()
	}
	if run.Italic {
		r.Italic()
	}
	if u, ok := docxUnderlineValues[run.Underline]; ok {
		r.Underline(u)
	}

	sizePt := run.SizePt
	if headingLevel > 0 && sizePt == 0 {
		sizePt = formatting.HeadingSizePt(headingLevel)
	}
	if sizePt > 0 {
		// Run sizes are stored in half-points.
		r.Size(strconv.Itoa(int(sizePt * 2)))
	}

	if run.Color != "" {
		r.Color(strings.TrimPrefix(run.Color, "#"))
	}
}
