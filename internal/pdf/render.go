// Package pdf draws a paginated layout.Document with fpdf.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rpggio/taskpad/internal/layout"
)

const family = "Helvetica"

// Options control document output.
type Options struct {
	Title string
	// Compress deflates page streams. Tests turn it off to inspect text.
	Compress bool
}

// Measurer measures text with fpdf's Helvetica metrics.
type Measurer struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

// NewMeasurer creates a measurer backed by a scratch document.
func NewMeasurer() *Measurer {
	doc := fpdf.New("P", "mm", "A4", "")
	return &Measurer{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
}

// Width implements layout.Measurer.
func (m *Measurer) Width(text string, font layout.Font) float64 {
	m.doc.SetFont(family, fontStyle(font), font.Size)
	return m.doc.GetStringWidth(m.tr(Sanitize(text)))
}

// Render writes doc as a PDF to w.
func Render(w io.Writer, doc layout.Document, opts Options) error {
	f := fpdf.New("P", "mm", "A4", "")
	f.SetCompression(opts.Compress)
	f.SetAutoPageBreak(false, layout.Margin)
	f.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	if opts.Title != "" {
		f.SetTitle(opts.Title, true)
	}
	f.SetCreator("taskpad", true)
	tr := f.UnicodeTranslatorFromDescriptor("")

	for _, pg := range doc.Pages {
		f.AddPage()
		for _, it := range pg.Items {
			drawItem(f, tr, it)
		}
		f.SetFont(family, "", 8)
		f.SetTextColor(layout.FooterGray, layout.FooterGray, layout.FooterGray)
		footer := tr(pg.Footer)
		f.Text(layout.PageWidth/2-f.GetStringWidth(footer)/2, layout.FooterY, footer)
		f.SetTextColor(0, 0, 0)
	}

	if err := f.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func drawItem(f *fpdf.Fpdf, tr func(string) string, it layout.Item) {
	if it.Kind == layout.Rule {
		f.SetDrawColor(layout.RuleGray, layout.RuleGray, layout.RuleGray)
		f.Line(it.X, it.Y, it.X2, it.Y)
		return
	}
	f.SetFont(family, fontStyle(it.Font), it.Font.Size)
	for i, line := range it.Lines {
		s := tr(Sanitize(line))
		x := it.X
		if it.Align == layout.Center {
			x -= f.GetStringWidth(s) / 2
		}
		f.Text(x, it.Y+float64(i)*layout.LineHeight, s)
	}
}

func fontStyle(font layout.Font) string {
	if font.Bold {
		return "B"
	}
	return ""
}

// cp1252 code points above Latin-1 that the core fonts can draw.
var cp1252Extras = map[rune]bool{
	'€': true, '‚': true, 'ƒ': true, '„': true, '…': true, '†': true, '‡': true,
	'ˆ': true, '‰': true, 'Š': true, '‹': true, 'Œ': true, 'Ž': true, '‘': true,
	'’': true, '“': true, '”': true, '•': true, '–': true, '—': true, '˜': true,
	'™': true, 'š': true, '›': true, 'œ': true, 'ž': true, 'Ÿ': true,
}

// Sanitize drops runes the core fonts cannot encode, such as emoji, and the
// leading space they leave behind.
func Sanitize(s string) string {
	var b strings.Builder
	dropped := false
	for _, r := range s {
		if r < 0x100 || cp1252Extras[r] {
			b.WriteRune(r)
			continue
		}
		dropped = true
	}
	if !dropped {
		return s
	}
	return strings.TrimLeft(b.String(), " ")
}
