// Package layout paginates report text onto fixed-size A4 pages.
//
// Lines are placed top to bottom in a single pass. Each line is classified
// by prefix, soft-wrapped to the text width and given a fixed font and
// vertical advance. Nothing is reflowed once placed.
package layout

import (
	"fmt"
	"regexp"
	"strings"
)

// Page geometry in millimetres.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 15.0
	TextWidth  = PageWidth - 2*Margin
	FooterY    = PageHeight - 10
	LineHeight = 5.0
	Indent     = 5.0
	blankSkip  = 3.0
)

// Kind classifies a report line.
type Kind int

const (
	Blank Kind = iota
	Title
	Heading
	Subheading
	Rule
	LabelBullet
	Bullet
	Numbered
	Paragraph
)

var kindNames = [...]string{"blank", "title", "heading", "subheading", "rule", "label-bullet", "bullet", "numbered", "paragraph"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Align is horizontal text alignment relative to Item.X.
type Align int

const (
	Left Align = iota
	Center
)

// Font selects a Helvetica size and weight.
type Font struct {
	Size float64
	Bold bool
}

// Gray levels, 0-255.
const (
	RuleGray   = 200
	FooterGray = 128
)

// Item is one placed element. Y is the baseline of the first line; later
// lines sit LineHeight apart. A Rule item spans X to X2 at Y.
type Item struct {
	Kind  Kind
	X, Y  float64
	X2    float64
	Font  Font
	Align Align
	Lines []string
}

// Page holds the items placed on one sheet and its footer.
type Page struct {
	Number int
	Items  []Item
	Footer string
}

// Document is a paginated report.
type Document struct {
	Pages []Page
}

// Measurer reports rendered text width in millimetres.
type Measurer interface {
	Width(text string, font Font) float64
}

type style struct {
	font    Font
	reserve float64
	x       float64
	width   float64
}

var styles = map[Kind]style{
	Title:       {font: Font{Size: 18, Bold: true}, reserve: 15},
	Heading:     {font: Font{Size: 14, Bold: true}, reserve: 12},
	Subheading:  {font: Font{Size: 12, Bold: true}, reserve: 10},
	Rule:        {reserve: 5},
	LabelBullet: {font: Font{Size: 10, Bold: true}, reserve: 8, x: Margin + Indent, width: TextWidth - Indent},
	Bullet:      {font: Font{Size: 10}, reserve: 8, x: Margin + Indent, width: TextWidth - Indent},
	Numbered:    {font: Font{Size: 10}, reserve: 8, x: Margin + Indent, width: TextWidth - Indent},
	Paragraph:   {font: Font{Size: 10}, reserve: 8, x: Margin, width: TextWidth},
}

var (
	numberedPrefix = regexp.MustCompile(`^\d+\.`)
	boldMarkers    = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// Classify returns the kind of a line. Prefixes are tested in a fixed
// order, so "- **" wins over "- ".
func Classify(line string) Kind {
	switch {
	case strings.TrimSpace(line) == "":
		return Blank
	case strings.HasPrefix(line, "# "):
		return Title
	case strings.HasPrefix(line, "## "):
		return Heading
	case strings.HasPrefix(line, "### "):
		return Subheading
	case strings.HasPrefix(line, "---"):
		return Rule
	case strings.HasPrefix(line, "- **"):
		return LabelBullet
	case strings.HasPrefix(line, "- "):
		return Bullet
	case numberedPrefix.MatchString(line):
		return Numbered
	default:
		return Paragraph
	}
}

// displayText strips the markup a kind does not render.
func displayText(kind Kind, line string) string {
	switch kind {
	case Title:
		return strings.Replace(line, "# ", "", 1)
	case Heading:
		return strings.Replace(line, "## ", "", 1)
	case Subheading:
		return strings.Replace(line, "### ", "", 1)
	case LabelBullet:
		s := strings.Replace(line, "- **", "• ", 1)
		return strings.Replace(s, "**:", ":", 1)
	case Bullet:
		return strings.Replace(line, "- ", "• ", 1)
	case Paragraph:
		return boldMarkers.ReplaceAllString(line, "$1")
	}
	return line
}

type paginator struct {
	m     Measurer
	pages []Page
	y     float64
}

func (p *paginator) page() *Page {
	return &p.pages[len(p.pages)-1]
}

func (p *paginator) newPage() {
	p.pages = append(p.pages, Page{Number: len(p.pages) + 1})
	p.y = Margin
}

func (p *paginator) reserve(h float64) {
	if p.y+h > PageHeight-Margin {
		p.newPage()
	}
}

func (p *paginator) place(it Item) {
	pg := p.page()
	pg.Items = append(pg.Items, it)
}

// Paginate lays out text. A nil Measurer uses Approx.
func Paginate(text string, m Measurer) Document {
	if m == nil {
		m = Approx{}
	}
	p := &paginator{m: m}
	p.newPage()

	for _, line := range strings.Split(text, "\n") {
		kind := Classify(line)
		if kind == Blank {
			p.y += blankSkip
			continue
		}
		st := styles[kind]
		p.reserve(st.reserve)

		switch kind {
		case Title:
			p.place(Item{Kind: kind, X: PageWidth / 2, Y: p.y, Font: st.font, Align: Center, Lines: []string{displayText(kind, line)}})
			p.y += 12
		case Heading:
			p.place(Item{Kind: kind, X: Margin, Y: p.y, Font: st.font, Lines: []string{displayText(kind, line)}})
			p.y += 10
		case Subheading:
			p.place(Item{Kind: kind, X: Margin, Y: p.y, Font: st.font, Lines: []string{displayText(kind, line)}})
			p.y += 8
		case Rule:
			p.place(Item{Kind: kind, X: Margin, X2: PageWidth - Margin, Y: p.y})
			p.y += 5
		default:
			lines := Wrap(displayText(kind, line), st.width, st.font, p.m)
			p.place(Item{Kind: kind, X: st.x, Y: p.y, Font: st.font, Lines: lines})
			p.y += float64(len(lines))*LineHeight + 2
		}
	}

	n := len(p.pages)
	for i := range p.pages {
		p.pages[i].Footer = fmt.Sprintf("Page %d of %d", i+1, n)
	}
	return Document{Pages: p.pages}
}
