package pdfexport

import "strings"

const fontFamily = "Helvetica"

// US Letter in points.
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0
)

// Metrics fixes page geometry and the typographic scale of one document type.
type Metrics struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	// ContinuationTop is where the cursor restarts after a page break,
	// clear of the header band.
	ContinuationTop float64
	BottomMargin    float64

	BodySize            float64
	HeaderSize          float64
	LineHeight          float64
	HeaderSpacingBefore float64
	ParagraphGap        float64
	SubItemIndent       float64
	// WrapSafetyBuffer is subtracted from every wrap width to absorb
	// font-metric estimation error.
	WrapSafetyBuffer float64

	// Classify enables heading and sub-item detection. Off, every line is body.
	Classify bool
}

// ContractMetrics is the layout used for contract exports.
func ContractMetrics() Metrics {
	return Metrics{
		PageWidth:           LetterWidth,
		PageHeight:          LetterHeight,
		Margin:              60,
		ContinuationTop:     headerBandHeight + 20,
		BottomMargin:        54,
		BodySize:            9.5,
		HeaderSize:          10.5,
		LineHeight:          13,
		HeaderSpacingBefore: 14,
		ParagraphGap:        6,
		SubItemIndent:       18,
		WrapSafetyBuffer:    10,
		Classify:            true,
	}
}

// OfferLetterMetrics is the layout used for offer letters: one font size and
// no heading detection.
func OfferLetterMetrics() Metrics {
	return Metrics{
		PageWidth:        LetterWidth,
		PageHeight:       LetterHeight,
		Margin:           60,
		ContinuationTop:  headerBandHeight + 20,
		BottomMargin:     54,
		BodySize:         10,
		HeaderSize:       10,
		LineHeight:       14,
		ParagraphGap:     14,
		WrapSafetyBuffer: 10,
	}
}

// ContentWidth is the printable width between the side margins.
func (m Metrics) ContentWidth() float64 {
	return m.PageWidth - 2*m.Margin
}

// BreakAt is the cursor position past which the next line starts a new page.
func (m Metrics) BreakAt() float64 {
	return m.PageHeight - m.BottomMargin
}

func (m Metrics) bodyFont() Font {
	return Font{Family: fontFamily, Size: m.BodySize, Color: ink}
}

// Cursor is the vertical write position within the current page.
type Cursor struct {
	Y    float64
	Page int
}

// Flow lays text down a growing list of pages. It is single use and not safe
// for concurrent use.
type Flow struct {
	m       Metrics
	measure Measurer
	pages   []*Page
	cur     Cursor
}

// NewFlow starts a one-page flow with the cursor at startY.
func NewFlow(m Metrics, measure Measurer, startY float64) *Flow {
	f := &Flow{m: m, measure: measure}
	f.pages = []*Page{{Number: 1}}
	f.cur = Cursor{Y: startY, Page: 1}
	return f
}

// Metrics returns the flow's geometry.
func (f *Flow) Metrics() Metrics { return f.m }

// Cursor returns the current write position.
func (f *Flow) Cursor() Cursor { return f.cur }

// Pages returns the pages laid out so far.
func (f *Flow) Pages() []*Page { return f.pages }

// Add appends op to the body of the current page.
func (f *Flow) Add(op Op) {
	p := f.pages[len(f.pages)-1]
	p.Body = append(p.Body, op)
}

// Advance moves the cursor down by dy.
func (f *Flow) Advance(dy float64) {
	f.cur.Y += dy
}

func (f *Flow) ensureRoom() {
	if f.cur.Y <= f.m.BreakAt() {
		return
	}
	f.pages = append(f.pages, &Page{Number: len(f.pages) + 1})
	f.cur = Cursor{Y: f.m.ContinuationTop, Page: len(f.pages)}
}

// Rule draws a separator across the content width at the cursor.
func (f *Flow) Rule() {
	f.Add(LineOp{
		X1: f.m.Margin, Y1: f.cur.Y,
		X2: f.m.PageWidth - f.m.Margin, Y2: f.cur.Y,
		Width: 0.5, Color: rule,
	})
}

// Line draws one physical line of segments at x, breaking to a new page
// first when the cursor has passed the bottom margin.
func (f *Flow) Line(x float64, font Font, segs []TextSegment, advance float64) {
	f.ensureRoom()
	for _, s := range segs {
		sf := segmentFont(font, s)
		f.Add(TextOp{X: x, Y: f.cur.Y, Text: s.Text, Font: sf})
		x += f.measure.StringWidth(sf, s.Text)
	}
	f.cur.Y += advance
}

// Text lays out a whole document body line by line.
func (f *Flow) Text(text string) {
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			f.cur.Y += f.m.ParagraphGap
			continue
		}

		kind := KindBody
		if f.m.Classify {
			kind = Classify(StripBold(raw))
		}

		font := f.m.bodyFont()
		if kind == KindHeader {
			font = Font{Family: fontFamily, Style: StyleBold, Size: f.m.HeaderSize, Color: ink}
		}
		x := f.m.Margin
		maxWidth := f.m.ContentWidth() - f.m.WrapSafetyBuffer
		if kind == KindSubItem {
			x += f.m.SubItemIndent
			maxWidth -= f.m.SubItemIndent
		}

		segs := ParseBold(trimmed)
		if kind == KindHeader {
			segs = []TextSegment{{Text: PlainText(segs), Bold: true}}
		}
		lines := Wrap(f.measure, font, segs, maxWidth)

		if kind == KindHeader && i > 0 {
			f.cur.Y += f.m.HeaderSpacingBefore
		}
		for _, l := range lines {
			f.Line(x, font, l, f.m.LineHeight)
		}
	}
}
