package pdfexport

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B int
}

var (
	white     = RGB{255, 255, 255}
	ink       = RGB{30, 30, 30}
	muted     = RGB{120, 120, 120}
	rule      = RGB{220, 220, 220}
	footerInk = RGB{160, 160, 160}
)

const (
	StyleRegular = ""
	StyleBold    = "B"
)

// Font is the complete text state for one draw call. It is a value: every
// TextOp carries its own copy, so nothing has to be reset between lines.
type Font struct {
	Family string
	Style  string
	Size   float64
	Color  RGB
}

// Bold returns f with a bold style.
func (f Font) Bold() Font {
	f.Style = StyleBold
	return f
}

// Regular returns f with a regular style.
func (f Font) Regular() Font {
	f.Style = StyleRegular
	return f
}

// Align anchors a TextOp's X coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Op is a single draw instruction on a page.
type Op interface {
	op()
}

// TextOp draws Text with its baseline at Y.
type TextOp struct {
	X, Y  float64
	Text  string
	Font  Font
	Align Align
}

// RectOp fills a rectangle.
type RectOp struct {
	X, Y, W, H float64
	Fill       RGB
}

// LineOp strokes a straight line.
type LineOp struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          RGB
}

// ImageOp places a registered PNG image.
type ImageOp struct {
	Name       string
	PNG        []byte
	X, Y, W, H float64
}

func (TextOp) op()  {}
func (RectOp) op()  {}
func (LineOp) op()  {}
func (ImageOp) op() {}

// Page is one output page. Body is filled by the layout pass; Header and
// Footer are filled by Decorate once the page count is known.
type Page struct {
	Number int
	Header []Op
	Body   []Op
	Footer []Op
}

// Ops returns the page's instructions in paint order.
func (p *Page) Ops() []Op {
	ops := make([]Op, 0, len(p.Header)+len(p.Body)+len(p.Footer))
	ops = append(ops, p.Header...)
	ops = append(ops, p.Body...)
	return append(ops, p.Footer...)
}

// Texts returns the text of every TextOp in layer, in order.
func Texts(layer []Op) []string {
	var out []string
	for _, o := range layer {
		if t, ok := o.(TextOp); ok {
			out = append(out, t.Text)
		}
	}
	return out
}
