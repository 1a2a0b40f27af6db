package pdfexport

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Meta is written to the PDF information dictionary.
type Meta struct {
	Title   string
	Author  string
	Creator string
	Created time.Time
}

var pngOptions = fpdf.ImageOptions{ImageType: "PNG"}

func newDocument() *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

// Render draws pages with the core PDF fonts and writes the document to w.
// Any error raised by the drawing primitive is returned as a *RenderError.
func Render(w io.Writer, pages []*Page, meta Meta) error {
	if len(pages) == 0 {
		return ErrEmptyDocument
	}

	pdf := newDocument()
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Creator != "" {
		pdf.SetCreator(meta.Creator, true)
	}
	if !meta.Created.IsZero() {
		pdf.SetCreationDate(meta.Created)
		pdf.SetModificationDate(meta.Created)
	}

	r := &renderer{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: make(map[string]bool),
	}
	for _, p := range pages {
		pdf.AddPage()
		for _, op := range p.Ops() {
			r.draw(op)
		}
		if pdf.Err() {
			return newRenderError(fmt.Sprintf("page %d", p.Number), pdf.Error())
		}
	}

	if err := pdf.Output(w); err != nil {
		return newRenderError("Output", err)
	}
	return nil
}

type renderer struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	images map[string]bool
}

func (r *renderer) draw(op Op) {
	switch o := op.(type) {
	case TextOp:
		r.setFont(o.Font)
		text := r.tr(o.Text)
		x := o.X
		switch o.Align {
		case AlignRight:
			x -= r.pdf.GetStringWidth(text)
		case AlignCenter:
			x -= r.pdf.GetStringWidth(text) / 2
		}
		r.pdf.Text(x, o.Y, text)
	case RectOp:
		r.pdf.SetFillColor(o.Fill.R, o.Fill.G, o.Fill.B)
		r.pdf.Rect(o.X, o.Y, o.W, o.H, "F")
	case LineOp:
		r.pdf.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
		r.pdf.SetLineWidth(o.Width)
		r.pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
	case ImageOp:
		if !r.images[o.Name] {
			r.pdf.RegisterImageOptionsReader(o.Name, pngOptions, bytes.NewReader(o.PNG))
			r.images[o.Name] = true
		}
		r.pdf.ImageOptions(o.Name, o.X, o.Y, o.W, o.H, false, pngOptions, 0, "")
	}
}

func (r *renderer) setFont(f Font) {
	r.pdf.SetFont(f.Family, f.Style, f.Size)
	r.pdf.SetTextColor(f.Color.R, f.Color.G, f.Color.B)
}

// ProbeImage reports whether the PDF primitive accepts logo. It runs in a
// throwaway document so a rejected image never poisons a real export.
func ProbeImage(logo *Logo) error {
	pdf := newDocument()
	pdf.AddPage()
	pdf.RegisterImageOptionsReader(logo.Name, pngOptions, bytes.NewReader(logo.PNG))
	if pdf.Err() {
		return newRenderError("RegisterImage", pdf.Error())
	}
	return nil
}

// FontMeasurer measures strings with the core font metrics of the PDF
// primitive, after the same code page translation Render applies. A
// FontMeasurer is not safe for concurrent use.
type FontMeasurer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewFontMeasurer returns a measurer backed by a scratch document.
func NewFontMeasurer() *FontMeasurer {
	pdf := newDocument()
	return &FontMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// StringWidth implements Measurer.
func (m *FontMeasurer) StringWidth(font Font, s string) float64 {
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	return m.pdf.GetStringWidth(m.tr(s))
}
