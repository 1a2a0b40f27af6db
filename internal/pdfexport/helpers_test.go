package pdfexport_test

import (
	"unicode/utf8"

	"pactly/internal/pdfexport"
)

// monoMeasurer gives every rune the same advance, scaled by font size.
type monoMeasurer struct {
	em float64 // advance of one rune at 10pt
}

func (m monoMeasurer) StringWidth(font pdfexport.Font, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * m.em * font.Size / 10
}

func textOps(layer []pdfexport.Op) []pdfexport.TextOp {
	var out []pdfexport.TextOp
	for _, o := range layer {
		if t, ok := o.(pdfexport.TextOp); ok {
			out = append(out, t)
		}
	}
	return out
}
