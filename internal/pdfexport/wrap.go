package pdfexport

import (
	"strings"
	"unicode"
)

// Measurer reports the rendered width of s in font, in points.
type Measurer interface {
	StringWidth(font Font, s string) float64
}

// SegmentsWidth is the width of a run of segments drawn left to right with
// base, switching to bold where a segment asks for it.
func SegmentsWidth(m Measurer, base Font, segs []TextSegment) float64 {
	var w float64
	for _, s := range segs {
		w += m.StringWidth(segmentFont(base, s), s.Text)
	}
	return w
}

func segmentFont(base Font, s TextSegment) Font {
	if s.Bold {
		return base.Bold()
	}
	return base
}

// word is a whitespace-delimited token; it may mix weights ("**Buyer**'s").
type word []TextSegment

func splitWords(segs []TextSegment) []word {
	var words []word
	boundary := true
	for _, s := range segs {
		for _, r := range s.Text {
			if unicode.IsSpace(r) {
				boundary = true
				continue
			}
			if boundary {
				words = append(words, word{})
				boundary = false
			}
			w := &words[len(words)-1]
			if n := len(*w); n > 0 && (*w)[n-1].Bold == s.Bold {
				(*w)[n-1].Text += string(r)
			} else {
				*w = append(*w, TextSegment{Text: string(r), Bold: s.Bold})
			}
		}
	}
	return words
}

// Wrap breaks segs into physical lines no wider than maxWidth under m.
// Words are packed greedily and separated by single spaces; a word wider
// than maxWidth is broken between runes. Only a single rune that is itself
// wider than maxWidth can produce an over-wide line.
func Wrap(m Measurer, base Font, segs []TextSegment, maxWidth float64) [][]TextSegment {
	var (
		lines [][]TextSegment
		cur   []TextSegment
		width float64
	)
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, cur)
		}
		cur, width = nil, 0
	}

	for _, w := range splitWords(segs) {
		ww := SegmentsWidth(m, base, w)
		if len(cur) > 0 {
			// The gap is bold only inside a bold run.
			gap := TextSegment{Text: " ", Bold: cur[len(cur)-1].Bold && w[0].Bold}
			space := m.StringWidth(segmentFont(base, gap), " ")
			if width+space+ww <= maxWidth {
				cur = appendSegment(cur, gap)
				for _, s := range w {
					cur = appendSegment(cur, s)
				}
				width += space + ww
				continue
			}
			flush()
		}
		if ww <= maxWidth {
			cur = append(cur, w...)
			width = ww
			continue
		}
		chunks := breakWord(m, base, w, maxWidth)
		for _, c := range chunks[:len(chunks)-1] {
			lines = append(lines, c)
		}
		cur = chunks[len(chunks)-1]
		width = SegmentsWidth(m, base, cur)
	}
	flush()
	return lines
}

func appendSegment(line []TextSegment, s TextSegment) []TextSegment {
	if n := len(line); n > 0 && line[n-1].Bold == s.Bold {
		line[n-1].Text += s.Text
		return line
	}
	return append(line, s)
}

// breakWord splits w into rune chunks that each fit maxWidth.
func breakWord(m Measurer, base Font, w word, maxWidth float64) [][]TextSegment {
	var (
		chunks [][]TextSegment
		cur    []TextSegment
		width  float64
	)
	for _, s := range w {
		f := segmentFont(base, s)
		for _, r := range s.Text {
			rw := m.StringWidth(f, string(r))
			if len(cur) > 0 && width+rw > maxWidth {
				chunks = append(chunks, cur)
				cur, width = nil, 0
			}
			cur = appendSegment(cur, TextSegment{Text: string(r), Bold: s.Bold})
			width += rw
		}
	}
	if len(cur) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// WrapText wraps plain text in a single font. It is used for titles and
// captions that carry no inline bold.
func WrapText(m Measurer, font Font, text string, maxWidth float64) []string {
	lines := Wrap(m, font, []TextSegment{{Text: text}}, maxWidth)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, PlainText(l))
	}
	return out
}

// FitText shortens text with a trailing "..." until it fits maxWidth.
func FitText(m Measurer, font Font, text string, maxWidth float64) string {
	if m.StringWidth(font, text) <= maxWidth {
		return text
	}
	runes := []rune(strings.TrimSpace(text))
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + "..."
		if m.StringWidth(font, candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
