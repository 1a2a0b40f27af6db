package pdfexport

import (
	"regexp"
	"strings"
)

// TextSegment is a run of text drawn with a single weight.
type TextSegment struct {
	Text string
	Bold bool
}

var boldMarker = regexp.MustCompile(`\*\*(.+?)\*\*`)

var punctuation = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"…", "...",
	"\r\n", "\n",
	"\r", "\n",
)

// Normalize folds typographic punctuation to the ASCII forms the core PDF
// fonts measure reliably and unifies line endings. Bold markers are kept;
// see ParseBold.
func Normalize(text string) string {
	return punctuation.Replace(text)
}

// StripBold removes markdown bold markers, leaving the visible text.
func StripBold(text string) string {
	return strings.ReplaceAll(text, "**", "")
}

// ParseBold splits raw on **bold** markers. A lone unmatched "**" is dropped
// so it never reaches the page. The result always holds at least one segment.
func ParseBold(raw string) []TextSegment {
	var segs []TextSegment
	last := 0
	for _, m := range boldMarker.FindAllStringSubmatchIndex(raw, -1) {
		if m[0] > last {
			segs = append(segs, TextSegment{Text: StripBold(raw[last:m[0]])})
		}
		segs = append(segs, TextSegment{Text: raw[m[2]:m[3]], Bold: true})
		last = m[1]
	}
	if last < len(raw) {
		segs = append(segs, TextSegment{Text: StripBold(raw[last:])})
	}
	if len(segs) == 0 {
		return []TextSegment{{Text: StripBold(raw)}}
	}
	return segs
}

// PlainText joins segments back into their visible text.
func PlainText(segs []TextSegment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}
