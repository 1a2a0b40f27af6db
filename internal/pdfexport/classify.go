package pdfexport

import (
	"regexp"
	"strings"
)

// LineKind is the layout class of a single non-blank line of contract text.
type LineKind int

const (
	KindBody LineKind = iota
	KindHeader
	KindSubItem
)

func (k LineKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSubItem:
		return "sub_item"
	default:
		return "body"
	}
}

var (
	numberedHeading = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	articlePrefix   = regexp.MustCompile(`(?i)^(ARTICLE|SECTION)\s`)
	capsRun         = regexp.MustCompile(`[A-Z]{3,}`)

	letterItem = regexp.MustCompile(`^\([a-z]\)\s`)
	romanItem  = regexp.MustCompile(`(?i)^\([ivxlc]+\)\s`)
	bulletItem = regexp.MustCompile(`^[-•]\s`)
)

// Classify returns the layout class of line. Header shapes are tested first
// on the trimmed text; leading indentation of the raw line only ever demotes a
// line that is not a header to a sub-item. Blank lines are reported as body
// and are expected to be handled by the caller as paragraph gaps.
func Classify(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return KindBody
	}
	if IsHeader(trimmed) {
		return KindHeader
	}
	if isSubItem(line, trimmed) {
		return KindSubItem
	}
	return KindBody
}

// IsHeader reports whether line reads as a section heading: a numbered
// heading ("12. CLOSING DATE"), an ARTICLE/SECTION prefix, or a short
// all-caps line.
func IsHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if numberedHeading.MatchString(trimmed) || articlePrefix.MatchString(trimmed) {
		return true
	}
	n := len([]rune(trimmed))
	return n > 3 && n < 120 &&
		trimmed == strings.ToUpper(trimmed) &&
		capsRun.MatchString(trimmed)
}

func isSubItem(raw, trimmed string) bool {
	if letterItem.MatchString(trimmed) || romanItem.MatchString(trimmed) || bulletItem.MatchString(trimmed) {
		return true
	}
	return strings.HasPrefix(raw, "    ") || strings.HasPrefix(raw, "\t")
}
