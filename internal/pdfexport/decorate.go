package pdfexport

import (
	"fmt"
	"time"
)

const (
	headerBandHeight = 56.0
	logoSize         = 36.0
	logoTop          = 10.0
	logoGap          = 8.0
	brandBaseline    = 34.0
	footerRuleOffset = 36.0
	footerTextOffset = 24.0
)

var (
	// DefaultContractColor is the header band colour when a tenant sets none.
	DefaultContractColor = RGB{20, 184, 166}
	// DefaultOfferLetterColor is the offer-letter header band default.
	DefaultOfferLetterColor = RGB{245, 158, 11}
)

// DefaultCompanyName is used when brand settings carry no company name.
const DefaultCompanyName = "Pactly"

// Logo is a normalized PNG ready for embedding. Name must be unique per
// image content within one document.
type Logo struct {
	Name string
	PNG  []byte
}

// Branding is everything the decorator stamps on a page.
type Branding struct {
	Company   string
	Title     string
	Color     RGB
	Logo      *Logo
	Generated time.Time
}

// GeneratedStamp formats the date shown on the right of the header band.
func GeneratedStamp(t time.Time) string {
	return "Generated " + t.Format("January 2, 2006")
}

// FooterCaption is the centred text at the bottom of page i of total.
func FooterCaption(company, title string, i, total int) string {
	return fmt.Sprintf("%s · %s · Page %d of %d", company, title, i, total)
}

// Decorate fills Header and Footer of every page. It must run after layout
// so that the total page count is final.
func Decorate(pages []*Page, b Branding, m Metrics) {
	total := len(pages)
	for _, p := range pages {
		p.Header = headerOps(b, m)
		p.Footer = footerOps(b, m, p.Number, total)
	}
}

func headerOps(b Branding, m Metrics) []Op {
	ops := []Op{RectOp{X: 0, Y: 0, W: m.PageWidth, H: headerBandHeight, Fill: b.Color}}

	nameX := m.Margin
	if b.Logo != nil {
		ops = append(ops, ImageOp{
			Name: b.Logo.Name,
			PNG:  b.Logo.PNG,
			X:    m.Margin, Y: logoTop,
			W: logoSize, H: logoSize,
		})
		nameX += logoSize + logoGap
	}

	brand := Font{Family: fontFamily, Style: StyleBold, Size: 16, Color: white}
	ops = append(ops,
		TextOp{X: nameX, Y: brandBaseline, Text: b.Company, Font: brand},
		TextOp{
			X: m.PageWidth - m.Margin, Y: brandBaseline,
			Text:  GeneratedStamp(b.Generated),
			Font:  Font{Family: fontFamily, Size: 8, Color: white},
			Align: AlignRight,
		},
	)
	return ops
}

func footerOps(b Branding, m Metrics, i, total int) []Op {
	ruleY := m.PageHeight - footerRuleOffset
	return []Op{
		LineOp{X1: m.Margin, Y1: ruleY, X2: m.PageWidth - m.Margin, Y2: ruleY, Width: 0.5, Color: rule},
		TextOp{
			X: m.PageWidth / 2, Y: m.PageHeight - footerTextOffset,
			Text:  FooterCaption(b.Company, b.Title, i, total),
			Font:  Font{Family: fontFamily, Size: 8, Color: footerInk},
			Align: AlignCenter,
		},
	}
}
