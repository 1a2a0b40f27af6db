package pdfexport

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"pactly/internal/domain"
	"pactly/internal/logger"
)

const creator = "Pactly"

// LogoSource resolves a brand logo reference to an embeddable image.
type LogoSource interface {
	Load(ctx context.Context, ref string) (*Logo, error)
}

// Result is a rendered document.
type Result struct {
	Filename  string
	Data      []byte
	PageCount int
	Pages     []*Page
}

// Exporter renders contracts and offer letters. It holds no per-call state
// and is safe for concurrent use.
type Exporter struct {
	logos       LogoSource
	log         *logger.Logger
	now         func() time.Time
	newMeasurer func() Measurer
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the time used for the header stamp and filename.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithMeasurer overrides the text measurer. fn is called once per export.
func WithMeasurer(fn func() Measurer) Option {
	return func(e *Exporter) { e.newMeasurer = fn }
}

// NewExporter creates an Exporter. logos may be nil, in which case every
// document gets a text-only header.
func NewExporter(logos LogoSource, log *logger.Logger, opts ...Option) *Exporter {
	e := &Exporter{
		logos:       logos,
		log:         log,
		now:         time.Now,
		newMeasurer: func() Measurer { return NewFontMeasurer() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportContract lays out, decorates and renders a contract version.
func (e *Exporter) ExportContract(ctx context.Context, contract *domain.Contract, dealTitle string, brand *domain.BrandSettings) (*Result, error) {
	now := e.now()
	company := CompanyName(brand)
	title := Normalize(dealTitle)
	m := ContractMetrics()
	measure := e.newMeasurer()

	flow := NewFlow(m, measure, m.ContinuationTop)

	titleFont := Font{Family: fontFamily, Style: StyleBold, Size: 14, Color: ink}
	titleLines := WrapText(measure, titleFont, title, m.ContentWidth())
	if len(titleLines) == 0 {
		flow.Advance(16)
	}
	for _, l := range titleLines {
		flow.Line(m.Margin, titleFont, []TextSegment{{Text: l}}, 16)
	}
	versionFont := Font{Family: fontFamily, Size: 9, Color: muted}
	flow.Line(m.Margin, versionFont, []TextSegment{{Text: fmt.Sprintf("Version %d", contract.VersionNumber)}}, 10)
	flow.Rule()
	flow.Advance(16)

	flow.Text(Normalize(contract.FullText))

	b := Branding{
		Company:   company,
		Title:     title,
		Color:     ColorOr(primaryColor(brand), DefaultContractColor),
		Logo:      e.loadLogo(ctx, brand),
		Generated: now,
	}
	return e.finish(flow.Pages(), b, m, ContractFilename(company, contract.VersionNumber, now))
}

type keyTerm struct {
	label string
	value string
}

// ExportOfferLetter lays out, decorates and renders an offer letter.
func (e *Exporter) ExportOfferLetter(ctx context.Context, letter *domain.OfferLetter, dealTitle string, brand *domain.BrandSettings) (*Result, error) {
	now := e.now()
	company := CompanyName(brand)
	m := OfferLetterMetrics()
	measure := e.newMeasurer()
	width := m.ContentWidth()

	flow := NewFlow(m, measure, m.ContinuationTop)

	heading := Font{Family: fontFamily, Style: StyleBold, Size: 18, Color: ink}
	flow.Line(m.Margin, heading, []TextSegment{{Text: "Offer Letter"}}, 20)

	info := Font{Family: fontFamily, Size: 11, Color: RGB{80, 80, 80}}
	if addr := Normalize(letter.PropertyAddress); addr != "" {
		flow.Line(m.Margin, info, []TextSegment{{Text: FitText(measure, info, addr, width)}}, 14)
	}
	if dealTitle != "" {
		flow.Line(m.Margin, info, []TextSegment{{Text: FitText(measure, info, "Deal: "+Normalize(dealTitle), width)}}, 14)
	}
	flow.Advance(6)
	flow.Rule()
	flow.Advance(16)

	if terms := keyTerms(letter); len(terms) > 0 {
		flow.Line(m.Margin, Font{Family: fontFamily, Style: StyleBold, Size: 10, Color: ink}, []TextSegment{{Text: "Key Terms"}}, 14)

		const valueOffset = 80.0
		colWidth := width / 2
		label := Font{Family: fontFamily, Size: 9, Color: RGB{100, 100, 100}}
		value := Font{Family: fontFamily, Size: 9, Color: ink}
		col := 0
		for _, t := range terms {
			x := m.Margin + float64(col)*colWidth
			y := flow.Cursor().Y
			flow.Add(TextOp{X: x, Y: y, Text: t.label + ":", Font: label})
			flow.Add(TextOp{
				X: x + valueOffset, Y: y,
				Text: FitText(measure, value, Normalize(t.value), colWidth-valueOffset-m.WrapSafetyBuffer),
				Font: value,
			})
			col++
			if col == 2 {
				col = 0
				flow.Advance(14)
			}
		}
		if col != 0 {
			flow.Advance(14)
		}
		flow.Advance(10)
		flow.Rule()
		flow.Advance(16)
	}

	flow.Text(Normalize(letter.FullText))

	b := Branding{
		Company:   company,
		Title:     "Offer Letter",
		Color:     ColorOr(primaryColor(brand), DefaultOfferLetterColor),
		Logo:      e.loadLogo(ctx, brand),
		Generated: now,
	}
	return e.finish(flow.Pages(), b, m, OfferLetterFilename(company, letter.PropertyAddress, now))
}

func (e *Exporter) finish(pages []*Page, b Branding, m Metrics, filename string) (*Result, error) {
	Decorate(pages, b, m)

	var buf bytes.Buffer
	meta := Meta{Title: b.Title, Author: b.Company, Creator: creator, Created: b.Generated}
	if err := Render(&buf, pages, meta); err != nil {
		return nil, err
	}
	return &Result{
		Filename:  filename,
		Data:      buf.Bytes(),
		PageCount: len(pages),
		Pages:     pages,
	}, nil
}

// loadLogo never fails: any problem means a text-only header.
func (e *Exporter) loadLogo(ctx context.Context, brand *domain.BrandSettings) *Logo {
	ref := brand.LogoRef()
	if ref == "" || e.logos == nil {
		return nil
	}
	logo, err := e.logos.Load(ctx, ref)
	if err != nil {
		e.log.Warn("logo unavailable, using text header", "ref", ref, "error", err)
		return nil
	}
	if logo == nil {
		return nil
	}
	if err := ProbeImage(logo); err != nil {
		e.log.Warn("logo rejected by renderer, using text header", "ref", ref, "error", err)
		return nil
	}
	return logo
}

// CompanyName returns the brand's display name or the product default.
func CompanyName(brand *domain.BrandSettings) string {
	if brand == nil || strings.TrimSpace(brand.CompanyName) == "" {
		return DefaultCompanyName
	}
	return strings.TrimSpace(brand.CompanyName)
}

func primaryColor(brand *domain.BrandSettings) string {
	if brand == nil {
		return ""
	}
	return brand.PrimaryColor
}

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders an amount the way the web client does: "$350,000".
func FormatMoney(v float64) string {
	return "$" + usd.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func keyTerms(o *domain.OfferLetter) []keyTerm {
	var terms []keyTerm
	if o.BuyerName != "" {
		terms = append(terms, keyTerm{"Buyer", o.BuyerName})
	}
	if o.SellerName != "" {
		terms = append(terms, keyTerm{"Seller", o.SellerName})
	}
	if o.PurchasePrice != nil && *o.PurchasePrice != 0 {
		terms = append(terms, keyTerm{"Purchase Price", FormatMoney(*o.PurchasePrice)})
	}
	if o.EarnestMoney != nil && *o.EarnestMoney != 0 {
		terms = append(terms, keyTerm{"Earnest Money", FormatMoney(*o.EarnestMoney)})
	}
	if o.ClosingDate != "" {
		terms = append(terms, keyTerm{"Closing Date", o.ClosingDate})
	}
	if c := o.ContingencyList(); len(c) > 0 {
		terms = append(terms, keyTerm{"Contingencies", strings.Join(c, ", ")})
	}
	return terms
}
