package pdfexport

import (
	"fmt"
	"regexp"
	"time"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

const maxAddressSlug = 30

// CompanySlug replaces every whitespace run in the company name with "_".
func CompanySlug(company string) string {
	return whitespaceRun.ReplaceAllString(company, "_")
}

// ContractFilename returns {company}_v{version}_{YYYY-MM-DD}.pdf.
func ContractFilename(company string, version int, date time.Time) string {
	return fmt.Sprintf("%s_v%d_%s.pdf", CompanySlug(company), version, date.Format("2006-01-02"))
}

// OfferLetterFilename returns {company}_{address}_{YYYY-MM-DD}.pdf where the
// address has every non-alphanumeric replaced and is cut to 30 characters.
func OfferLetterFilename(company, address string, date time.Time) string {
	if address == "" {
		address = "Offer_Letter"
	}
	slug := nonAlphanumeric.ReplaceAllString(address, "_")
	if r := []rune(slug); len(r) > maxAddressSlug {
		slug = string(r[:maxAddressSlug])
	}
	return fmt.Sprintf("%s_%s_%s.pdf", CompanySlug(company), slug, date.Format("2006-01-02"))
}
