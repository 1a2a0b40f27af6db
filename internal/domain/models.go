package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Deal is a real-estate transaction under negotiation.
type Deal struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	TenantID        uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	Title           string     `db:"title" json:"title"`
	PropertyAddress string     `db:"property_address" json:"property_address"`
	Status          DealStatus `db:"status" json:"status"`
	CreatedBy       uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// ClauseTag marks the negotiation state of one clause of a contract.
type ClauseTag struct {
	Key    string `json:"key"`
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
}

// Contract is one version of a deal's contract text. Rows are append-only:
// a new version is a new row.
type Contract struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	DealID          uuid.UUID       `db:"deal_id" json:"deal_id"`
	VersionNumber   int             `db:"version_number" json:"version_number"`
	FullText        string          `db:"full_text" json:"full_text"`
	ExtractedFields json.RawMessage `db:"extracted_fields" json:"extracted_fields"`
	ClauseTags      json.RawMessage `db:"clause_tags" json:"clause_tags"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// Fields decodes ExtractedFields. A null or empty column yields an empty map.
func (c *Contract) Fields() (map[string]any, error) {
	fields := map[string]any{}
	if len(c.ExtractedFields) == 0 || string(c.ExtractedFields) == "null" {
		return fields, nil
	}
	if err := json.Unmarshal(c.ExtractedFields, &fields); err != nil {
		return nil, fmt.Errorf("decoding extracted fields: %w", err)
	}
	return fields, nil
}

// Clauses decodes ClauseTags.
func (c *Contract) Clauses() ([]ClauseTag, error) {
	var tags []ClauseTag
	if len(c.ClauseTags) == 0 || string(c.ClauseTags) == "null" {
		return tags, nil
	}
	if err := json.Unmarshal(c.ClauseTags, &tags); err != nil {
		return nil, fmt.Errorf("decoding clause tags: %w", err)
	}
	return tags, nil
}

// OfferLetter is a generated purchase offer attached to a deal.
type OfferLetter struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	DealID          uuid.UUID       `db:"deal_id" json:"deal_id"`
	FullText        string          `db:"full_text" json:"full_text"`
	BuyerName       string          `db:"buyer_name" json:"buyer_name,omitempty"`
	SellerName      string          `db:"seller_name" json:"seller_name,omitempty"`
	PropertyAddress string          `db:"property_address" json:"property_address,omitempty"`
	PurchasePrice   *float64        `db:"purchase_price" json:"purchase_price,omitempty"`
	EarnestMoney    *float64        `db:"earnest_money" json:"earnest_money,omitempty"`
	ClosingDate     string          `db:"closing_date" json:"closing_date,omitempty"`
	Contingencies   json.RawMessage `db:"contingencies" json:"contingencies,omitempty"`
	AdditionalTerms string          `db:"additional_terms" json:"additional_terms,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// ContingencyList decodes Contingencies, ignoring malformed values.
func (o *OfferLetter) ContingencyList() []string {
	var list []string
	if len(o.Contingencies) == 0 {
		return nil
	}
	if err := json.Unmarshal(o.Contingencies, &list); err != nil {
		return nil
	}
	return list
}

// BrandSettings is a tenant's export branding. LogoKey references an
// uploaded object in the export bucket and takes precedence over LogoURL.
type BrandSettings struct {
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	CompanyName  string    `db:"company_name" json:"company_name"`
	PrimaryColor string    `db:"primary_color" json:"primary_color"`
	LogoURL      string    `db:"logo_url" json:"logo_url"`
	LogoKey      string    `db:"logo_key" json:"-"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LogoRef returns where the logo should be loaded from, or "" for none.
func (b *BrandSettings) LogoRef() string {
	if b == nil {
		return ""
	}
	if b.LogoKey != "" {
		return "s3:" + b.LogoKey
	}
	return b.LogoURL
}

// ExportJob is a queued asynchronous export.
type ExportJob struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TenantID    uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	DealID      uuid.UUID  `db:"deal_id" json:"deal_id"`
	Kind        ExportKind `db:"kind" json:"kind"`
	TargetID    *uuid.UUID `db:"target_id" json:"target_id,omitempty"`
	Status      JobStatus  `db:"status" json:"status"`
	Attempts    int        `db:"attempts" json:"attempts"`
	Error       string     `db:"error" json:"error,omitempty"`
	ResultKey   string     `db:"result_key" json:"-"`
	Filename    string     `db:"filename" json:"filename,omitempty"`
	PageCount   int        `db:"page_count" json:"page_count,omitempty"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// Terminal reports whether the job will not change state again.
func (j *ExportJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
