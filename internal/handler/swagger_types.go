package handler

import (
	"time"

	"github.com/google/uuid"

	"pactly/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// UpdateSettingsRequest represents the brand settings update body.
type UpdateSettingsRequest struct {
	CompanyName  *string `json:"company_name" example:"Acme Realty"`
	PrimaryColor *string `json:"primary_color" example:"#2563EB"`
	LogoURL      *string `json:"logo_url" example:"https://cdn.acme.test/logo.png"`
}

// --- Response Types ---

// ExportJobResponse represents an export job with its download link.
type ExportJobResponse struct {
	ID          uuid.UUID         `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	DealID      uuid.UUID         `json:"deal_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Kind        domain.ExportKind `json:"kind" example:"contract_pdf"`
	Status      domain.JobStatus  `json:"status" example:"completed"`
	Attempts    int               `json:"attempts" example:"1"`
	Error       string            `json:"error,omitempty" example:""`
	Filename    string            `json:"filename,omitempty" example:"Acme_Realty_v3_2025-03-04.pdf"`
	PageCount   int               `json:"page_count,omitempty" example:"4"`
	CreatedAt   time.Time         `json:"created_at" example:"2025-03-04T15:00:00Z"`
	CompletedAt *time.Time        `json:"completed_at,omitempty" example:"2025-03-04T15:00:03Z"`
	DownloadURL string            `json:"download_url,omitempty" example:"https://s3.amazonaws.com/pactly-exports/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
