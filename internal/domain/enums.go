package domain

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// DealStatus is the lifecycle of a deal.
type DealStatus string

const (
	DealStatusDraft       DealStatus = "draft"
	DealStatusNegotiating DealStatus = "negotiating"
	DealStatusClosed      DealStatus = "closed"
)

// JobStatus is the lifecycle of an export job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// ExportKind selects what an export job renders.
type ExportKind string

const (
	ExportKindContractPDF    ExportKind = "contract_pdf"
	ExportKindOfferLetterPDF ExportKind = "offer_letter_pdf"
)

// AllowedLogoTypes maps accepted logo upload MIME types to file extensions.
var AllowedLogoTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
}
