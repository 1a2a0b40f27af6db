package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pactly/internal/domain"
)

// DealRepository defines the contract for deal persistence.
// All query methods include tenantID to enforce tenant isolation at the data layer.
type DealRepository interface {
	GetByID(ctx context.Context, tenantID, dealID uuid.UUID) (*domain.Deal, error)
}

// ContractRepository defines the contract for contract version persistence.
type ContractRepository interface {
	GetLatest(ctx context.Context, tenantID, dealID uuid.UUID) (*domain.Contract, error)
	GetByID(ctx context.Context, tenantID, contractID uuid.UUID) (*domain.Contract, error)
}

// OfferLetterRepository defines the contract for offer letter persistence.
type OfferLetterRepository interface {
	GetByID(ctx context.Context, tenantID, dealID, letterID uuid.UUID) (*domain.OfferLetter, error)
}

// BrandSettingsRepository defines the contract for tenant branding persistence.
type BrandSettingsRepository interface {
	// Get returns ErrNotFound when the tenant has never saved settings.
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.BrandSettings, error)
	Upsert(ctx context.Context, settings *domain.BrandSettings) error
}

// ExportJobRepository defines the contract for export job persistence.
type ExportJobRepository interface {
	Create(ctx context.Context, job *domain.ExportJob) error
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ExportJob, error)
	// ClaimQueued atomically moves up to limit queued jobs to processing
	// and returns them.
	ClaimQueued(ctx context.Context, limit int) ([]domain.ExportJob, error)
	// MarkCompleted and MarkFailed only apply while job is still in
	// processing under the same attempt. Otherwise they return
	// domain.ErrJobNotClaimed.
	MarkCompleted(ctx context.Context, job *domain.ExportJob) error
	// MarkFailed records err. When requeue is true the job goes back to
	// queued for another attempt.
	MarkFailed(ctx context.Context, job *domain.ExportJob, errMsg string, requeue bool) error
	// RequeueStale returns jobs stuck in processing for longer than
	// olderThan to the queue. Jobs that already used maxAttempts are marked
	// failed instead.
	RequeueStale(ctx context.Context, olderThan time.Duration, maxAttempts int) (requeued, failed int64, err error)
}
