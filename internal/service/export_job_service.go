package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pactly/internal/domain"
	"pactly/internal/logger"
	"pactly/internal/pdfexport"
	"pactly/internal/port"
)

// CreateExportJobInput is the DTO for queuing an export.
type CreateExportJobInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	DealID   uuid.UUID
	Kind     domain.ExportKind
	TargetID *uuid.UUID
}

// ExportJobView is a job as returned to API clients.
type ExportJobView struct {
	*domain.ExportJob
	DownloadURL string `json:"download_url,omitempty"`
}

// ExportJobService queues export jobs and processes them.
type ExportJobService interface {
	Create(ctx context.Context, input CreateExportJobInput) (*domain.ExportJob, error)
	Get(ctx context.Context, tenantID, jobID uuid.UUID) (*ExportJobView, error)
	// Process renders a claimed job, stores the result and records the
	// outcome. Failed jobs are requeued until maxAttempts is reached.
	Process(ctx context.Context, job *domain.ExportJob, maxAttempts int)
}

// ExportJobConfig holds storage settings for job results.
type ExportJobConfig struct {
	Bucket        string
	PresignExpiry int64
}

type exportJobService struct {
	jobs    port.ExportJobRepository
	deals   port.DealRepository
	exports ExportService
	storage port.ObjectStorage
	cfg     ExportJobConfig
	log     *logger.Logger
}

// NewExportJobService creates a new ExportJobService implementation.
func NewExportJobService(
	jobs port.ExportJobRepository,
	deals port.DealRepository,
	exports ExportService,
	storage port.ObjectStorage,
	cfg ExportJobConfig,
	log *logger.Logger,
) ExportJobService {
	return &exportJobService{
		jobs:    jobs,
		deals:   deals,
		exports: exports,
		storage: storage,
		cfg:     cfg,
		log:     log.With("service", "export_jobs"),
	}
}

func (s *exportJobService) Create(ctx context.Context, input CreateExportJobInput) (*domain.ExportJob, error) {
	switch input.Kind {
	case domain.ExportKindContractPDF, domain.ExportKindOfferLetterPDF:
	default:
		return nil, domain.ErrUnknownExportKind
	}
	// Reject unknown deals up front rather than failing in the worker.
	if _, err := s.deals.GetByID(ctx, input.TenantID, input.DealID); err != nil {
		return nil, err
	}

	job := &domain.ExportJob{
		TenantID:  input.TenantID,
		DealID:    input.DealID,
		Kind:      input.Kind,
		TargetID:  input.TargetID,
		CreatedBy: input.UserID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating export job: %w", err)
	}
	s.log.Info("export job queued", "job_id", job.ID, "tenant_id", job.TenantID, "kind", job.Kind)
	return job, nil
}

func (s *exportJobService) Get(ctx context.Context, tenantID, jobID uuid.UUID) (*ExportJobView, error) {
	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	view := &ExportJobView{ExportJob: job}
	if job.Status == domain.JobStatusCompleted && job.ResultKey != "" {
		url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, job.ResultKey, s.cfg.PresignExpiry)
		if err != nil {
			return nil, fmt.Errorf("presigning export: %w", err)
		}
		view.DownloadURL = url
	}
	return view, nil
}

func (s *exportJobService) Process(ctx context.Context, job *domain.ExportJob, maxAttempts int) {
	log := s.log.With("job_id", job.ID, "attempt", job.Attempts)

	out, err := s.exports.RenderJob(ctx, job)
	if err != nil {
		s.fail(ctx, log, job, err, maxAttempts)
		return
	}

	key := fmt.Sprintf("tenants/%s/jobs/%s/%s", job.TenantID, job.ID, out.Filename)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(out.Data),
		ContentType: out.ContentType,
		Size:        int64(len(out.Data)),
		Filename:    out.Filename,
	})
	if err != nil {
		s.fail(ctx, log, job, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err), maxAttempts)
		return
	}

	job.ResultKey = key
	job.Filename = out.Filename
	job.PageCount = out.PageCount
	if err := s.jobs.MarkCompleted(ctx, job); err != nil {
		if errors.Is(err, domain.ErrJobNotClaimed) {
			log.Warn("export job was reclaimed before completion, result discarded", "key", key)
			return
		}
		log.Error("failed to mark export job completed", "error", err)
		return
	}
	log.Info("export job completed", "pages", out.PageCount, "key", key)
}

func (s *exportJobService) fail(ctx context.Context, log *logger.Logger, job *domain.ExportJob, cause error, maxAttempts int) {
	requeue := retryable(cause) && job.Attempts < maxAttempts
	if err := s.jobs.MarkFailed(ctx, job, cause.Error(), requeue); err != nil {
		if errors.Is(err, domain.ErrJobNotClaimed) {
			log.Warn("export job was reclaimed before failure was recorded", "cause", cause)
			return
		}
		log.Error("failed to record export job failure", "cause", cause, "error", err)
		return
	}
	if requeue {
		log.Warn("export job failed, requeued", "error", cause)
		return
	}
	log.Error("export job failed", "error", cause)
}

// retryable reports whether another attempt could succeed. Missing records,
// bad job kinds and drawing errors will not fix themselves.
func retryable(err error) bool {
	var renderErr *pdfexport.RenderError
	if errors.As(err, &renderErr) {
		return false
	}
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrContractNotFound),
		errors.Is(err, domain.ErrOfferLetterNotFound),
		errors.Is(err, domain.ErrUnknownExportKind):
		return false
	}
	return true
}
