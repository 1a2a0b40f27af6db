package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pactly/internal/domain"
	"pactly/internal/port"
)

type exportJobRepo struct {
	db *sqlx.DB
}

// NewExportJobRepo creates a new PostgreSQL-backed ExportJobRepository.
func NewExportJobRepo(db *sqlx.DB) port.ExportJobRepository {
	return &exportJobRepo{db: db}
}

func (r *exportJobRepo) Create(ctx context.Context, job *domain.ExportJob) error {
	job.ID = uuid.New()
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.Status = domain.JobStatusQueued

	query := `INSERT INTO export_jobs (id, tenant_id, deal_id, kind, target_id, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.TenantID, job.DealID, job.Kind, job.TargetID, job.Status,
		job.CreatedBy, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("exportJobRepo.Create: %w", err)
	}
	return nil
}

func (r *exportJobRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ExportJob, error) {
	var job domain.ExportJob
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM export_jobs WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("exportJobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *exportJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ExportJob, error) {
	query := `UPDATE export_jobs SET status = $1, attempts = attempts + 1, updated_at = $2
		WHERE id IN (
			SELECT id FROM export_jobs WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var jobs []domain.ExportJob
	err := r.db.SelectContext(ctx, &jobs, query,
		domain.JobStatusProcessing, time.Now().UTC(), domain.JobStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("exportJobRepo.ClaimQueued: %w", err)
	}
	return jobs, nil
}

func (r *exportJobRepo) MarkCompleted(ctx context.Context, job *domain.ExportJob) error {
	now := time.Now().UTC()
	job.Status = domain.JobStatusCompleted
	job.Error = ""
	job.UpdatedAt = now
	job.CompletedAt = &now

	query := `UPDATE export_jobs SET status = $1, error = '', result_key = $2, filename = $3,
		page_count = $4, updated_at = $5, completed_at = $6
		WHERE id = $7 AND status = $8 AND attempts = $9`
	result, err := r.db.ExecContext(ctx, query,
		job.Status, job.ResultKey, job.Filename, job.PageCount, now, now,
		job.ID, domain.JobStatusProcessing, job.Attempts)
	if err != nil {
		return fmt.Errorf("exportJobRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrJobNotClaimed
	}
	return nil
}

func (r *exportJobRepo) MarkFailed(ctx context.Context, job *domain.ExportJob, errMsg string, requeue bool) error {
	now := time.Now().UTC()
	job.Status = domain.JobStatusFailed
	if requeue {
		job.Status = domain.JobStatusQueued
	}
	job.Error = errMsg
	job.UpdatedAt = now

	query := `UPDATE export_jobs SET status = $1, error = $2, updated_at = $3
		WHERE id = $4 AND status = $5 AND attempts = $6`
	result, err := r.db.ExecContext(ctx, query,
		job.Status, errMsg, now, job.ID, domain.JobStatusProcessing, job.Attempts)
	if err != nil {
		return fmt.Errorf("exportJobRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrJobNotClaimed
	}
	return nil
}

func (r *exportJobRepo) RequeueStale(ctx context.Context, olderThan time.Duration, maxAttempts int) (int64, int64, error) {
	now := time.Now().UTC()
	query := `UPDATE export_jobs SET
			status = CASE WHEN attempts >= $1 THEN $2 ELSE $3 END,
			error = CASE WHEN attempts >= $1 THEN $4 ELSE error END,
			updated_at = $5
		WHERE status = $6 AND updated_at < $7
		RETURNING status`

	var statuses []domain.JobStatus
	err := r.db.SelectContext(ctx, &statuses, query,
		maxAttempts, domain.JobStatusFailed, domain.JobStatusQueued,
		fmt.Sprintf("abandoned after %d attempts", maxAttempts),
		now, domain.JobStatusProcessing, now.Add(-olderThan))
	if err != nil {
		return 0, 0, fmt.Errorf("exportJobRepo.RequeueStale: %w", err)
	}

	var requeued, failed int64
	for _, s := range statuses {
		if s == domain.JobStatusFailed {
			failed++
		} else {
			requeued++
		}
	}
	return requeued, failed, nil
}
