package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pactly/internal/domain"
	"pactly/internal/port"
)

type contractRepo struct {
	db *sqlx.DB
}

// NewContractRepo creates a new PostgreSQL-backed ContractRepository.
func NewContractRepo(db *sqlx.DB) port.ContractRepository {
	return &contractRepo{db: db}
}

func (r *contractRepo) GetLatest(ctx context.Context, tenantID, dealID uuid.UUID) (*domain.Contract, error) {
	var contract domain.Contract
	err := r.db.GetContext(ctx, &contract,
		`SELECT * FROM contracts WHERE deal_id = $1 AND tenant_id = $2
		ORDER BY version_number DESC LIMIT 1`, dealID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContractNotFound
		}
		return nil, fmt.Errorf("contractRepo.GetLatest: %w", err)
	}
	return &contract, nil
}

func (r *contractRepo) GetByID(ctx context.Context, tenantID, contractID uuid.UUID) (*domain.Contract, error) {
	var contract domain.Contract
	err := r.db.GetContext(ctx, &contract,
		"SELECT * FROM contracts WHERE id = $1 AND tenant_id = $2", contractID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContractNotFound
		}
		return nil, fmt.Errorf("contractRepo.GetByID: %w", err)
	}
	return &contract, nil
}
