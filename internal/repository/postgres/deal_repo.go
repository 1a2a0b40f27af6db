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

type dealRepo struct {
	db *sqlx.DB
}

// NewDealRepo creates a new PostgreSQL-backed DealRepository.
func NewDealRepo(db *sqlx.DB) port.DealRepository {
	return &dealRepo{db: db}
}

func (r *dealRepo) GetByID(ctx context.Context, tenantID, dealID uuid.UUID) (*domain.Deal, error) {
	var deal domain.Deal
	err := r.db.GetContext(ctx, &deal,
		"SELECT * FROM deals WHERE id = $1 AND tenant_id = $2", dealID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("dealRepo.GetByID: %w", err)
	}
	return &deal, nil
}
