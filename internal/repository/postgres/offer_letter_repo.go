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

type offerLetterRepo struct {
	db *sqlx.DB
}

// NewOfferLetterRepo creates a new PostgreSQL-backed OfferLetterRepository.
func NewOfferLetterRepo(db *sqlx.DB) port.OfferLetterRepository {
	return &offerLetterRepo{db: db}
}

func (r *offerLetterRepo) GetByID(ctx context.Context, tenantID, dealID, letterID uuid.UUID) (*domain.OfferLetter, error) {
	var letter domain.OfferLetter
	err := r.db.GetContext(ctx, &letter,
		"SELECT * FROM offer_letters WHERE id = $1 AND deal_id = $2 AND tenant_id = $3",
		letterID, dealID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOfferLetterNotFound
		}
		return nil, fmt.Errorf("offerLetterRepo.GetByID: %w", err)
	}
	return &letter, nil
}
