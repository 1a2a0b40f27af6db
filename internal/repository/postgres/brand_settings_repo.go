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

type brandSettingsRepo struct {
	db *sqlx.DB
}

// NewBrandSettingsRepo creates a new PostgreSQL-backed BrandSettingsRepository.
func NewBrandSettingsRepo(db *sqlx.DB) port.BrandSettingsRepository {
	return &brandSettingsRepo{db: db}
}

func (r *brandSettingsRepo) Get(ctx context.Context, tenantID uuid.UUID) (*domain.BrandSettings, error) {
	var settings domain.BrandSettings
	err := r.db.GetContext(ctx, &settings,
		"SELECT * FROM brand_settings WHERE tenant_id = $1", tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("brandSettingsRepo.Get: %w", err)
	}
	return &settings, nil
}

func (r *brandSettingsRepo) Upsert(ctx context.Context, settings *domain.BrandSettings) error {
	settings.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO brand_settings (tenant_id, company_name, primary_color, logo_url, logo_key, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			primary_color = EXCLUDED.primary_color,
			logo_url = EXCLUDED.logo_url,
			logo_key = EXCLUDED.logo_key,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		settings.TenantID, settings.CompanyName, settings.PrimaryColor,
		settings.LogoURL, settings.LogoKey, settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("brandSettingsRepo.Upsert: %w", err)
	}
	return nil
}
