package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"pactly/internal/domain"
	"pactly/internal/logger"
	"pactly/internal/logo"
	"pactly/internal/pdfexport"
	"pactly/internal/port"
)

// UpdateSettingsInput is the DTO for brand settings updates. Nil fields are
// left unchanged; empty strings clear the value.
type UpdateSettingsInput struct {
	CompanyName  *string `json:"company_name"`
	PrimaryColor *string `json:"primary_color"`
	LogoURL      *string `json:"logo_url"`
}

// LogoUploadInput is the DTO for logo uploads.
type LogoUploadInput struct {
	TenantID uuid.UUID
	File     io.Reader
	Size     int64
}

// SettingsService manages a tenant's export branding.
type SettingsService interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.BrandSettings, error)
	Update(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*domain.BrandSettings, error)
	UploadLogo(ctx context.Context, input LogoUploadInput) (*domain.BrandSettings, error)
	DeleteLogo(ctx context.Context, tenantID uuid.UUID) (*domain.BrandSettings, error)
}

// SettingsConfig holds the bucket and upload limit for logos, and the
// hosts a logo URL may point at.
type SettingsConfig struct {
	Bucket           string
	MaxLogoBytes     int64
	LogoAllowedHosts []string
}

type settingsService struct {
	repo    port.BrandSettingsRepository
	storage port.ObjectStorage
	cfg     SettingsConfig
	log     *logger.Logger
}

// NewSettingsService creates a new SettingsService implementation.
func NewSettingsService(
	repo port.BrandSettingsRepository,
	storage port.ObjectStorage,
	cfg SettingsConfig,
	log *logger.Logger,
) SettingsService {
	if cfg.MaxLogoBytes <= 0 {
		cfg.MaxLogoBytes = 1 << 20
	}
	return &settingsService{
		repo:    repo,
		storage: storage,
		cfg:     cfg,
		log:     log.With("service", "settings"),
	}
}

// Get returns the tenant's settings, or empty settings if none were saved.
func (s *settingsService) Get(ctx context.Context, tenantID uuid.UUID) (*domain.BrandSettings, error) {
	settings, err := s.repo.Get(ctx, tenantID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.BrandSettings{TenantID: tenantID}, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*domain.BrandSettings, error) {
	settings, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if input.PrimaryColor != nil {
		color := strings.TrimSpace(*input.PrimaryColor)
		if color != "" {
			rgb, err := pdfexport.ParseHexColor(color)
			if err != nil {
				return nil, domain.ErrInvalidColor
			}
			color = rgb.Hex()
		}
		settings.PrimaryColor = color
	}
	if input.CompanyName != nil {
		settings.CompanyName = strings.TrimSpace(*input.CompanyName)
	}
	if input.LogoURL != nil {
		ref := strings.TrimSpace(*input.LogoURL)
		if ref != "" {
			if err := logo.ValidateURL(ref, s.cfg.LogoAllowedHosts); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidLogoURL, err)
			}
		}
		settings.LogoURL = ref
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("saving brand settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UploadLogo(ctx context.Context, input LogoUploadInput) (*domain.BrandSettings, error) {
	if input.Size > s.cfg.MaxLogoBytes {
		return nil, s.tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(input.File, s.cfg.MaxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading logo: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxLogoBytes {
		return nil, s.tooLarge()
	}

	mt := mimetype.Detect(data)
	var contentType, ext string
	for allowed, e := range domain.AllowedLogoTypes {
		if mt.Is(allowed) {
			contentType, ext = allowed, e
			break
		}
	}
	if contentType == "" {
		s.log.Info("rejected logo upload", "tenant_id", input.TenantID, "detected", mt.String())
		return nil, domain.ErrUnsupportedFileType
	}
	if err := logo.CheckDimensions(data); err != nil {
		s.log.Info("rejected logo upload", "tenant_id", input.TenantID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFileType, err)
	}

	settings, err := s.Get(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tenants/%s/logos/%s.%s", input.TenantID, uuid.New(), ext)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		s.log.Error("logo upload failed", "tenant_id", input.TenantID, "error", err)
		return nil, domain.ErrUploadFailed
	}

	oldKey := settings.LogoKey
	settings.LogoKey = key
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("saving brand settings: %w", err)
	}

	s.removeObject(ctx, oldKey)
	return settings, nil
}

func (s *settingsService) DeleteLogo(ctx context.Context, tenantID uuid.UUID) (*domain.BrandSettings, error) {
	settings, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	oldKey := settings.LogoKey
	settings.LogoKey = ""
	settings.LogoURL = ""
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("saving brand settings: %w", err)
	}

	s.removeObject(ctx, oldKey)
	return settings, nil
}

// removeObject deletes a replaced logo. Failures only leave an orphan.
func (s *settingsService) removeObject(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, s.cfg.Bucket, key); err != nil {
		s.log.Warn("failed to delete old logo (ignored)", "key", key, "error", err)
	}
}

func (s *settingsService) tooLarge() error {
	return fmt.Errorf("%w: limit is %s", domain.ErrFileTooLarge, humanize.IBytes(uint64(s.cfg.MaxLogoBytes)))
}
