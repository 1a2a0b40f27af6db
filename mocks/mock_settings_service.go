package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pactly/internal/domain"
	"pactly/internal/service"
)

// MockSettingsService is a mock implementation of service.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) settings(args mock.Arguments) (*domain.BrandSettings, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BrandSettings), args.Error(1)
}

func (m *MockSettingsService) Get(ctx context.Context, tenantID uuid.UUID) (*domain.BrandSettings, error) {
	return m.settings(m.Called(ctx, tenantID))
}

func (m *MockSettingsService) Update(ctx context.Context, tenantID uuid.UUID, input service.UpdateSettingsInput) (*domain.BrandSettings, error) {
	return m.settings(m.Called(ctx, tenantID, input))
}

func (m *MockSettingsService) UploadLogo(ctx context.Context, input service.LogoUploadInput) (*domain.BrandSettings, error) {
	return m.settings(m.Called(ctx, input))
}

func (m *MockSettingsService) DeleteLogo(ctx context.Context, tenantID uuid.UUID) (*domain.BrandSettings, error) {
	return m.settings(m.Called(ctx, tenantID))
}
