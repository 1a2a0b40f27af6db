package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pactly/internal/domain"
)

// MockBrandSettingsRepo is a mock implementation of port.BrandSettingsRepository.
type MockBrandSettingsRepo struct {
	mock.Mock
}

func (m *MockBrandSettingsRepo) Get(ctx context.Context, tenantID uuid.UUID) (*domain.BrandSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BrandSettings), args.Error(1)
}

func (m *MockBrandSettingsRepo) Upsert(ctx context.Context, settings *domain.BrandSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
