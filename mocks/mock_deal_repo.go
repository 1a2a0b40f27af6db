package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pactly/internal/domain"
)

// MockDealRepo is a mock implementation of port.DealRepository.
type MockDealRepo struct {
	mock.Mock
}

func (m *MockDealRepo) GetByID(ctx context.Context, tenantID, dealID uuid.UUID) (*domain.Deal, error) {
	args := m.Called(ctx, tenantID, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}
