package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pactly/internal/domain"
)

// MockContractRepo is a mock implementation of port.ContractRepository.
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) GetLatest(ctx context.Context, tenantID, dealID uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, tenantID, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepo) GetByID(ctx context.Context, tenantID, contractID uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, tenantID, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}
