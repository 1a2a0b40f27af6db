package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pactly/internal/domain"
)

// MockOfferLetterRepo is a mock implementation of port.OfferLetterRepository.
type MockOfferLetterRepo struct {
	mock.Mock
}

func (m *MockOfferLetterRepo) GetByID(ctx context.Context, tenantID, dealID, letterID uuid.UUID) (*domain.OfferLetter, error) {
	args := m.Called(ctx, tenantID, dealID, letterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OfferLetter), args.Error(1)
}
