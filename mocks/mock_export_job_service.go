package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pactly/internal/domain"
	"pactly/internal/service"
)

// MockExportJobService is a mock implementation of service.ExportJobService.
type MockExportJobService struct {
	mock.Mock
}

func (m *MockExportJobService) Create(ctx context.Context, input service.CreateExportJobInput) (*domain.ExportJob, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockExportJobService) Get(ctx context.Context, tenantID, jobID uuid.UUID) (*service.ExportJobView, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportJobView), args.Error(1)
}

func (m *MockExportJobService) Process(ctx context.Context, job *domain.ExportJob, maxAttempts int) {
	m.Called(ctx, job, maxAttempts)
}
