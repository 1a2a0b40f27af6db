package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pactly/internal/domain"
)

// MockExportJobRepo is a mock implementation of port.ExportJobRepository.
type MockExportJobRepo struct {
	mock.Mock
}

func (m *MockExportJobRepo) Create(ctx context.Context, job *domain.ExportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockExportJobRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.ExportJob, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportJob), args.Error(1)
}

func (m *MockExportJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ExportJob, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportJob), args.Error(1)
}

func (m *MockExportJobRepo) MarkCompleted(ctx context.Context, job *domain.ExportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockExportJobRepo) MarkFailed(ctx context.Context, job *domain.ExportJob, errMsg string, requeue bool) error {
	args := m.Called(ctx, job, errMsg, requeue)
	return args.Error(0)
}

func (m *MockExportJobRepo) RequeueStale(ctx context.Context, olderThan time.Duration, maxAttempts int) (int64, int64, error) {
	args := m.Called(ctx, olderThan, maxAttempts)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}
