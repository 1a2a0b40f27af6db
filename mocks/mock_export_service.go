package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pactly/internal/domain"
	"pactly/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) output(args mock.Arguments) (*service.ExportOutput, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportOutput), args.Error(1)
}

func (m *MockExportService) ContractPDF(ctx context.Context, tenantID, dealID, contractID uuid.UUID) (*service.ExportOutput, error) {
	return m.output(m.Called(ctx, tenantID, dealID, contractID))
}

func (m *MockExportService) OfferLetterPDF(ctx context.Context, tenantID, dealID, letterID uuid.UUID) (*service.ExportOutput, error) {
	return m.output(m.Called(ctx, tenantID, dealID, letterID))
}

func (m *MockExportService) ContractWorkbook(ctx context.Context, tenantID, dealID uuid.UUID) (*service.ExportOutput, error) {
	return m.output(m.Called(ctx, tenantID, dealID))
}

func (m *MockExportService) ContractCSV(ctx context.Context, tenantID, dealID uuid.UUID) (*service.ExportOutput, error) {
	return m.output(m.Called(ctx, tenantID, dealID))
}

func (m *MockExportService) RenderJob(ctx context.Context, job *domain.ExportJob) (*service.ExportOutput, error) {
	return m.output(m.Called(ctx, job))
}
