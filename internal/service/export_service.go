package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pactly/internal/csvexport"
	"pactly/internal/domain"
	"pactly/internal/logger"
	"pactly/internal/pdfexport"
	"pactly/internal/port"
	"pactly/internal/xlsxexport"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// ExportOutput is a rendered file ready to be sent or stored.
type ExportOutput struct {
	Filename    string
	ContentType string
	Data        []byte
	PageCount   int
}

// Renderer lays out and renders branded PDFs.
type Renderer interface {
	ExportContract(ctx context.Context, contract *domain.Contract, dealTitle string, brand *domain.BrandSettings) (*pdfexport.Result, error)
	ExportOfferLetter(ctx context.Context, letter *domain.OfferLetter, dealTitle string, brand *domain.BrandSettings) (*pdfexport.Result, error)
}

// ExportService renders deal documents for download.
type ExportService interface {
	// ContractPDF renders contractID, or the latest version when contractID
	// is uuid.Nil.
	ContractPDF(ctx context.Context, tenantID, dealID, contractID uuid.UUID) (*ExportOutput, error)
	OfferLetterPDF(ctx context.Context, tenantID, dealID, letterID uuid.UUID) (*ExportOutput, error)
	ContractWorkbook(ctx context.Context, tenantID, dealID uuid.UUID) (*ExportOutput, error)
	ContractCSV(ctx context.Context, tenantID, dealID uuid.UUID) (*ExportOutput, error)
	// RenderJob renders the target of a queued export job. The result is
	// not archived; the job stores it.
	RenderJob(ctx context.Context, job *domain.ExportJob) (*ExportOutput, error)
}

// ExportConfig controls archiving of synchronous exports.
type ExportConfig struct {
	Bucket  string
	Archive bool
}

type exportService struct {
	deals     port.DealRepository
	contracts port.ContractRepository
	letters   port.OfferLetterRepository
	brands    port.BrandSettingsRepository
	storage   port.ObjectStorage
	renderer  Renderer
	cfg       ExportConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	deals port.DealRepository,
	contracts port.ContractRepository,
	letters port.OfferLetterRepository,
	brands port.BrandSettingsRepository,
	storage port.ObjectStorage,
	renderer Renderer,
	cfg ExportConfig,
	log *logger.Logger,
) ExportService {
	return &exportService{
		deals:     deals,
		contracts: contracts,
		letters:   letters,
		brands:    brands,
		storage:   storage,
		renderer:  renderer,
		cfg:       cfg,
		log:       log.With("service", "export"),
		now:       time.Now,
	}
}

func (s *exportService) ContractPDF(ctx context.Context, tenantID, dealID, contractID uuid.UUID) (*ExportOutput, error) {
	out, err := s.renderContract(ctx, tenantID, dealID, contractID)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, tenantID, dealID, out)
	return out, nil
}

func (s *exportService) OfferLetterPDF(ctx context.Context, tenantID, dealID, letterID uuid.UUID) (*ExportOutput, error) {
	out, err := s.renderOfferLetter(ctx, tenantID, dealID, letterID)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, tenantID, dealID, out)
	return out, nil
}

func (s *exportService) RenderJob(ctx context.Context, job *domain.ExportJob) (*ExportOutput, error) {
	target := uuid.Nil
	if job.TargetID != nil {
		target = *job.TargetID
	}
	switch job.Kind {
	case domain.ExportKindContractPDF:
		return s.renderContract(ctx, job.TenantID, job.DealID, target)
	case domain.ExportKindOfferLetterPDF:
		if target == uuid.Nil {
			return nil, domain.ErrOfferLetterNotFound
		}
		return s.renderOfferLetter(ctx, job.TenantID, job.DealID, target)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownExportKind, job.Kind)
	}
}

func (s *exportService) renderContract(ctx context.Context, tenantID, dealID, contractID uuid.UUID) (*ExportOutput, error) {
	deal, err := s.deals.GetByID(ctx, tenantID, dealID)
	if err != nil {
		return nil, err
	}
	contract, err := s.contract(ctx, tenantID, dealID, contractID)
	if err != nil {
		return nil, err
	}

	res, err := s.renderer.ExportContract(ctx, contract, deal.Title, s.brand(ctx, tenantID))
	if err != nil {
		return nil, fmt.Errorf("exportService.ContractPDF: %w", err)
	}
	return pdfOutput(res), nil
}

func (s *exportService) renderOfferLetter(ctx context.Context, tenantID, dealID, letterID uuid.UUID) (*ExportOutput, error) {
	deal, err := s.deals.GetByID(ctx, tenantID, dealID)
	if err != nil {
		return nil, err
	}
	letter, err := s.letters.GetByID(ctx, tenantID, dealID, letterID)
	if err != nil {
		return nil, err
	}

	res, err := s.renderer.ExportOfferLetter(ctx, letter, deal.Title, s.brand(ctx, tenantID))
	if err != nil {
		return nil, fmt.Errorf("exportService.OfferLetterPDF: %w", err)
	}
	return pdfOutput(res), nil
}

func (s *exportService) ContractWorkbook(ctx context.Context, tenantID, dealID uuid.UUID) (*ExportOutput, error) {
	deal, contract, err := s.latest(ctx, tenantID, dealID)
	if err != nil {
		return nil, err
	}
	data, err := xlsxexport.Build(contract, deal.Title)
	if err != nil {
		return nil, fmt.Errorf("exportService.ContractWorkbook: %w", err)
	}
	return &ExportOutput{
		Filename:    csvexport.BuildFilename(deal.Title, contract.VersionNumber, "xlsx", s.now()),
		ContentType: ContentTypeXLSX,
		Data:        data,
	}, nil
}

func (s *exportService) ContractCSV(ctx context.Context, tenantID, dealID uuid.UUID) (*ExportOutput, error) {
	deal, contract, err := s.latest(ctx, tenantID, dealID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteContract(contract); err != nil {
		return nil, fmt.Errorf("exportService.ContractCSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exportService.ContractCSV: %w", err)
	}

	return &ExportOutput{
		Filename:    csvexport.BuildFilename(deal.Title, contract.VersionNumber, "csv", s.now()),
		ContentType: ContentTypeCSV,
		Data:        buf.Bytes(),
	}, nil
}

func (s *exportService) latest(ctx context.Context, tenantID, dealID uuid.UUID) (*domain.Deal, *domain.Contract, error) {
	deal, err := s.deals.GetByID(ctx, tenantID, dealID)
	if err != nil {
		return nil, nil, err
	}
	contract, err := s.contracts.GetLatest(ctx, tenantID, dealID)
	if err != nil {
		return nil, nil, err
	}
	return deal, contract, nil
}

func (s *exportService) contract(ctx context.Context, tenantID, dealID, contractID uuid.UUID) (*domain.Contract, error) {
	if contractID == uuid.Nil {
		return s.contracts.GetLatest(ctx, tenantID, dealID)
	}
	contract, err := s.contracts.GetByID(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	if contract.DealID != dealID {
		return nil, domain.ErrContractNotFound
	}
	return contract, nil
}

// brand loads the tenant's branding. Branding is optional, so lookup
// failures fall back to the defaults.
func (s *exportService) brand(ctx context.Context, tenantID uuid.UUID) *domain.BrandSettings {
	brand, err := s.brands.Get(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("brand settings unavailable, using defaults", "tenant_id", tenantID, "error", err)
		}
		return nil
	}
	return brand
}

// archive stores a copy of a synchronous export when enabled. It never
// fails the export.
func (s *exportService) archive(ctx context.Context, tenantID, dealID uuid.UUID, out *ExportOutput) {
	if !s.cfg.Archive || s.storage == nil {
		return
	}
	key := fmt.Sprintf("tenants/%s/deals/%s/exports/%s", tenantID, dealID, out.Filename)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(out.Data),
		ContentType: out.ContentType,
		Size:        int64(len(out.Data)),
		Filename:    out.Filename,
	})
	if err != nil {
		s.log.Warn("export archive failed (ignored)", "key", key, "error", err)
	}
}

func pdfOutput(res *pdfexport.Result) *ExportOutput {
	return &ExportOutput{
		Filename:    res.Filename,
		ContentType: ContentTypePDF,
		Data:        res.Data,
		PageCount:   res.PageCount,
	}
}
