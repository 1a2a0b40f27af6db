package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pactly/internal/service"
)

// ExportHandler serves synchronous document downloads.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ContractPDF handles GET /api/v1/deals/:id/contract/export/pdf
// @Summary Download contract PDF
// @Description Renders a branded PDF of the deal's contract. Defaults to the latest version.
// @Tags exports
// @Produce application/pdf
// @Param id path string true "Deal ID"
// @Param contract_id query string false "Contract version ID"
// @Success 200 {file} file "Contract PDF"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Deal or contract not found"
// @Failure 429 {object} ErrorResponseBody "Rate limited"
// @Security BearerAuth
// @Router /deals/{id}/contract/export/pdf [get]
func (h *ExportHandler) ContractPDF(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	dealID, ok := dealID(c)
	if !ok {
		return
	}

	contractID := uuid.Nil
	if raw := c.Query("contract_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid contract ID")
			return
		}
		contractID = id
	}

	out, err := h.exportService.ContractPDF(c.Request.Context(), tenantID, dealID, contractID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("X-Page-Count", strconv.Itoa(out.PageCount))
	RespondFile(c, out.Filename, out.ContentType, out.Data)
}

// OfferLetterPDF handles GET /api/v1/deals/:id/offer-letters/:letterId/export/pdf
// @Summary Download offer letter PDF
// @Description Renders a branded PDF of an offer letter with a key terms summary.
// @Tags exports
// @Produce application/pdf
// @Param id path string true "Deal ID"
// @Param letterId path string true "Offer letter ID"
// @Success 200 {file} file "Offer letter PDF"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Offer letter not found"
// @Failure 429 {object} ErrorResponseBody "Rate limited"
// @Security BearerAuth
// @Router /deals/{id}/offer-letters/{letterId}/export/pdf [get]
func (h *ExportHandler) OfferLetterPDF(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	dealID, ok := dealID(c)
	if !ok {
		return
	}
	letterID, err := uuid.Parse(c.Param("letterId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid offer letter ID")
		return
	}

	out, err := h.exportService.OfferLetterPDF(c.Request.Context(), tenantID, dealID, letterID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("X-Page-Count", strconv.Itoa(out.PageCount))
	RespondFile(c, out.Filename, out.ContentType, out.Data)
}

// ContractWorkbook handles GET /api/v1/deals/:id/contract/export/xlsx
// @Summary Download contract key terms workbook
// @Description Exports the latest contract's extracted fields and clause statuses as an Excel workbook.
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Deal ID"
// @Success 200 {file} file "Workbook"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Deal or contract not found"
// @Security BearerAuth
// @Router /deals/{id}/contract/export/xlsx [get]
func (h *ExportHandler) ContractWorkbook(c *gin.Context) {
	h.keyTerms(c, h.exportService.ContractWorkbook)
}

// ContractCSV handles GET /api/v1/deals/:id/contract/export/csv
// @Summary Download contract key terms CSV
// @Description Exports the latest contract's extracted fields and clause statuses as UTF-8 CSV with a BOM.
// @Tags exports
// @Produce text/csv
// @Param id path string true "Deal ID"
// @Success 200 {file} file "CSV"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Deal or contract not found"
// @Security BearerAuth
// @Router /deals/{id}/contract/export/csv [get]
func (h *ExportHandler) ContractCSV(c *gin.Context) {
	h.keyTerms(c, h.exportService.ContractCSV)
}

type keyTermsFunc func(ctx context.Context, tenantID, dealID uuid.UUID) (*service.ExportOutput, error)

func (h *ExportHandler) keyTerms(c *gin.Context, render keyTermsFunc) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	dealID, ok := dealID(c)
	if !ok {
		return
	}
	out, err := render(c.Request.Context(), tenantID, dealID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondFile(c, out.Filename, out.ContentType, out.Data)
}
