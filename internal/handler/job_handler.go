package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pactly/internal/domain"
	"pactly/internal/service"
)

// CreateExportJobRequest is the optional body of an export job request.
type CreateExportJobRequest struct {
	Kind     domain.ExportKind `json:"kind" example:"contract_pdf"`
	TargetID *uuid.UUID        `json:"target_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// JobHandler queues and reports on asynchronous exports.
type JobHandler struct {
	jobService service.ExportJobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.ExportJobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateContractExport handles POST /api/v1/deals/:id/contract/export-jobs
// @Summary Queue a contract export
// @Description Queues a PDF export. Without a body the latest contract is rendered; kind offer_letter_pdf needs target_id.
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param body body CreateExportJobRequest false "Export kind and target"
// @Success 202 {object} Response{data=domain.ExportJob} "Job queued"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Deal not found"
// @Security BearerAuth
// @Router /deals/{id}/contract/export-jobs [post]
func (h *JobHandler) CreateContractExport(c *gin.Context) {
	tenantID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}
	dealID, ok := dealID(c)
	if !ok {
		return
	}

	var req CreateExportJobRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Kind == "" {
		req.Kind = domain.ExportKindContractPDF
	}
	if req.Kind == domain.ExportKindOfferLetterPDF && req.TargetID == nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "target_id is required for offer letter exports")
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), service.CreateExportJobInput{
		TenantID: tenantID,
		UserID:   userID,
		DealID:   dealID,
		Kind:     req.Kind,
		TargetID: req.TargetID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Location", "/api/v1/jobs/"+job.ID.String())
	RespondAccepted(c, job)
}

// Get handles GET /api/v1/jobs/:id
// @Summary Get export job status
// @Description Returns job status. Completed jobs carry a presigned download URL.
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} Response{data=ExportJobResponse} "Job status"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Job not found"
// @Security BearerAuth
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job ID")
		return
	}

	view, err := h.jobService.Get(c.Request.Context(), tenantID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}
