package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pactly/internal/domain"
	"pactly/internal/handler"
	"pactly/internal/service"
	"pactly/mocks"
)

func newJobContext(body string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder, uuid.UUID, uuid.UUID) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body == "" {
		c.Request, _ = http.NewRequest(http.MethodPost, "/export-jobs", http.NoBody)
	} else {
		c.Request, _ = http.NewRequest(http.MethodPost, "/export-jobs", bytes.NewBufferString(body))
		c.Request.Header.Set("Content-Type", "application/json")
	}
	c.Params = params
	tenantID, userID := uuid.New(), uuid.New()
	setAuthContext(c, tenantID, userID, "member")
	return c, w, tenantID, userID
}

func TestJobHandler_CreateContractExport_DefaultsToContract(t *testing.T) {
	svc := new(mocks.MockExportJobService)
	h := handler.NewJobHandler(svc)

	dealID := uuid.New()
	c, w, tenantID, userID := newJobContext("", gin.Params{{Key: "id", Value: dealID.String()}})

	job := &domain.ExportJob{ID: uuid.New(), TenantID: tenantID, DealID: dealID, Kind: domain.ExportKindContractPDF, Status: domain.JobStatusQueued}
	svc.On("Create", mock.Anything, service.CreateExportJobInput{
		TenantID: tenantID,
		UserID:   userID,
		DealID:   dealID,
		Kind:     domain.ExportKindContractPDF,
	}).Return(job, nil)

	h.CreateContractExport(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "/api/v1/jobs/"+job.ID.String(), w.Header().Get("Location"))
	resp := decodeResponse(t, w.Body.Bytes())
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "queued", data["status"])
	svc.AssertExpectations(t)
}

func TestJobHandler_CreateContractExport_OfferLetter(t *testing.T) {
	svc := new(mocks.MockExportJobService)
	h := handler.NewJobHandler(svc)

	dealID, letterID := uuid.New(), uuid.New()
	body, _ := json.Marshal(map[string]interface{}{"kind": "offer_letter_pdf", "target_id": letterID})
	c, w, _, _ := newJobContext(string(body), gin.Params{{Key: "id", Value: dealID.String()}})

	svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateExportJobInput) bool {
		return in.Kind == domain.ExportKindOfferLetterPDF && in.TargetID != nil && *in.TargetID == letterID
	})).Return(&domain.ExportJob{ID: uuid.New(), Status: domain.JobStatusQueued}, nil)

	h.CreateContractExport(c)
	assert.Equal(t, http.StatusAccepted, w.Code)
	svc.AssertExpectations(t)
}

func TestJobHandler_CreateContractExport_OfferLetterNeedsTarget(t *testing.T) {
	svc := new(mocks.MockExportJobService)
	h := handler.NewJobHandler(svc)

	c, w, _, _ := newJobContext(`{"kind":"offer_letter_pdf"}`, gin.Params{{Key: "id", Value: uuid.NewString()}})
	h.CreateContractExport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestJobHandler_CreateContractExport_UnknownKind(t *testing.T) {
	svc := new(mocks.MockExportJobService)
	h := handler.NewJobHandler(svc)

	c, w, _, _ := newJobContext(`{"kind":"docx"}`, gin.Params{{Key: "id", Value: uuid.NewString()}})
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrUnknownExportKind)

	h.CreateContractExport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_EXPORT_KIND", decodeResponse(t, w.Body.Bytes()).Error.Code)
}

func TestJobHandler_CreateContractExport_MalformedBody(t *testing.T) {
	h := handler.NewJobHandler(new(mocks.MockExportJobService))

	c, w, _, _ := newJobContext(`{"kind":`, gin.Params{{Key: "id", Value: uuid.NewString()}})
	h.CreateContractExport(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandler_Get_Completed(t *testing.T) {
	svc := new(mocks.MockExportJobService)
	h := handler.NewJobHandler(svc)

	jobID := uuid.New()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/jobs/"+jobID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}
	tenantID := uuid.New()
	setAuthContext(c, tenantID, uuid.New(), "member")

	done := time.Date(2025, 3, 4, 15, 0, 3, 0, time.UTC)
	svc.On("Get", mock.Anything, tenantID, jobID).Return(&service.ExportJobView{
		ExportJob: &domain.ExportJob{
			ID:          jobID,
			Status:      domain.JobStatusCompleted,
			Filename:    "Acme_Realty_v3_2025-03-04.pdf",
			PageCount:   3,
			ResultKey:   "tenants/t/jobs/j/Acme_Realty_v3_2025-03-04.pdf",
			CompletedAt: &done,
		},
		DownloadURL: "https://s3.test/presigned",
	}, nil)

	h.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w.Body.Bytes()).Data.(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, "https://s3.test/presigned", data["download_url"])
	assert.Equal(t, float64(3), data["page_count"])
	assert.NotContains(t, data, "result_key")
}

func TestJobHandler_Get_NotFound(t *testing.T) {
	svc := new(mocks.MockExportJobService)
	h := handler.NewJobHandler(svc)

	jobID := uuid.New()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/jobs/"+jobID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: jobID.String()}}
	tenantID := uuid.New()
	setAuthContext(c, tenantID, uuid.New(), "member")

	svc.On("Get", mock.Anything, tenantID, jobID).Return(nil, domain.ErrJobNotFound)

	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "JOB_NOT_FOUND", decodeResponse(t, w.Body.Bytes()).Error.Code)
}
