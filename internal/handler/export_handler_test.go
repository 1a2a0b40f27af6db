package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pactly/internal/csvexport"
	"pactly/internal/domain"
	"pactly/internal/handler"
	"pactly/internal/service"
	"pactly/mocks"
)

func newExportContext(method, path string, dealID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder, uuid.UUID) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: dealID.String()}}
	tenantID := uuid.New()
	setAuthContext(c, tenantID, uuid.New(), "member")
	return c, w, tenantID
}

func TestExportHandler_ContractPDF_Latest(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)

	dealID := uuid.New()
	c, w, tenantID := newExportContext(http.MethodGet, "/api/v1/deals/x/contract/export/pdf", dealID)

	svc.On("ContractPDF", mock.Anything, tenantID, dealID, uuid.Nil).Return(&service.ExportOutput{
		Filename:    "Acme_Realty_v3_2025-03-04.pdf",
		ContentType: service.ContentTypePDF,
		Data:        []byte("%PDF-1.3 test"),
		PageCount:   2,
	}, nil)

	h.ContractPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Acme_Realty_v3_2025-03-04.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", w.Header().Get("X-Page-Count"))
	assert.Equal(t, "%PDF-1.3 test", w.Body.String())
	svc.AssertExpectations(t)
}

func TestExportHandler_ContractPDF_SpecificVersion(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)

	dealID, contractID := uuid.New(), uuid.New()
	c, w, tenantID := newExportContext(http.MethodGet, "/export/pdf?contract_id="+contractID.String(), dealID)

	svc.On("ContractPDF", mock.Anything, tenantID, dealID, contractID).
		Return(&service.ExportOutput{Filename: "a.pdf", ContentType: service.ContentTypePDF, Data: []byte("%PDF")}, nil)

	h.ContractPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestExportHandler_ContractPDF_InvalidContractID(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)

	c, w, _ := newExportContext(http.MethodGet, "/export/pdf?contract_id=nope", uuid.New())
	h.ContractPDF(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ContractPDF")
}

func TestExportHandler_ContractPDF_NotFound(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)

	dealID := uuid.New()
	c, w, tenantID := newExportContext(http.MethodGet, "/export/pdf", dealID)
	svc.On("ContractPDF", mock.Anything, tenantID, dealID, uuid.Nil).Return(nil, domain.ErrContractNotFound)

	h.ContractPDF(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w.Body.Bytes())
	assert.False(t, resp.Success)
	assert.Equal(t, "CONTRACT_NOT_FOUND", resp.Error.Code)
}

func TestExportHandler_ContractPDF_MissingAuth(t *testing.T) {
	h := handler.NewExportHandler(new(mocks.MockExportService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/export/pdf", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.ContractPDF(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportHandler_InvalidDealID(t *testing.T) {
	h := handler.NewExportHandler(new(mocks.MockExportService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/export/pdf", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.ContractPDF(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w.Body.Bytes()).Error.Code)
}

func TestExportHandler_OfferLetterPDF(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)

	dealID, letterID := uuid.New(), uuid.New()
	c, w, tenantID := newExportContext(http.MethodGet, "/export/pdf", dealID)
	c.Params = append(c.Params, gin.Param{Key: "letterId", Value: letterID.String()})

	svc.On("OfferLetterPDF", mock.Anything, tenantID, dealID, letterID).Return(&service.ExportOutput{
		Filename:    "Acme_Realty_12_Elm_Street_2025-03-04.pdf",
		ContentType: service.ContentTypePDF,
		Data:        []byte("%PDF"),
		PageCount:   1,
	}, nil)

	h.OfferLetterPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Acme_Realty_12_Elm_Street_2025-03-04.pdf")
	svc.AssertExpectations(t)
}

func TestExportHandler_OfferLetterPDF_BadLetterID(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)

	c, w, _ := newExportContext(http.MethodGet, "/export/pdf", uuid.New())
	c.Params = append(c.Params, gin.Param{Key: "letterId", Value: "x"})

	h.OfferLetterPDF(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandler_ContractCSV(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)

	dealID := uuid.New()
	c, w, tenantID := newExportContext(http.MethodGet, "/export/csv", dealID)

	body := append(append([]byte{}, csvexport.BOM...), []byte("Type,Key,Value,Status\nField,purchase_price,350000,\n")...)
	svc.On("ContractCSV", mock.Anything, tenantID, dealID).Return(&service.ExportOutput{
		Filename:    "12_Elm_Street_v3_key_terms_2025-03-04.csv",
		ContentType: service.ContentTypeCSV,
		Data:        body,
	}, nil)

	h.ContractCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "_key_terms_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Equal(t, csvexport.BOM, w.Body.Bytes()[:3])
}

func TestExportHandler_ContractWorkbook_Error(t *testing.T) {
	svc := new(mocks.MockExportService)
	h := handler.NewExportHandler(svc)

	dealID := uuid.New()
	c, w, tenantID := newExportContext(http.MethodGet, "/export/xlsx", dealID)
	svc.On("ContractWorkbook", mock.Anything, tenantID, dealID).Return(nil, domain.ErrNotFound)

	h.ContractWorkbook(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
