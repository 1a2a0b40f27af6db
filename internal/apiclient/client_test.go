package apiclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pactly/internal/apiclient"
	"pactly/internal/domain"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": status < 400, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": code, "message": msg},
	})
}

func newClient(t *testing.T, srv *httptest.Server) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(srv.URL, apiclient.StaticToken("tok"), apiclient.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := apiclient.New("not a url", apiclient.StaticToken("t"))
	assert.Error(t, err)
	_, err = apiclient.New("https://api.pactly.test", nil)
	assert.Error(t, err)
}

func TestCreateContractExportJob(t *testing.T) {
	dealID, jobID := uuid.New(), uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/deals/"+dealID.String()+"/contract/export-jobs", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "contract_pdf", body["kind"])
		assert.NotContains(t, body, "target_id")

		writeEnvelope(w, http.StatusAccepted, map[string]interface{}{"id": jobID, "status": "queued", "kind": "contract_pdf"})
	}))
	defer srv.Close()

	job, err := newClient(t, srv).CreateContractExportJob(context.Background(), dealID)
	require.NoError(t, err)
	assert.Equal(t, jobID, job.ID)
	assert.Equal(t, domain.JobStatusQueued, job.Status)
}

func TestCreateOfferLetterExportJob_SendsTarget(t *testing.T) {
	letterID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "offer_letter_pdf", body["kind"])
		assert.Equal(t, letterID.String(), body["target_id"])
		writeEnvelope(w, http.StatusAccepted, map[string]interface{}{"id": uuid.New(), "status": "queued"})
	}))
	defer srv.Close()

	_, err := newClient(t, srv).CreateOfferLetterExportJob(context.Background(), uuid.New(), letterID)
	require.NoError(t, err)
}

func TestGetJob_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "JOB_NOT_FOUND", "export job not found")
	}))
	defer srv.Close()

	_, err := newClient(t, srv).GetJob(context.Background(), uuid.New())
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "JOB_NOT_FOUND", apiErr.Code)
	assert.False(t, apiErr.Temporary())
}

func TestPollJob_RetriesUntilCompleted(t *testing.T) {
	jobID := uuid.New()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			writeEnvelope(w, http.StatusOK, map[string]interface{}{"id": jobID, "status": "queued"})
		case 2:
			writeError(w, http.StatusBadGateway, "", "")
		case 3:
			writeEnvelope(w, http.StatusOK, map[string]interface{}{"id": jobID, "status": "processing"})
		default:
			writeEnvelope(w, http.StatusOK, map[string]interface{}{
				"id":           jobID,
				"status":       "completed",
				"filename":     "Acme_v1_2025-03-04.pdf",
				"download_url": "https://s3.test/x",
			})
		}
	}))
	defer srv.Close()

	job, err := newClient(t, srv).PollJob(context.Background(), jobID, 5*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	assert.Equal(t, "https://s3.test/x", job.DownloadURL)
	assert.Equal(t, int32(4), calls.Load())
}

func TestPollJob_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]interface{}{"status": "failed", "error": "contract not found"})
	}))
	defer srv.Close()

	job, err := newClient(t, srv).PollJob(context.Background(), uuid.New(), time.Millisecond)
	require.ErrorIs(t, err, apiclient.ErrJobFailed)
	assert.Contains(t, err.Error(), "contract not found")
	assert.Equal(t, domain.JobStatusFailed, job.Status)
}

func TestPollJob_StopsOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
	}))
	defer srv.Close()

	_, err := newClient(t, srv).PollJob(context.Background(), uuid.New(), time.Millisecond)
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPollJob_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]interface{}{"status": "processing"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := newClient(t, srv).PollJob(ctx, uuid.New(), 5*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, "%PDF-1.3 body")
	}))
	defer srv.Close()

	c := newClient(t, srv)
	job := &apiclient.Job{DownloadURL: srv.URL + "/presigned"}
	job.Status = domain.JobStatusCompleted

	var buf bytes.Buffer
	n, err := c.Download(context.Background(), job, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("%PDF-1.3 body")), n)
	assert.Equal(t, "%PDF-1.3 body", buf.String())

	job.Status = domain.JobStatusProcessing
	_, err = c.Download(context.Background(), job, &buf)
	assert.Error(t, err)
}
