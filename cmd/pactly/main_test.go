package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderContract(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "contract.txt")
	require.NoError(t, os.WriteFile(in, []byte("1. PURCHASE PRICE\nThe purchase price is $350,000.\n"), 0o600))

	out, err := execute(t, "render", "contract", in, "--company", "Acme Realty", "--title", "Elm Street", "--version", "3", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Acme_Realty_v3_")
	assert.Contains(t, out, "1 pages")

	matches, err := filepath.Glob(filepath.Join(dir, "Acme_Realty_v3_*.pdf"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderOfferLetter(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "offer.json")
	letter := `{"full_text":"Dear Seller,\n\nWe offer.","property_address":"12 Elm Street","purchase_price":350000}`
	require.NoError(t, os.WriteFile(in, []byte(letter), 0o600))

	out, err := execute(t, "render", "offer-letter", in, "--company", "Acme", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Acme_12_Elm_Street_")
}

func TestRenderOfferLetter_BadJSON(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "offer.json")
	require.NoError(t, os.WriteFile(in, []byte("{"), 0o600))

	_, err := execute(t, "render", "offer-letter", in, "-o", dir)
	assert.Error(t, err)
}

func TestExportContract(t *testing.T) {
	dealID, jobID := uuid.New(), uuid.New()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"id": jobID, "status": "queued"},
			})
		case strings.HasPrefix(r.URL.Path, "/api/v1/jobs/"):
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"id":           jobID,
					"status":       "completed",
					"filename":     "Acme_v2_2025-03-04.pdf",
					"page_count":   2,
					"download_url": srv.URL + "/files/result",
				},
			})
		case r.URL.Path == "/files/result":
			_, _ = w.Write([]byte("%PDF-1.3 exported"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	out, err := execute(t, "export", "contract", dealID.String(),
		"--api", srv.URL, "--token", "secret", "--interval", "10ms", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "queued job "+jobID.String())

	data, err := os.ReadFile(filepath.Join(dir, "Acme_v2_2025-03-04.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 exported", string(data))
}

func TestExport_RequiresToken(t *testing.T) {
	t.Setenv("PACTLY_API_TOKEN", "")
	_, err := execute(t, "export", "contract", uuid.NewString(), "--token", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestExport_InvalidDealID(t *testing.T) {
	_, err := execute(t, "export", "contract", "nope", "--token", "x")
	assert.Error(t, err)
}
