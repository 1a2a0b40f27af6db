package logo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pactly/internal/logo"
	"pactly/mocks"
)

func newLogoServer(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/static/logos/acme.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_RelativePathUsesBaseURL(t *testing.T) {
	body := encodePNG(t, 4, 4)
	srv := newLogoServer(t, body)

	f := logo.NewFetcher(logo.FetcherConfig{BaseURL: srv.URL + "/"}, nil)
	got, err := f.Fetch(context.Background(), "/static/logos/acme.png")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFetcher_AbsoluteURL(t *testing.T) {
	body := encodePNG(t, 4, 4)
	srv := newLogoServer(t, body)

	f := logo.NewFetcher(logo.FetcherConfig{BaseURL: "http://unused.invalid", AllowedHosts: []string{"127.0.0.1"}}, nil)
	got, err := f.Fetch(context.Background(), srv.URL+"/static/logos/acme.png")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFetcher_AbsoluteURLOutsideAllowlist(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		hits++
	}))
	t.Cleanup(srv.Close)

	f := logo.NewFetcher(logo.FetcherConfig{BaseURL: "http://unused.invalid", AllowedHosts: []string{"cdn.pactly.test"}}, nil)
	_, err := f.Fetch(context.Background(), srv.URL+"/latest/meta-data/")
	assert.ErrorIs(t, err, logo.ErrHostNotAllowed)
	assert.Zero(t, hits)
}

func TestFetcher_RedirectOutsideAllowlist(t *testing.T) {
	var internalHits int
	internal := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		internalHits++
	}))
	t.Cleanup(internal.Close)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, internal.URL+"/admin", http.StatusFound)
	}))
	t.Cleanup(api.Close)

	f := logo.NewFetcher(logo.FetcherConfig{BaseURL: api.URL}, nil)
	_, err := f.Fetch(context.Background(), "/static/logos/acme.png")
	assert.ErrorIs(t, err, logo.ErrHostNotAllowed)
	assert.Zero(t, internalHits)
}

func TestFetcher_AllowAnyHost(t *testing.T) {
	body := encodePNG(t, 4, 4)
	srv := newLogoServer(t, body)

	f := logo.NewFetcher(logo.FetcherConfig{AllowAnyHost: true}, nil)
	got, err := f.Fetch(context.Background(), srv.URL+"/static/logos/acme.png")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFetcher_ProtocolRelativeRef(t *testing.T) {
	f := logo.NewFetcher(logo.FetcherConfig{BaseURL: "http://unused.invalid"}, nil)
	_, err := f.Fetch(context.Background(), "//169.254.169.254/latest")
	assert.ErrorIs(t, err, logo.ErrUnsupportedRef)
}

func TestValidateURL(t *testing.T) {
	hosts := []string{"cdn.pactly.test"}

	assert.NoError(t, logo.ValidateURL("/static/logos/acme.png", hosts))
	assert.NoError(t, logo.ValidateURL("https://CDN.pactly.test/acme.png", hosts))

	assert.ErrorIs(t, logo.ValidateURL("http://169.254.169.254/latest/meta-data", hosts), logo.ErrHostNotAllowed)
	assert.ErrorIs(t, logo.ValidateURL("https://cdn.pactly.test/a.png", nil), logo.ErrHostNotAllowed)
	for _, bad := range []string{"//cdn.pactly.test/a.png", "s3:logos/other-tenant.png", "file:/etc/passwd", "ftp://cdn.pactly.test/a.png", "acme.png"} {
		assert.ErrorIs(t, logo.ValidateURL(bad, hosts), logo.ErrUnsupportedRef, bad)
	}
}

func TestFetcher_NotFound(t *testing.T) {
	srv := newLogoServer(t, nil)

	f := logo.NewFetcher(logo.FetcherConfig{BaseURL: srv.URL}, nil)
	_, err := f.Fetch(context.Background(), "/static/logos/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFetcher_EnforcesMaxBytes(t *testing.T) {
	srv := newLogoServer(t, make([]byte, 4096))

	f := logo.NewFetcher(logo.FetcherConfig{BaseURL: srv.URL, MaxBytes: 1000}, nil)
	_, err := f.Fetch(context.Background(), "/static/logos/acme.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.0 kB")
}

func TestFetcher_BucketObject(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "pactly-exports", "logos/t1.png").
		Return([]byte("raw"), nil).Once()

	f := logo.NewFetcher(logo.FetcherConfig{Bucket: "pactly-exports"}, storage)
	got, err := f.Fetch(context.Background(), "s3:logos/t1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("raw"), got)
	storage.AssertExpectations(t)
}

func TestFetcher_BucketObjectWithoutStorage(t *testing.T) {
	f := logo.NewFetcher(logo.FetcherConfig{}, nil)
	_, err := f.Fetch(context.Background(), "s3:logos/t1.png")
	assert.True(t, errors.Is(err, logo.ErrUnsupportedRef))
}

func TestFetcher_UnsupportedRef(t *testing.T) {
	f := logo.NewFetcher(logo.FetcherConfig{}, nil)
	_, err := f.Fetch(context.Background(), "ftp://example.com/logo.png")
	assert.ErrorIs(t, err, logo.ErrUnsupportedRef)
}

func TestFetcher_LocalFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	body := encodePNG(t, 4, 4)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	got, err := logo.NewFetcher(logo.FetcherConfig{AllowFiles: true}, nil).Fetch(context.Background(), "file:"+path)
	require.NoError(t, err)
	assert.Equal(t, body, got)

	_, err = logo.NewFetcher(logo.FetcherConfig{}, nil).Fetch(context.Background(), "file:"+path)
	assert.ErrorIs(t, err, logo.ErrUnsupportedRef)

	_, err = logo.NewFetcher(logo.FetcherConfig{AllowFiles: true, MaxBytes: 8}, nil).Fetch(context.Background(), "file:"+path)
	assert.Error(t, err)
}
