package logo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"pactly/internal/port"
)

// ObjectPrefix marks a reference to an object in the export bucket.
const ObjectPrefix = "s3:"

// FilePrefix marks a local file. Only honoured when AllowFiles is set.
const FilePrefix = "file:"

// ErrUnsupportedRef is returned for references that are neither URLs,
// API-relative paths, nor bucket objects.
var ErrUnsupportedRef = errors.New("unsupported logo reference")

// ErrHostNotAllowed is returned for absolute URLs outside the allowlist.
var ErrHostNotAllowed = errors.New("logo host not allowed")

// FetcherConfig holds the HTTP and size settings for logo retrieval.
type FetcherConfig struct {
	// BaseURL is prefixed to references that start with "/".
	BaseURL  string
	Timeout  time.Duration
	MaxBytes int64
	Bucket   string

	// AllowedHosts lists the hosts absolute URLs may point at, including
	// redirect targets. The host of BaseURL is always allowed.
	AllowedHosts []string

	// AllowFiles enables file: references and AllowAnyHost skips the host
	// allowlist. Both are for the local CLI; the server leaves them off.
	AllowFiles   bool
	AllowAnyHost bool
}

// Fetcher retrieves raw logo bytes from HTTP(S) or object storage.
type Fetcher struct {
	client  *http.Client
	storage port.ObjectStorage
	cfg     FetcherConfig
}

// NewFetcher creates a Fetcher. storage may be nil when no bucket objects
// are referenced.
func NewFetcher(cfg FetcherConfig, storage port.ObjectStorage) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	f := &Fetcher{storage: storage, cfg: cfg}
	f.client = &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("logo fetch: too many redirects")
			}
			return f.checkHost(req.URL)
		},
	}
	return f
}

// ValidateURL reports whether a tenant-supplied logo URL may be stored. Only
// paths relative to the API and absolute http(s) URLs on allowedHosts pass.
func ValidateURL(ref string, allowedHosts []string) error {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return nil
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return fmt.Errorf("%w: %q", ErrUnsupportedRef, ref)
	}
	if !hostListed(u.Hostname(), allowedHosts) {
		return fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Hostname())
	}
	return nil
}

func hostListed(host string, hosts []string) bool {
	for _, h := range hosts {
		if strings.EqualFold(host, h) {
			return true
		}
	}
	return false
}

func (f *Fetcher) checkHost(u *url.URL) error {
	if f.cfg.AllowAnyHost {
		return nil
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %s", ErrUnsupportedRef, u.Scheme)
	}
	if base, err := url.Parse(f.cfg.BaseURL); err == nil && base.Host != "" && strings.EqualFold(base.Host, u.Host) {
		return nil
	}
	if !hostListed(u.Hostname(), f.cfg.AllowedHosts) {
		return fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Hostname())
	}
	return nil
}

// Fetch returns the bytes behind ref.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(ref, ObjectPrefix):
		return f.fetchObject(ctx, strings.TrimPrefix(ref, ObjectPrefix))
	case f.cfg.AllowFiles && strings.HasPrefix(ref, FilePrefix):
		return f.fetchFile(strings.TrimPrefix(ref, FilePrefix))
	case strings.HasPrefix(ref, "//"):
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRef, ref)
	case strings.HasPrefix(ref, "/"):
		return f.fetchURL(ctx, strings.TrimRight(f.cfg.BaseURL, "/")+ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return f.fetchURL(ctx, ref)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRef, ref)
	}
}

func (f *Fetcher) fetchObject(ctx context.Context, key string) ([]byte, error) {
	if f.storage == nil {
		return nil, fmt.Errorf("%w: no object storage configured", ErrUnsupportedRef)
	}
	data, err := f.storage.Download(ctx, f.cfg.Bucket, key)
	if err != nil {
		return nil, fmt.Errorf("logo download: %w", err)
	}
	if err := f.checkSize(int64(len(data))); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *Fetcher) fetchFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("logo file: %w", err)
	}
	if err := f.checkSize(info.Size()); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("logo file: %w", err)
	}
	return data, nil
}

func (f *Fetcher) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("logo request: %w", err)
	}
	if err := f.checkHost(req.URL); err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("logo fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo fetch: unexpected status %d", resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if f.cfg.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.cfg.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("logo read: %w", err)
	}
	if err := f.checkSize(int64(len(data))); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *Fetcher) checkSize(n int64) error {
	if f.cfg.MaxBytes > 0 && n > f.cfg.MaxBytes {
		return fmt.Errorf("logo exceeds %s limit", humanize.Bytes(uint64(f.cfg.MaxBytes)))
	}
	return nil
}
