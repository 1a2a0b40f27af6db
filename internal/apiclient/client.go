// Package apiclient is a typed client for the export API. Credentials are
// supplied once through a TokenSource instead of being passed per call.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"pactly/internal/domain"
	"pactly/internal/logger"
)

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", errors.New("apiclient: empty token")
	}
	return string(t), nil
}

// Job is an export job as reported by the API.
type Job struct {
	domain.ExportJob
	DownloadURL string `json:"download_url,omitempty"`
}

// Error is a non-2xx API response.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("apiclient: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("apiclient: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Temporary reports whether the request may succeed if repeated.
func (e *Error) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client talks to the export API.
type Client struct {
	baseURL *url.URL
	tokens  TokenSource
	http    *http.Client
	log     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for the API rooted at baseURL, e.g.
// "https://api.pactly.test".
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base URL %q", baseURL)
	}
	if tokens == nil {
		return nil, errors.New("apiclient: token source is required")
	}
	c := &Client{
		baseURL: u,
		tokens:  tokens,
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type createJobRequest struct {
	Kind     domain.ExportKind `json:"kind"`
	TargetID *uuid.UUID        `json:"target_id,omitempty"`
}

// CreateContractExportJob queues a contract PDF export for dealID.
func (c *Client) CreateContractExportJob(ctx context.Context, dealID uuid.UUID) (*Job, error) {
	return c.createJob(ctx, dealID, createJobRequest{Kind: domain.ExportKindContractPDF})
}

// CreateOfferLetterExportJob queues an offer letter PDF export.
func (c *Client) CreateOfferLetterExportJob(ctx context.Context, dealID, letterID uuid.UUID) (*Job, error) {
	return c.createJob(ctx, dealID, createJobRequest{Kind: domain.ExportKindOfferLetterPDF, TargetID: &letterID})
}

func (c *Client) createJob(ctx context.Context, dealID uuid.UUID, body createJobRequest) (*Job, error) {
	var job Job
	path := "/api/v1/deals/" + dealID.String() + "/contract/export-jobs"
	if err := c.do(ctx, http.MethodPost, path, body, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJob fetches the current state of a job.
func (c *Client) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/"+jobID.String(), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Download streams a completed job's file into w. The presigned URL
// carries its own credentials, so no bearer token is sent.
func (c *Client) Download(ctx context.Context, job *Job, w io.Writer) (int64, error) {
	if job.Status != domain.JobStatusCompleted || job.DownloadURL == "" {
		return 0, fmt.Errorf("apiclient: job %s has no download (status %s)", job.ID, job.Status)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.DownloadURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("apiclient: building download request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("apiclient: download: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return 0, &Error{StatusCode: resp.StatusCode}
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("apiclient: download: %w", err)
	}
	return n, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("apiclient: token: %w", err)
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("apiclient: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.log.Debug("api call", "method", method, "path", path, "status", resp.StatusCode)

	var env envelope
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		if secs, err := time.ParseDuration(resp.Header.Get("Retry-After") + "s"); err == nil {
			apiErr.RetryAfter = secs
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("apiclient: decoding response: %w", decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("apiclient: decoding data: %w", err)
		}
	}
	return nil
}
