package apiclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"pactly/internal/domain"
)

// ErrJobFailed is returned by PollJob when the job ends in the failed state.
var ErrJobFailed = errors.New("export job failed")

var errStillRunning = errors.New("export job still running")

// PollJob polls a job every interval until it completes or fails, or ctx
// is done. Network errors and 5xx/429 responses are retried; other 4xx
// responses stop polling.
func (c *Client) PollJob(ctx context.Context, jobID uuid.UUID, interval time.Duration) (*Job, error) {
	if interval <= 0 {
		interval = 2 * time.Second
	}

	poll := func() (*Job, error) {
		job, err := c.GetJob(ctx, jobID)
		if err != nil {
			var apiErr *Error
			if errors.As(err, &apiErr) && !apiErr.Temporary() {
				return nil, backoff.Permanent(err)
			}
			if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
				return nil, backoff.RetryAfter(int(apiErr.RetryAfter / time.Second))
			}
			return nil, err
		}
		if !job.Terminal() {
			return nil, errStillRunning
		}
		return job, nil
	}

	job, err := backoff.Retry(ctx, poll,
		backoff.WithBackOff(backoff.NewConstantBackOff(interval)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			if !errors.Is(err, errStillRunning) {
				c.log.Warn("job poll failed, retrying", "job_id", jobID, "error", err, "next", next)
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.JobStatusFailed {
		return job, fmt.Errorf("%w: %s", ErrJobFailed, job.Error)
	}
	return job, nil
}
