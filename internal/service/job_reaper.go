package service

import (
	"context"
	"time"

	"github.com/robfig/cron"

	"pactly/internal/logger"
	"pactly/internal/port"
)

// JobReaper periodically requeues export jobs left in processing by a
// worker that died mid-job. A job that has already been claimed
// maxAttempts times is failed instead, so a job that crashes its worker
// cannot loop forever.
type JobReaper struct {
	jobRepo     port.ExportJobRepository
	staleAfter  time.Duration
	maxAttempts int
	log         *logger.Logger
	cron        *cron.Cron
}

// NewJobReaper creates a JobReaper that runs on schedule, a cron spec such
// as "@every 1m".
func NewJobReaper(jobRepo port.ExportJobRepository, schedule string, staleAfter time.Duration, maxAttempts int, log *logger.Logger) (*JobReaper, error) {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	r := &JobReaper{
		jobRepo:     jobRepo,
		staleAfter:  staleAfter,
		maxAttempts: maxAttempts,
		log:         log.With("component", "job_reaper"),
		cron:        cron.New(),
	}
	if err := r.cron.AddFunc(schedule, r.RunOnce); err != nil {
		return nil, err
	}
	return r, nil
}

// Start begins the schedule in its own goroutine.
func (r *JobReaper) Start() {
	r.cron.Start()
	r.log.Info("started", "stale_after", r.staleAfter)
}

// Stop halts the schedule. A run already in progress is not interrupted.
func (r *JobReaper) Stop() {
	r.cron.Stop()
}

// RunOnce requeues stale jobs.
func (r *JobReaper) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	requeued, failed, err := r.jobRepo.RequeueStale(ctx, r.staleAfter, r.maxAttempts)
	if err != nil {
		r.log.Error("requeue stale jobs failed", "error", err)
		return
	}
	if requeued > 0 {
		r.log.Warn("requeued stale export jobs", "count", requeued)
	}
	if failed > 0 {
		r.log.Error("failed stale export jobs out of attempts", "count", failed, "max_attempts", r.maxAttempts)
	}
}
