package service

import (
	"context"
	"sync"
	"time"

	"pactly/internal/logger"
	"pactly/internal/port"
)

// ExportQueueConfig holds settings for the export job worker.
type ExportQueueConfig struct {
	PollInterval time.Duration
	MaxAttempts  int
	Concurrency  int
	// JobTimeout bounds a single render and upload.
	JobTimeout time.Duration
}

// ExportJobWorker polls for queued export jobs and processes them.
type ExportJobWorker struct {
	jobRepo port.ExportJobRepository
	jobs    ExportJobService
	cfg     ExportQueueConfig
	log     *logger.Logger
	wg      sync.WaitGroup
}

// NewExportJobWorker creates a new ExportJobWorker.
func NewExportJobWorker(jobRepo port.ExportJobRepository, jobs ExportJobService, cfg ExportQueueConfig, log *logger.Logger) *ExportJobWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}
	return &ExportJobWorker{
		jobRepo: jobRepo,
		jobs:    jobs,
		cfg:     cfg,
		log:     log.With("component", "export_job_worker"),
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight jobs have finished.
func (w *ExportJobWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	w.log.Info("started",
		"poll", w.cfg.PollInterval, "concurrency", w.cfg.Concurrency, "max_attempts", w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("shutting down, waiting for in-flight exports")
			w.wg.Wait()
			w.log.Info("shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			jobs, err := w.jobRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				w.log.Error("claim failed", "error", err)
				continue
			}

			for i := range jobs {
				job := jobs[i]

				sem <- struct{}{}
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }()

					// In-flight jobs finish even when the poll context is
					// canceled during shutdown.
					jobCtx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
					defer cancel()

					w.log.Debug("dispatching export job", "job_id", job.ID, "attempt", job.Attempts)
					w.jobs.Process(jobCtx, &job, w.cfg.MaxAttempts)
				}()
			}
		}
	}
}
