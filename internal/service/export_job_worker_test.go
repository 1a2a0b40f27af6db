package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"pactly/internal/domain"
	"pactly/internal/logger"
	"pactly/internal/service"
	"pactly/mocks"
)

func TestExportJobWorker_PollsAndDispatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	jobRepo := new(mocks.MockExportJobRepo)
	jobSvc := new(mocks.MockExportJobService)

	job := domain.ExportJob{ID: uuid.New(), TenantID: uuid.New(), Kind: domain.ExportKindContractPDF,
		Status: domain.JobStatusProcessing, Attempts: 1}

	// First poll returns one job, subsequent polls return empty
	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ExportJob{job}, nil).Once()
	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ExportJob{}, nil).Maybe()
	jobSvc.On("Process", mock.Anything, mock.AnythingOfType("*domain.ExportJob"), 3).Return().Maybe()

	cfg := service.ExportQueueConfig{PollInterval: 50 * time.Millisecond, MaxAttempts: 3, Concurrency: 2}
	worker := service.NewExportJobWorker(jobRepo, jobSvc, cfg, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	jobRepo.AssertCalled(t, "ClaimQueued", mock.Anything, mock.AnythingOfType("int"))
	jobSvc.AssertCalled(t, "Process", mock.Anything, mock.AnythingOfType("*domain.ExportJob"), 3)
}

func TestExportJobWorker_RespectsConcurrencyCap(t *testing.T) {
	defer goleak.VerifyNone(t)

	jobRepo := new(mocks.MockExportJobRepo)
	jobSvc := new(mocks.MockExportJobService)
	cfg := service.ExportQueueConfig{PollInterval: 50 * time.Millisecond, MaxAttempts: 3, Concurrency: 2}

	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ExportJob{}, nil).Maybe()

	worker := service.NewExportJobWorker(jobRepo, jobSvc, cfg, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	for _, call := range jobRepo.Calls {
		if call.Method == "ClaimQueued" {
			limit := call.Arguments.Get(1).(int)
			assert.LessOrEqual(t, limit, cfg.Concurrency)
		}
	}
}

func TestExportJobWorker_WaitsForInFlightJobs(t *testing.T) {
	defer goleak.VerifyNone(t)

	jobRepo := new(mocks.MockExportJobRepo)
	jobSvc := new(mocks.MockExportJobService)

	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ExportJob{{ID: uuid.New(), Attempts: 1}}, nil).Once()
	jobRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.ExportJob{}, nil).Maybe()

	finished := make(chan struct{})
	jobSvc.On("Process", mock.Anything, mock.Anything, 3).Run(func(args mock.Arguments) {
		time.Sleep(150 * time.Millisecond)
		// The job context survives shutdown of the poll loop.
		assert.NoError(t, args.Get(0).(context.Context).Err())
		close(finished)
	}).Return().Once()

	cfg := service.ExportQueueConfig{PollInterval: 20 * time.Millisecond, MaxAttempts: 3, Concurrency: 1}
	worker := service.NewExportJobWorker(jobRepo, jobSvc, cfg, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(60 * time.Millisecond)
	cancel()
	<-done

	select {
	case <-finished:
	default:
		t.Fatal("Start returned before the in-flight job finished")
	}
}

func TestExportJobWorker_ZeroPollIntervalDoesNotPanic(t *testing.T) {
	defer goleak.VerifyNone(t)

	worker := service.NewExportJobWorker(new(mocks.MockExportJobRepo), new(mocks.MockExportJobService),
		service.ExportQueueConfig{MaxAttempts: 3}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NotPanics(t, func() { worker.Start(ctx) })
}
