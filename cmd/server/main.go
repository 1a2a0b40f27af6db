// @title Pactly Export API
// @version 1.0
// @description Branded PDF, workbook and CSV exports for deal contracts and offer letters.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	rediscache "pactly/internal/cache/redis"
	"pactly/internal/config"
	"pactly/internal/handler"
	"pactly/internal/logger"
	"pactly/internal/logo"
	"pactly/internal/middleware"
	"pactly/internal/pdfexport"
	"pactly/internal/port"
	"pactly/internal/repository/postgres"
	"pactly/internal/router"
	"pactly/internal/service"
	s3storage "pactly/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	appLog, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer appLog.Sync()

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	dealRepo := postgres.NewDealRepo(db)
	contractRepo := postgres.NewContractRepo(db)
	letterRepo := postgres.NewOfferLetterRepo(db)
	brandRepo := postgres.NewBrandSettingsRepo(db)
	jobRepo := postgres.NewExportJobRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3, appLog)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	checks := []handler.HealthCheck{handler.DatabaseCheck(db)}

	// Logo cache is optional
	var logoCache port.LogoCache
	if cfg.Redis.Enabled() {
		cache, closeCache, err := rediscache.NewLogoCache(&cfg.Redis, appLog)
		if err != nil {
			appLog.Warn("logo cache disabled", "error", err)
		} else {
			defer func() { _ = closeCache() }()
			logoCache = cache
		}
	}

	fetcher := logo.NewFetcher(logo.FetcherConfig{
		BaseURL:      cfg.Export.APIBaseURL,
		Timeout:      cfg.Export.LogoTimeout,
		MaxBytes:     cfg.Export.LogoMaxBytes,
		Bucket:       cfg.S3.Bucket,
		AllowedHosts: cfg.Export.LogoAllowedHosts,
	}, s3Client)
	exporter := pdfexport.NewExporter(logo.NewLoader(fetcher, logoCache, appLog), appLog)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	exportSvc := service.NewExportService(dealRepo, contractRepo, letterRepo, brandRepo, s3Client, exporter,
		service.ExportConfig{Bucket: cfg.S3.Bucket, Archive: cfg.Export.ArchiveToS3}, appLog)
	jobSvc := service.NewExportJobService(jobRepo, dealRepo, exportSvc, s3Client,
		service.ExportJobConfig{Bucket: cfg.S3.Bucket, PresignExpiry: cfg.S3.PresignExpiry}, appLog)
	settingsSvc := service.NewSettingsService(brandRepo, s3Client,
		service.SettingsConfig{
			Bucket:           cfg.S3.Bucket,
			MaxLogoBytes:     cfg.Export.MaxLogoUploadKB << 10,
			LogoAllowedHosts: cfg.Export.LogoAllowedHosts,
		}, appLog)

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		Health:   handler.NewHealthHandler(checks...),
		Export:   handler.NewExportHandler(exportSvc),
		Job:      handler.NewJobHandler(jobSvc),
		Settings: handler.NewSettingsHandler(settingsSvc),
	}, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ExportLimiter:  middleware.NewTenantRateLimiter(cfg.Rate.PerSecond, cfg.Rate.Burst),
		EnableSwagger:  !cfg.Server.IsProduction(),
	}, appLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background export processing
	worker := service.NewExportJobWorker(jobRepo, jobSvc, service.ExportQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxAttempts:  cfg.Queue.MaxAttempts,
		Concurrency:  cfg.Queue.Concurrency,
		JobTimeout:   cfg.Queue.JobTimeout,
	}, appLog)
	var bg sync.WaitGroup
	bg.Add(1)
	go func() {
		defer bg.Done()
		worker.Start(ctx)
	}()

	reaper, err := service.NewJobReaper(jobRepo, cfg.Queue.ReaperSchedule, cfg.Queue.StaleAfter, cfg.Queue.MaxAttempts, appLog)
	if err != nil {
		return fmt.Errorf("invalid reaper schedule %q: %w", cfg.Queue.ReaperSchedule, err)
	}
	reaper.Start()
	defer reaper.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server starting", "addr", cfg.Server.Port, "env", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			stop()
			bg.Wait()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	appLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("graceful shutdown failed", "error", err)
	}
	bg.Wait()
	return nil
}
