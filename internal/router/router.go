package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pactly/internal/docs" // registers the OpenAPI document
	"pactly/internal/domain"
	"pactly/internal/handler"
	"pactly/internal/logger"
	"pactly/internal/middleware"
	"pactly/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health   *handler.HealthHandler
	Export   *handler.ExportHandler
	Job      *handler.JobHandler
	Settings *handler.SettingsHandler
}

// Options configures the cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	ExportLimiter  *middleware.TenantRateLimiter
	EnableSwagger  bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options, log *logger.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limiter := opts.ExportLimiter
	if limiter == nil {
		limiter = middleware.NewTenantRateLimiter(0, 1)
	}

	// Protected routes - require valid JWT
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))
	v1.Use(middleware.TenantGuard())

	deals := v1.Group("/deals/:id")
	deals.Use(middleware.DealScope())

	exports := deals.Group("")
	exports.Use(limiter.Middleware())
	exports.GET("/contract/export/pdf", h.Export.ContractPDF)
	exports.GET("/contract/export/xlsx", h.Export.ContractWorkbook)
	exports.GET("/contract/export/csv", h.Export.ContractCSV)
	exports.GET("/offer-letters/:letterId/export/pdf", h.Export.OfferLetterPDF)

	deals.POST("/contract/export-jobs", h.Job.CreateContractExport)
	v1.GET("/jobs/:id", h.Job.Get)

	// Brand settings; writes are admin only
	settings := v1.Group("/settings")
	settings.GET("", h.Settings.Get)
	settings.PUT("", middleware.RequireRole(domain.RoleAdmin), h.Settings.Update)
	settings.POST("/logo", middleware.RequireRole(domain.RoleAdmin), h.Settings.UploadLogo)
	settings.DELETE("/logo", middleware.RequireRole(domain.RoleAdmin), h.Settings.DeleteLogo)

	return r
}
