package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pactly/internal/logger"
)

const (
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"
)

// RequestID injects an X-Request-ID header into the request and response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger stores a request-scoped logger in the context and logs each
// request with method, path, status, and latency once it completes.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.With("request_id", c.GetString(ContextKeyRequestID))
		c.Set(ContextKeyLogger, reqLog)

		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if tenantID, ok := c.Get(ContextKeyTenantID); ok {
			fields = append(fields, "tenant_id", tenantID)
		}
		switch {
		case c.Writer.Status() >= 500:
			reqLog.Error("request", fields...)
		case c.Writer.Status() >= 400:
			reqLog.Warn("request", fields...)
		default:
			reqLog.Info("request", fields...)
		}
	}
}

// GetLogger returns the request-scoped logger, or a no-op logger when the
// Logger middleware did not run.
func GetLogger(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(ContextKeyLogger); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return logger.Nop()
}

// Recovery turns a panic into a 500 response and logs it.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		GetLogger(c).Error("panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	})
}
