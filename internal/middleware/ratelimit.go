package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// TenantRateLimiter hands out one token bucket per tenant.
type TenantRateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[uuid.UUID]*rate.Limiter
}

// NewTenantRateLimiter allows perSecond requests per tenant with the given
// burst. A non-positive perSecond disables limiting.
func NewTenantRateLimiter(perSecond float64, burst int) *TenantRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &TenantRateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		limiters: make(map[uuid.UUID]*rate.Limiter),
	}
}

func (l *TenantRateLimiter) get(tenantID uuid.UUID) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[tenantID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[tenantID] = lim
	}
	return lim
}

// Middleware rejects requests over the tenant's budget with 429. It must run
// after AuthMiddleware.
func (l *TenantRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limit <= 0 {
			c.Next()
			return
		}
		tenantID, err := GetTenantID(c)
		if err != nil {
			c.Next()
			return
		}
		if !l.get(tenantID).Allow() {
			c.Header("Retry-After", "1")
			abort(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many export requests; try again shortly")
			return
		}
		c.Next()
	}
}
