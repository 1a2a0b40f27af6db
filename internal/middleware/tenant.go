package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyDealID holds the parsed :id of deal-scoped routes.
const ContextKeyDealID = "deal_id"

// TenantGuard ensures tenant context is present. It relies on
// AuthMiddleware having already set the tenant_id.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetTenantID(c); err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant context required")
			return
		}
		c.Next()
	}
}

// DealScope parses the :id path parameter of deal routes. Ownership is
// checked by the repositories, which always filter on tenant.
func DealScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		dealID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			abort(c, http.StatusBadRequest, "INVALID_ID", "invalid deal ID")
			return
		}
		c.Set(ContextKeyDealID, dealID)
		c.Next()
	}
}

// GetDealID returns the deal ID set by DealScope.
func GetDealID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(ContextKeyDealID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}
