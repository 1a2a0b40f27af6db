package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pactly/internal/handler"
)

func TestHealthHandler(t *testing.T) {
	ok := handler.HealthCheck{Name: "database", Ping: func(context.Context) error { return nil }}
	down := handler.HealthCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("dial tcp: refused") }}

	tests := []struct {
		name   string
		checks []handler.HealthCheck
		want   int
		body   string
	}{
		{"no checks", nil, http.StatusOK, `"ok"`},
		{"all healthy", []handler.HealthCheck{ok}, http.StatusOK, `"ok"`},
		{"one down", []handler.HealthCheck{ok, down}, http.StatusServiceUnavailable, "redis not reachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(tt.checks...)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)

			h.Readiness(c)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handler.NewHealthHandler(down).Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMapDomainError_Default(t *testing.T) {
	status, code, _ := handler.MapDomainError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", code)
}
